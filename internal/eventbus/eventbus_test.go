package eventbus

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type started struct{ name string }

type finished struct{ name string }

func TestEmitDispatchesByType(t *testing.T) {
	b := New()
	var got []string
	On(b, func(_ context.Context, e started) { got = append(got, "start:"+e.name) })
	On(b, func(_ context.Context, e finished) { got = append(got, "finish:"+e.name) })

	Emit(context.Background(), b, started{"hero"})
	Emit(context.Background(), b, finished{"hero"})
	Emit(context.Background(), b, 42)

	require.Equal(t, []string{"start:hero", "finish:hero"}, got)
}

func TestUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	b := New()
	var first, second int
	h := func(_ context.Context, _ started) { first++ }
	unsubscribe := On(b, h)
	On(b, func(_ context.Context, _ started) { second++ })
	// Registering the same function twice yields two subscriptions.
	unsubscribeAgain := On(b, h)

	Emit(context.Background(), b, started{})
	unsubscribe()
	unsubscribe()
	Emit(context.Background(), b, started{})
	unsubscribeAgain()
	Emit(context.Background(), b, started{})

	require.Equal(t, 3, first)
	require.Equal(t, 3, second)
}

func TestGlobalBus(t *testing.T) {
	Use(nil)
	noop := Subscribe(func(context.Context, started) { t.Fatal("no bus is installed") })
	Publish(context.Background(), started{})
	noop()

	b := New()
	Use(b)
	t.Cleanup(func() { Use(nil) })

	var mu sync.Mutex
	var names []string
	unsubscribe := Subscribe(func(_ context.Context, e started) {
		mu.Lock()
		defer mu.Unlock()
		names = append(names, e.name)
	})
	defer unsubscribe()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Publish(context.Background(), started{"r2"})
		}()
	}
	wg.Wait()
	require.Len(t, names, 8)
}

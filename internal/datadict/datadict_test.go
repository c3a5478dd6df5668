package datadict

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	json "github.com/goccy/go-json"

	"github.com/hanpama/graphshape/internal/nullable"
)

type episode string

func (e episode) IsKnown() bool { return e == "NEWHOPE" || e == "EMPIRE" || e == "JEDI" }

func mustTree(t *testing.T, src string) *DataDict {
	t.Helper()
	var tree map[string]any
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&tree))
	d, err := FromTree(tree)
	require.NoError(t, err)
	return d
}

func TestFromTree(t *testing.T) {
	d := mustTree(t, `{
		"__typename": "Human",
		"id": "1000",
		"name": "Luke Skywalker",
		"height": 1.72,
		"mass": 77,
		"friends": [{"__typename": "Droid", "name": "R2-D2"}, null],
		"starships": null
	}`)

	require.Equal(t, []string{"__typename", "friends", "height", "id", "mass", "name", "starships"}, d.Keys())
	require.Equal(t, 7, d.Len())

	typename, ok := d.Typename()
	require.True(t, ok)
	require.Equal(t, "Human", typename)

	require.True(t, d.Has("starships"))
	require.True(t, d.Get("starships").IsNull())
	require.False(t, d.Has("appearsIn"))
	require.True(t, d.Get("appearsIn").IsAbsent())

	friends, ok := d.Get("friends").List()
	require.True(t, ok)
	require.Len(t, friends, 2)
	r2, ok := friends[0].Object()
	require.True(t, ok)
	name, err := Field(r2, "name", String)
	require.NoError(t, err)
	require.Equal(t, "R2-D2", name)
	require.True(t, friends[1].IsNull())

	mass, err := Field(d, "mass", Int)
	require.NoError(t, err)
	require.Equal(t, 77, mass)
	height, err := Field(d, "height", Float)
	require.NoError(t, err)
	require.InDelta(t, 1.72, height, 1e-9)
}

func TestFromTreeRejectsUnsupportedValues(t *testing.T) {
	_, err := FromTree(map[string]any{"hero": map[string]any{"friends": []any{struct{}{}}}})
	require.ErrorIs(t, err, ErrDecodeMismatch)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	require.Equal(t, "hero.friends[0]", de.Path.String())
}

func TestDecodersReportMismatch(t *testing.T) {
	d := New(map[string]Value{
		"name":    StringValue("Luke"),
		"friends": ListValue(StringValue("a"), IntValue(3)),
		"nothing": NullValue(),
	})

	_, err := Field(d, "name", ListOf(String))
	require.ErrorIs(t, err, ErrDecodeMismatch)

	_, err = Field(d, "friends", ListOf(String))
	require.ErrorIs(t, err, ErrDecodeMismatch)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	require.Equal(t, Path{"friends", 1}, de.Path)
	require.Equal(t, "String!", de.Expected)

	_, err = Field(d, "nothing", String)
	require.ErrorIs(t, err, ErrDecodeMismatch)

	_, err = Field(d, "missing", String)
	require.ErrorIs(t, err, ErrDecodeMismatch)

	_, err = Field(d, "name", Bool)
	require.ErrorIs(t, err, ErrDecodeMismatch)
}

func TestOptionalDistinguishesAbsentFromNull(t *testing.T) {
	d := New(map[string]Value{
		"explicit": NullValue(),
		"set":      StringValue("x"),
		"dropped":  {},
	})
	require.False(t, d.Has("dropped"))

	got, err := Field(d, "missing", Optional(String))
	require.NoError(t, err)
	require.True(t, got.IsAbsent())

	got, err = Field(d, "explicit", Optional(String))
	require.NoError(t, err)
	require.True(t, got.IsNull())

	got, err = Field(d, "set", Optional(String))
	require.NoError(t, err)
	require.True(t, nullable.Equal(nullable.Some("x"), got))
}

func TestIDAndEnumDecoders(t *testing.T) {
	d := mustTree(t, `{"a": "1000", "b": 2001, "c": ["NEWHOPE", "FUTURE_EPISODE", null]}`)

	a, err := Field(d, "a", ID)
	require.NoError(t, err)
	require.Equal(t, "1000", a)
	b, err := Field(d, "b", ID)
	require.NoError(t, err)
	require.Equal(t, "2001", b)

	eps, err := Field(d, "c", ListOf(Optional(Enum[episode]())))
	require.NoError(t, err)
	require.Len(t, eps, 3)
	first, _ := eps[0].Get()
	require.True(t, first.Is("NEWHOPE"))
	second, _ := eps[1].Get()
	require.True(t, second.IsUnknown())
	require.Equal(t, "FUTURE_EPISODE", second.Raw())
	require.True(t, eps[2].IsNull())
}

func TestIntRejectsOutOfRange(t *testing.T) {
	d := New(map[string]Value{"big": Value{kind: KindScalar, scalar: int64(1) << 40}, "frac": FloatValue(1.5)})
	_, err := Field(d, "big", Int)
	require.ErrorIs(t, err, ErrDecodeMismatch)
	_, err = Field(d, "frac", Int)
	require.ErrorIs(t, err, ErrDecodeMismatch)
}

func TestWithSharesUnchangedStorage(t *testing.T) {
	friends := New(map[string]Value{"name": StringValue("Han")})
	orig := New(map[string]Value{
		"id":      StringValue("1000"),
		"friend":  ObjectValue(friends),
		"removed": StringValue("gone soon"),
	}, 1, 2)

	next := orig.With("id", StringValue("1001"))
	require.Equal(t, "1000", mustString(t, orig, "id"))
	require.Equal(t, "1001", mustString(t, next, "id"))

	sharedOrig, _ := orig.Get("friend").Object()
	sharedNext, _ := next.Get("friend").Object()
	require.Same(t, sharedOrig, sharedNext)

	require.Equal(t, []ShapeID{1, 2}, next.Fulfilled())
	next.MarkFulfilled(3)
	require.False(t, orig.IsFulfilled(3))

	removed := next.With("removed", Value{})
	require.False(t, removed.Has("removed"))
	require.True(t, next.Has("removed"))
	require.Empty(t, removed.Fulfilled())
	require.Equal(t, []string{"friend", "id"}, removed.Keys())

	nulled := next.With("id", NullValue())
	require.True(t, nulled.Has("id"))
	require.Empty(t, nulled.Fulfilled())

	reshaped := next.With("friend", StringValue("Han"))
	require.Empty(t, reshaped.Fulfilled())

	replaced := next.With("friend", ObjectValue(New(nil)))
	require.Equal(t, []ShapeID{1, 2, 3}, replaced.Fulfilled())
}

func TestWithFlattensLongChains(t *testing.T) {
	d := New(map[string]Value{"n": IntValue(0)})
	for i := 1; i <= 20; i++ {
		d = d.With("n", IntValue(i))
		require.Less(t, d.layers, maxLayers)
	}
	n, err := Field(d, "n", Int)
	require.NoError(t, err)
	require.Equal(t, 20, n)
	require.Equal(t, 1, d.Len())
}

func TestToTreeAndEqual(t *testing.T) {
	d := mustTree(t, `{"hero": {"name": "R2-D2", "appearsIn": ["NEWHOPE"]}, "count": 2}`)
	want := map[string]any{
		"hero":  map[string]any{"name": "R2-D2", "appearsIn": []any{"NEWHOPE"}},
		"count": json.Number("2"),
	}
	if diff := cmp.Diff(want, d.ToTree()); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}

	same := New(map[string]Value{
		"hero": ObjectValue(New(map[string]Value{
			"name":      StringValue("R2-D2"),
			"appearsIn": ListValue(StringValue("NEWHOPE")),
		})),
		"count": IntValue(2),
	})
	require.True(t, d.Equal(same))
	require.False(t, d.Equal(same.With("count", IntValue(3))))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `{"hero":{"name":"R2-D2","appearsIn":["NEWHOPE"]},"count":2}`, string(b))
}

func TestFulfilledSetConcurrentMarking(t *testing.T) {
	d := New(map[string]Value{"id": StringValue("1")})
	ids := make([]ShapeID, 64)
	for i := range ids {
		ids[i] = NewShapeID()
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(2)
		go func(id ShapeID) {
			defer wg.Done()
			d.MarkFulfilled(id)
		}(id)
		go func(id ShapeID) {
			defer wg.Done()
			_ = d.IsFulfilled(id)
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		require.True(t, d.IsFulfilled(id))
	}
	require.Len(t, d.Fulfilled(), len(ids))
}

func TestEncoders(t *testing.T) {
	require.True(t, FromOptional(nullable.Absent[string](), StringValue).IsAbsent())
	require.True(t, FromOptional(nullable.Null[string](), StringValue).IsNull())
	require.True(t, FromOptional(nullable.Some("a"), StringValue).Equal(StringValue("a")))

	list := FromList([]int{1, 2}, IntValue)
	got, err := ListOf(Int)(list)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, got)
}

func mustString(t *testing.T, d *DataDict, key string) string {
	t.Helper()
	s, err := Field(d, key, String)
	require.NoError(t, err)
	return s
}

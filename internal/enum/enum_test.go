package enum

import (
	"sort"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type episode string

const (
	newHope episode = "NEWHOPE"
	empire  episode = "EMPIRE"
	jedi    episode = "JEDI"
)

func (e episode) IsKnown() bool {
	switch e {
	case newHope, empire, jedi:
		return true
	}
	return false
}

func TestDecodeKnownAndUnknown(t *testing.T) {
	e := New[episode]("NEWHOPE")
	v, ok := e.Get()
	require.True(t, ok)
	require.Equal(t, newHope, v)
	require.True(t, e.Is(newHope))
	require.Equal(t, "NEWHOPE", e.String())

	u := New[episode]("FUTURE_EPISODE")
	require.True(t, u.IsUnknown())
	_, ok = u.Get()
	require.False(t, ok)
	require.Equal(t, "FUTURE_EPISODE", u.Raw())
	require.Equal(t, "unrecognized(FUTURE_EPISODE)", u.String())
}

func TestEquality(t *testing.T) {
	require.Equal(t, Known(jedi), New[episode]("JEDI"))
	require.True(t, Unknown[episode]("X") == New[episode]("X"))
	require.False(t, Unknown[episode]("X") == Unknown[episode]("Y"))
	require.False(t, Known(jedi) == Known(empire))
}

func TestCompare(t *testing.T) {
	in := []Enum[episode]{Known(jedi), Unknown[episode]("ANDOR"), Known(empire)}
	sort.Slice(in, func(i, j int) bool { return in[i].Compare(in[j]) < 0 })
	require.Equal(t, []string{"ANDOR", "EMPIRE", "JEDI"}, []string{in[0].Raw(), in[1].Raw(), in[2].Raw()})
}

func TestJSON(t *testing.T) {
	var got []Enum[episode]
	require.NoError(t, json.Unmarshal([]byte(`["EMPIRE","FUTURE_EPISODE"]`), &got))
	require.True(t, got[0].Is(empire))
	require.True(t, got[1].IsUnknown())

	b, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, `["EMPIRE","FUTURE_EPISODE"]`, string(b))
}

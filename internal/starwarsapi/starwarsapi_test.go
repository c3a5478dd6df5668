package starwarsapi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/enum"
	"github.com/hanpama/graphshape/internal/nullable"
	"github.com/hanpama/graphshape/internal/operation"
	"github.com/hanpama/graphshape/internal/selectionset"
)

func heroFriendsTree() map[string]any {
	return map[string]any{
		"hero": map[string]any{
			"__typename": "Droid",
			"friends": []any{
				map[string]any{
					"__typename": "Human",
					"id":         "1000",
					"friends": []any{
						map[string]any{"__typename": "Human", "name": "Han Solo"},
						map[string]any{"__typename": "Droid", "name": "C-3PO"},
					},
				},
				nil,
			},
		},
	}
}

func TestHeroFriendsOfFriendsNames(t *testing.T) {
	data, err := selectionset.Decode(HeroFriendsOfFriendsNamesDataType, heroFriendsTree())
	require.NoError(t, err)

	hero, err := data.Hero()
	require.NoError(t, err)
	h, ok := hero.Get()
	require.True(t, ok)

	friends, err := h.Friends()
	require.NoError(t, err)
	list, _ := friends.Get()
	require.Len(t, list, 2)
	require.True(t, list[1].IsNull())

	luke, _ := list[0].Get()
	id, err := luke.ID()
	require.NoError(t, err)
	require.Equal(t, "1000", id)

	var names []string
	fof, err := luke.Friends()
	require.NoError(t, err)
	for _, f := range fof.OrElse(nil) {
		friend, _ := f.Get()
		name, err := friend.Name()
		require.NoError(t, err)
		names = append(names, name)
	}
	if diff := cmp.Diff([]string{"Han Solo", "C-3PO"}, names); diff != "" {
		t.Fatalf("friend names mismatch (-want +got):\n%s", diff)
	}
}

func TestReadsAreStable(t *testing.T) {
	data, err := selectionset.Decode(HeroFriendsOfFriendsNamesDataType, heroFriendsTree())
	require.NoError(t, err)
	hero, err := data.Hero()
	require.NoError(t, err)
	h, _ := hero.Get()

	first, err := h.Friends()
	require.NoError(t, err)
	second, err := h.Friends()
	require.NoError(t, err)
	a, _ := first.Get()
	b, _ := second.Get()
	require.Len(t, b, len(a))
	for i := range a {
		x, _ := a[i].Get()
		y, _ := b[i].Get()
		require.Same(t, x.DataDict(), y.DataDict())
	}
}

func TestHumanRoundTrip(t *testing.T) {
	luke, err := NewHumanDataHuman("1000", "Luke Skywalker", nullable.Absent[[]nullable.Nullable[HumanDataHumanFriend]]())
	require.NoError(t, err)

	id, err := luke.ID()
	require.NoError(t, err)
	require.Equal(t, "1000", id)
	name, err := luke.Name()
	require.NoError(t, err)
	require.Equal(t, "Luke Skywalker", name)
	friends, err := luke.Friends()
	require.NoError(t, err)
	require.True(t, friends.IsAbsent())

	typename, ok := luke.DataDict().Typename()
	require.True(t, ok)
	require.Equal(t, "Human", typename)

	data, err := NewHumanData(nullable.Some(luke))
	require.NoError(t, err)
	human, err := data.Human()
	require.NoError(t, err)
	got, ok := human.Get()
	require.True(t, ok)
	require.Same(t, luke.DataDict(), got.DataDict())
}

func TestHumanNullFriendsIsNotAbsent(t *testing.T) {
	luke, err := NewHumanDataHuman("1000", "Luke Skywalker", nullable.Null[[]nullable.Nullable[HumanDataHumanFriend]]())
	require.NoError(t, err)
	friends, err := luke.Friends()
	require.NoError(t, err)
	require.True(t, friends.IsNull())
	require.False(t, friends.IsAbsent())
}

func TestRequiredFieldAbsentFailsConstruction(t *testing.T) {
	_, err := selectionset.Construct(HumanDataHumanType, map[string]datadict.Value{
		"name": datadict.StringValue("Luke Skywalker"),
	})
	require.ErrorIs(t, err, datadict.ErrDecodeMismatch)

	_, err = selectionset.Construct(HumanDataHumanType, map[string]datadict.Value{
		"id":   datadict.StringValue("1000"),
		"name": datadict.NullValue(),
	})
	require.ErrorIs(t, err, datadict.ErrDecodeMismatch)
}

func TestFriendFragments(t *testing.T) {
	han, err := NewHumanDataHumanFriend("Human", "Han Solo")
	require.NoError(t, err)
	require.True(t, han.DataDict().IsFulfilled(CharacterNameType.ID()))

	c, err := han.Fragments().CharacterName()
	require.NoError(t, err)
	name, err := c.Name()
	require.NoError(t, err)
	require.Equal(t, "Han Solo", name)
	require.Same(t, han.DataDict(), c.DataDict())
}

func TestInlineFragmentOfOtherTypeIsAbsent(t *testing.T) {
	r2, err := selectionset.Decode(CharacterNameWithInlineFragmentType, map[string]any{
		"__typename": "Droid",
		"name":       "R2-D2",
		"friends":    []any{map[string]any{"__typename": "Human", "name": "Luke Skywalker"}},
	})
	require.NoError(t, err)

	_, ok, err := r2.AsHuman()
	require.NoError(t, err)
	require.False(t, ok)

	droid, ok, err := r2.AsDroid()
	require.NoError(t, err)
	require.True(t, ok)
	name, err := droid.Name()
	require.NoError(t, err)
	require.Equal(t, "R2-D2", name)

	friends, err := droid.Friends()
	require.NoError(t, err)
	list, _ := friends.Get()
	require.Len(t, list, 1)
	luke, _ := list[0].Get()
	lukeName, err := luke.Name()
	require.NoError(t, err)
	require.Equal(t, "Luke Skywalker", lukeName)
}

func TestCastRecordsFulfilledShapes(t *testing.T) {
	r2, err := selectionset.Decode(CharacterNameWithInlineFragmentType, map[string]any{
		"__typename": "Droid",
		"name":       "R2-D2",
	})
	require.NoError(t, err)
	dict := r2.DataDict()
	require.False(t, dict.IsFulfilled(CharacterNameWithInlineFragmentAsDroidType.ID()))

	droid, ok, err := r2.AsDroid()
	require.NoError(t, err)
	require.True(t, ok)
	for _, id := range []datadict.ShapeID{
		CharacterNameWithInlineFragmentType.ID(),
		CharacterNameWithInlineFragmentAsDroidType.ID(),
		CharacterNameType.ID(),
		FriendsNamesType.ID(),
	} {
		require.True(t, dict.IsFulfilled(id))
	}

	again, ok, err := r2.AsDroid()
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, droid.DataDict(), again.DataDict())

	fn, err := droid.Fragments().FriendsNames()
	require.NoError(t, err)
	friends, err := fn.Friends()
	require.NoError(t, err)
	require.True(t, friends.IsAbsent())
}

func TestInlineFragmentMissingFieldFails(t *testing.T) {
	r2, err := selectionset.Decode(CharacterNameWithInlineFragmentType, map[string]any{"__typename": "Droid"})
	require.NoError(t, err)
	_, ok, err := r2.AsDroid()
	require.True(t, ok)
	require.ErrorIs(t, err, selectionset.ErrFragmentNotFulfilled)
	require.ErrorIs(t, err, datadict.ErrDecodeMismatch)
}

func TestEpisodeDecode(t *testing.T) {
	luke, err := selectionset.Decode(CharacterNameWithInlineFragmentType, map[string]any{
		"__typename": "Human",
		"friends": []any{
			map[string]any{"__typename": "Droid", "appearsIn": []any{"NEWHOPE", "FUTURE_EPISODE", nil}},
		},
	})
	require.NoError(t, err)

	human, ok, err := luke.AsHuman()
	require.NoError(t, err)
	require.True(t, ok)
	friends, err := human.Friends()
	require.NoError(t, err)
	list, _ := friends.Get()
	r2, _ := list[0].Get()
	appearsIn, err := r2.AppearsIn()
	require.NoError(t, err)
	require.Len(t, appearsIn, 3)

	newHope, _ := appearsIn[0].Get()
	ep, known := newHope.Get()
	require.True(t, known)
	require.Equal(t, EpisodeNewhope, ep)

	future, _ := appearsIn[1].Get()
	require.True(t, future.IsUnknown())
	require.Equal(t, "FUTURE_EPISODE", future.Raw())
	require.Equal(t, enum.Unknown[Episode]("FUTURE_EPISODE"), future)

	require.True(t, appearsIn[2].IsNull())
}

func TestConstructInlineFragments(t *testing.T) {
	r2friend, err := NewCharacterNameWithInlineFragmentAsHumanFriend("Droid", []nullable.Nullable[enum.Enum[Episode]]{
		nullable.Some(enum.Known(EpisodeJedi)),
	})
	require.NoError(t, err)

	human, err := NewCharacterNameWithInlineFragmentAsHuman(nullable.Some([]nullable.Nullable[CharacterNameWithInlineFragmentAsHumanFriend]{
		nullable.Some(r2friend),
	}))
	require.NoError(t, err)
	require.True(t, human.DataDict().IsFulfilled(CharacterNameWithInlineFragmentType.ID()))

	droid, err := NewCharacterNameWithInlineFragmentAsDroid("R2-D2", nullable.Absent[[]nullable.Nullable[FriendsNamesFriend]]())
	require.NoError(t, err)
	c, err := droid.Fragments().CharacterName()
	require.NoError(t, err)
	name, err := c.Name()
	require.NoError(t, err)
	require.Equal(t, "R2-D2", name)

	root := CharacterNameWithInlineFragment{droid.DataDict()}
	_, ok, err := root.AsHuman()
	require.NoError(t, err)
	require.False(t, ok)

	_, err = NewCharacterNameWithInlineFragment("Wookiee")
	require.NoError(t, err)
}

func TestHeroFriendsOfFriendsNamesDocument(t *testing.T) {
	doc := HeroFriendsOfFriendsNamesDefinition.Document
	require.Equal(t, operation.ModeAutomaticallyPersisted, doc.Mode)
	require.Equal(t, operation.Identifier(heroFriendsOfFriendsNamesDocument), doc.OperationIdentifier)
	require.Len(t, HeroFriendsOfFriendsNamesDefinition.Variables, 1)
	require.False(t, HeroFriendsOfFriendsNamesDefinition.Variables[0].Required())
}

func TestVariableSerialization(t *testing.T) {
	cases := []struct {
		name    string
		episode nullable.Nullable[enum.Enum[Episode]]
		vars    string
	}{
		{"absent", nullable.Absent[enum.Enum[Episode]](), ""},
		{"null", nullable.Null[enum.Enum[Episode]](), `{"episode":null}`},
		{"value", nullable.Some(enum.Known(EpisodeJedi)), `{"episode":"JEDI"}`},
		{"unknown", nullable.Some(enum.Unknown[Episode]("FUTURE_EPISODE")), `{"episode":"FUTURE_EPISODE"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op, err := HeroFriendsOfFriendsNamesQuery{Episode: tc.episode}.Operation()
			require.NoError(t, err)
			body, err := op.Request(true).Marshal()
			require.NoError(t, err)
			want := `{"query":` + quote(heroFriendsOfFriendsNamesDocument) +
				`,"operationName":"HeroFriendsOfFriendsNames"` +
				`,"extensions":{"persistedQuery":{"version":1,"sha256Hash":"` + operation.Identifier(heroFriendsOfFriendsNamesDocument) + `"}}`
			if tc.vars != "" {
				want += `,"variables":` + tc.vars
			}
			require.JSONEq(t, want+`}`, string(body))
		})
	}
}

func TestHumanQueryRequiresID(t *testing.T) {
	op, err := HumanQuery{ID: "1000"}.Operation()
	require.NoError(t, err)
	body, err := op.Request(false).Marshal()
	require.NoError(t, err)
	require.Contains(t, string(body), `"variables":{"id":"1000"}`)
	require.Contains(t, string(body), "fragment CharacterName on Character")

	_, err = operation.New(HumanDefinition, operation.Variables{})
	require.ErrorIs(t, err, operation.ErrMissingVariable)
	_, err = operation.New(HumanDefinition, operation.Variables{"id": nullable.Some[any]("1000"), "episode": nullable.Null[any]()})
	require.ErrorIs(t, err, operation.ErrUndeclaredVariable)
}

func TestCreateReviewForEpisode(t *testing.T) {
	m := CreateReviewForEpisodeMutation{
		Episode: enum.Known(EpisodeJedi),
		Review:  ReviewInput{Stars: 5},
	}
	op, err := m.Operation()
	require.NoError(t, err)
	body, err := op.Request(true).Marshal()
	require.NoError(t, err)
	require.JSONEq(t, `{
		"operationName": "CreateReviewForEpisode",
		"variables": {"episode": "JEDI", "review": {"stars": 5}},
		"extensions": {"persistedQuery": {"version": 1, "sha256Hash": "`+operation.Identifier(createReviewForEpisodeDocument)+`"}}
	}`, string(body))

	m.Review.Commentary = nullable.Null[string]()
	op, err = m.Operation()
	require.NoError(t, err)
	body, err = op.Request(false).Marshal()
	require.NoError(t, err)
	require.Contains(t, string(body), `"review":{"commentary":null,"stars":5}`)

	data, err := op.DecodeData(map[string]any{
		"createReview": map[string]any{"__typename": "Review", "stars": 5, "commentary": "Great!"},
	})
	require.NoError(t, err)
	review, err := data.CreateReview()
	require.NoError(t, err)
	r, _ := review.Get()
	stars, err := r.Stars()
	require.NoError(t, err)
	require.Equal(t, 5, stars)
	commentary, err := r.Commentary()
	require.NoError(t, err)
	require.Equal(t, nullable.Some("Great!"), commentary)

	built, err := NewCreateReviewForEpisodeCreateReview(4, nullable.Absent[string]())
	require.NoError(t, err)
	commentary, err = built.Commentary()
	require.NoError(t, err)
	require.True(t, commentary.IsAbsent())
}

func TestStarWarsSchema(t *testing.T) {
	require.True(t, Schema.Satisfies("Human", characterType))
	require.True(t, Schema.Satisfies("Droid", characterType))
	require.False(t, Schema.Satisfies("Starship", characterType))
	require.ElementsMatch(t, []string{"Human", "Droid"}, Schema.PossibleTypes("Character"))
}

func quote(s string) string {
	b, _ := datadict.StringValue(s).MarshalJSON()
	return string(b)
}

package starwarsapi

import (
	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/enum"
	"github.com/hanpama/graphshape/internal/nullable"
	"github.com/hanpama/graphshape/internal/schema"
	"github.com/hanpama/graphshape/internal/selectionset"
)

// CharacterNameWithInlineFragment selects different fields depending on
// whether the character is a human or a droid.
type CharacterNameWithInlineFragment struct{ data *datadict.DataDict }

type (
	CharacterNameWithInlineFragmentAsHuman       struct{ data *datadict.DataDict }
	CharacterNameWithInlineFragmentAsHumanFriend struct{ data *datadict.DataDict }
	CharacterNameWithInlineFragmentAsDroid       struct{ data *datadict.DataDict }
)

var CharacterNameWithInlineFragmentAsHumanFriendType = selectionset.NewType(selectionset.Definition{
	Name:   "CharacterNameWithInlineFragment.AsHuman.Friend",
	Parent: characterType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.Field("appearsIn", schema.NonNullType(schema.ListType(schema.NamedType("Episode")))),
	},
}, func(d *datadict.DataDict) CharacterNameWithInlineFragmentAsHumanFriend {
	return CharacterNameWithInlineFragmentAsHumanFriend{d}
})

var CharacterNameWithInlineFragmentAsHumanType = selectionset.NewType(selectionset.Definition{
	Name:   "CharacterNameWithInlineFragment.AsHuman",
	Parent: humanType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		selectionset.Field("friends", characterList).WithShape(CharacterNameWithInlineFragmentAsHumanFriendType),
	},
}, func(d *datadict.DataDict) CharacterNameWithInlineFragmentAsHuman {
	return CharacterNameWithInlineFragmentAsHuman{d}
})

var CharacterNameWithInlineFragmentAsDroidType = selectionset.NewType(selectionset.Definition{
	Name:   "CharacterNameWithInlineFragment.AsDroid",
	Parent: droidType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		selectionset.FragmentSpread(CharacterNameType),
		selectionset.FragmentSpread(FriendsNamesType),
	},
}, func(d *datadict.DataDict) CharacterNameWithInlineFragmentAsDroid {
	return CharacterNameWithInlineFragmentAsDroid{d}
})

var CharacterNameWithInlineFragmentType = selectionset.NewType(selectionset.Definition{
	Name:   "CharacterNameWithInlineFragment",
	Parent: characterType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.InlineFragment(CharacterNameWithInlineFragmentAsHumanType),
		selectionset.InlineFragment(CharacterNameWithInlineFragmentAsDroidType),
	},
	FragmentDefinition: `fragment CharacterNameWithInlineFragment on Character {
  __typename
  ... on Human {
    __typename
    friends {
      __typename
      appearsIn
    }
  }
  ... on Droid {
    __typename
    ...CharacterName
    ...FriendsNames
  }
}`,
}, func(d *datadict.DataDict) CharacterNameWithInlineFragment {
	return CharacterNameWithInlineFragment{d}
})

func (c CharacterNameWithInlineFragment) DataDict() *datadict.DataDict { return c.data }

func (c CharacterNameWithInlineFragment) Typename() (string, error) {
	return selectionset.Get(c, CharacterNameWithInlineFragmentType, datadict.TypenameKey, datadict.String)
}

// AsHuman returns ok false unless the character is a Human.
func (c CharacterNameWithInlineFragment) AsHuman() (CharacterNameWithInlineFragmentAsHuman, bool, error) {
	return selectionset.As(c, CharacterNameWithInlineFragmentAsHumanType)
}

// AsDroid returns ok false unless the character is a Droid.
func (c CharacterNameWithInlineFragment) AsDroid() (CharacterNameWithInlineFragmentAsDroid, bool, error) {
	return selectionset.As(c, CharacterNameWithInlineFragmentAsDroidType)
}

func NewCharacterNameWithInlineFragment(typename string) (CharacterNameWithInlineFragment, error) {
	return selectionset.Construct(CharacterNameWithInlineFragmentType, map[string]datadict.Value{
		datadict.TypenameKey: datadict.StringValue(typename),
	})
}

func (h CharacterNameWithInlineFragmentAsHuman) DataDict() *datadict.DataDict { return h.data }

// Friends are this human's friends, or an empty list if they have none.
func (h CharacterNameWithInlineFragmentAsHuman) Friends() (nullable.Nullable[[]nullable.Nullable[CharacterNameWithInlineFragmentAsHumanFriend]], error) {
	return selectionset.Get(h, CharacterNameWithInlineFragmentAsHumanType, "friends",
		optionalObjects(CharacterNameWithInlineFragmentAsHumanFriendType))
}

func NewCharacterNameWithInlineFragmentAsHuman(friends nullable.Nullable[[]nullable.Nullable[CharacterNameWithInlineFragmentAsHumanFriend]]) (CharacterNameWithInlineFragmentAsHuman, error) {
	return selectionset.Construct(CharacterNameWithInlineFragmentAsHumanType, map[string]datadict.Value{
		"friends": objects(friends),
	})
}

func (f CharacterNameWithInlineFragmentAsHumanFriend) DataDict() *datadict.DataDict { return f.data }

// AppearsIn lists the movies this character appears in.
func (f CharacterNameWithInlineFragmentAsHumanFriend) AppearsIn() ([]nullable.Nullable[enum.Enum[Episode]], error) {
	return selectionset.Get(f, CharacterNameWithInlineFragmentAsHumanFriendType, "appearsIn",
		datadict.ListOf(datadict.Optional(datadict.Enum[Episode]())))
}

func NewCharacterNameWithInlineFragmentAsHumanFriend(typename string, appearsIn []nullable.Nullable[enum.Enum[Episode]]) (CharacterNameWithInlineFragmentAsHumanFriend, error) {
	episodes := datadict.FromList(appearsIn, func(e nullable.Nullable[enum.Enum[Episode]]) datadict.Value {
		return datadict.FromOptional(e, datadict.FromEnum[Episode])
	})
	return selectionset.Construct(CharacterNameWithInlineFragmentAsHumanFriendType, map[string]datadict.Value{
		datadict.TypenameKey: datadict.StringValue(typename),
		"appearsIn":          episodes,
	})
}

func (d CharacterNameWithInlineFragmentAsDroid) DataDict() *datadict.DataDict { return d.data }

// Name is the name of the character.
func (d CharacterNameWithInlineFragmentAsDroid) Name() (string, error) {
	return selectionset.Get(d, CharacterNameWithInlineFragmentAsDroidType, "name", datadict.String)
}

// Friends are the friends of the character, or an empty list if they have
// none.
func (d CharacterNameWithInlineFragmentAsDroid) Friends() (nullable.Nullable[[]nullable.Nullable[FriendsNamesFriend]], error) {
	return selectionset.Get(d, CharacterNameWithInlineFragmentAsDroidType, "friends", optionalObjects(FriendsNamesFriendType))
}

func (d CharacterNameWithInlineFragmentAsDroid) Fragments() CharacterNameWithInlineFragmentAsDroidFragments {
	return CharacterNameWithInlineFragmentAsDroidFragments{selectionset.Fragments(d, CharacterNameWithInlineFragmentAsDroidType)}
}

func NewCharacterNameWithInlineFragmentAsDroid(name string, friends nullable.Nullable[[]nullable.Nullable[FriendsNamesFriend]]) (CharacterNameWithInlineFragmentAsDroid, error) {
	return selectionset.Construct(CharacterNameWithInlineFragmentAsDroidType, map[string]datadict.Value{
		"name":    datadict.StringValue(name),
		"friends": objects(friends),
	})
}

// CharacterNameWithInlineFragmentAsDroidFragments exposes the fragments
// spread into AsDroid.
type CharacterNameWithInlineFragmentAsDroidFragments struct {
	fc selectionset.FragmentContainer
}

func (f CharacterNameWithInlineFragmentAsDroidFragments) CharacterName() (CharacterName, error) {
	c, _, err := selectionset.ToFragment(f.fc, CharacterNameType)
	return c, err
}

func (f CharacterNameWithInlineFragmentAsDroidFragments) FriendsNames() (FriendsNames, error) {
	c, _, err := selectionset.ToFragment(f.fc, FriendsNamesType)
	return c, err
}

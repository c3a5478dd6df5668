package starwarsapi

import (
	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/nullable"
	"github.com/hanpama/graphshape/internal/selectionset"
)

// FriendsNames selects the names of a character's friends.
type FriendsNames struct{ data *datadict.DataDict }

// FriendsNamesFriend is one friend selected by FriendsNames.
type FriendsNamesFriend struct{ data *datadict.DataDict }

var FriendsNamesFriendType = selectionset.NewType(selectionset.Definition{
	Name:   "FriendsNames.Friend",
	Parent: characterType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.Field("name", nonNullString),
	},
}, func(d *datadict.DataDict) FriendsNamesFriend { return FriendsNamesFriend{d} })

var FriendsNamesType = selectionset.NewType(selectionset.Definition{
	Name:   "FriendsNames",
	Parent: characterType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.Field("friends", characterList).WithShape(FriendsNamesFriendType),
	},
	FragmentDefinition: `fragment FriendsNames on Character {
  __typename
  friends {
    __typename
    name
  }
}`,
}, func(d *datadict.DataDict) FriendsNames { return FriendsNames{d} })

func (f FriendsNames) DataDict() *datadict.DataDict { return f.data }

// Friends are the friends of the character, or an empty list if they have
// none.
func (f FriendsNames) Friends() (nullable.Nullable[[]nullable.Nullable[FriendsNamesFriend]], error) {
	return selectionset.Get(f, FriendsNamesType, "friends", optionalObjects(FriendsNamesFriendType))
}

func NewFriendsNames(typename string, friends nullable.Nullable[[]nullable.Nullable[FriendsNamesFriend]]) (FriendsNames, error) {
	return selectionset.Construct(FriendsNamesType, map[string]datadict.Value{
		datadict.TypenameKey: datadict.StringValue(typename),
		"friends":            objects(friends),
	})
}

func (f FriendsNamesFriend) DataDict() *datadict.DataDict { return f.data }

func (f FriendsNamesFriend) Name() (string, error) {
	return selectionset.Get(f, FriendsNamesFriendType, "name", datadict.String)
}

func NewFriendsNamesFriend(typename, name string) (FriendsNamesFriend, error) {
	return selectionset.Construct(FriendsNamesFriendType, map[string]datadict.Value{
		datadict.TypenameKey: datadict.StringValue(typename),
		"name":               datadict.StringValue(name),
	})
}

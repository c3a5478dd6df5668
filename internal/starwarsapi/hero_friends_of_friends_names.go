package starwarsapi

import (
	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/enum"
	"github.com/hanpama/graphshape/internal/nullable"
	"github.com/hanpama/graphshape/internal/operation"
	"github.com/hanpama/graphshape/internal/selectionset"
)

const heroFriendsOfFriendsNamesDocument = `query HeroFriendsOfFriendsNames($episode: Episode) {
  hero(episode: $episode) {
    __typename
    friends {
      __typename
      id
      friends {
        __typename
        name
      }
    }
  }
}`

// HeroFriendsOfFriendsNamesQuery asks for the names of the friends of the
// hero's friends. It is sent as an automatically persisted query.
type HeroFriendsOfFriendsNamesQuery struct {
	Episode nullable.Nullable[enum.Enum[Episode]]
}

var HeroFriendsOfFriendsNamesDefinition = &operation.Definition[HeroFriendsOfFriendsNamesData]{
	Name:      "HeroFriendsOfFriendsNames",
	Type:      operation.Query,
	Document:  operation.AutomaticallyPersisted("", heroFriendsOfFriendsNamesDocument),
	Variables: mustVariables(heroFriendsOfFriendsNamesDocument),
	Data:      HeroFriendsOfFriendsNamesDataType,
}

func (q HeroFriendsOfFriendsNamesQuery) Variables() operation.Variables {
	return operation.Variables{"episode": q.Episode.Any()}
}

func (q HeroFriendsOfFriendsNamesQuery) Operation() (*operation.Operation[HeroFriendsOfFriendsNamesData], error) {
	return operation.New(HeroFriendsOfFriendsNamesDefinition, q.Variables())
}

type (
	HeroFriendsOfFriendsNamesData             struct{ data *datadict.DataDict }
	HeroFriendsOfFriendsNamesHero             struct{ data *datadict.DataDict }
	HeroFriendsOfFriendsNamesHeroFriend       struct{ data *datadict.DataDict }
	HeroFriendsOfFriendsNamesHeroFriendFriend struct{ data *datadict.DataDict }
)

var HeroFriendsOfFriendsNamesHeroFriendFriendType = selectionset.NewType(selectionset.Definition{
	Name:   "HeroFriendsOfFriendsNames.Data.Hero.Friend.Friend",
	Parent: characterType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.Field("name", nonNullString),
	},
}, func(d *datadict.DataDict) HeroFriendsOfFriendsNamesHeroFriendFriend {
	return HeroFriendsOfFriendsNamesHeroFriendFriend{d}
})

var HeroFriendsOfFriendsNamesHeroFriendType = selectionset.NewType(selectionset.Definition{
	Name:   "HeroFriendsOfFriendsNames.Data.Hero.Friend",
	Parent: characterType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.Field("id", nonNullID),
		selectionset.Field("friends", characterList).WithShape(HeroFriendsOfFriendsNamesHeroFriendFriendType),
	},
}, func(d *datadict.DataDict) HeroFriendsOfFriendsNamesHeroFriend {
	return HeroFriendsOfFriendsNamesHeroFriend{d}
})

var HeroFriendsOfFriendsNamesHeroType = selectionset.NewType(selectionset.Definition{
	Name:   "HeroFriendsOfFriendsNames.Data.Hero",
	Parent: characterType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.Field("friends", characterList).WithShape(HeroFriendsOfFriendsNamesHeroFriendType),
	},
}, func(d *datadict.DataDict) HeroFriendsOfFriendsNamesHero { return HeroFriendsOfFriendsNamesHero{d} })

var HeroFriendsOfFriendsNamesDataType = selectionset.NewType(selectionset.Definition{
	Name:   "HeroFriendsOfFriendsNames.Data",
	Parent: queryType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		selectionset.Field("hero", characterRef).
			WithArguments(map[string]any{"episode": selectionset.Variable("episode")}).
			WithShape(HeroFriendsOfFriendsNamesHeroType),
	},
}, func(d *datadict.DataDict) HeroFriendsOfFriendsNamesData { return HeroFriendsOfFriendsNamesData{d} })

func (d HeroFriendsOfFriendsNamesData) DataDict() *datadict.DataDict { return d.data }

func (d HeroFriendsOfFriendsNamesData) Hero() (nullable.Nullable[HeroFriendsOfFriendsNamesHero], error) {
	return selectionset.Get(d, HeroFriendsOfFriendsNamesDataType, "hero",
		datadict.Optional(selectionset.Object(HeroFriendsOfFriendsNamesHeroType)))
}

func NewHeroFriendsOfFriendsNamesData(hero nullable.Nullable[HeroFriendsOfFriendsNamesHero]) (HeroFriendsOfFriendsNamesData, error) {
	return selectionset.Construct(HeroFriendsOfFriendsNamesDataType, map[string]datadict.Value{
		"hero": datadict.FromOptional(hero, object[HeroFriendsOfFriendsNamesHero]),
	})
}

func (h HeroFriendsOfFriendsNamesHero) DataDict() *datadict.DataDict { return h.data }

// Friends are the friends of the character, or an empty list if they have
// none.
func (h HeroFriendsOfFriendsNamesHero) Friends() (nullable.Nullable[[]nullable.Nullable[HeroFriendsOfFriendsNamesHeroFriend]], error) {
	return selectionset.Get(h, HeroFriendsOfFriendsNamesHeroType, "friends", optionalObjects(HeroFriendsOfFriendsNamesHeroFriendType))
}

func NewHeroFriendsOfFriendsNamesHero(typename string, friends nullable.Nullable[[]nullable.Nullable[HeroFriendsOfFriendsNamesHeroFriend]]) (HeroFriendsOfFriendsNamesHero, error) {
	return selectionset.Construct(HeroFriendsOfFriendsNamesHeroType, map[string]datadict.Value{
		datadict.TypenameKey: datadict.StringValue(typename),
		"friends":            objects(friends),
	})
}

func (f HeroFriendsOfFriendsNamesHeroFriend) DataDict() *datadict.DataDict { return f.data }

// ID is the ID of the character.
func (f HeroFriendsOfFriendsNamesHeroFriend) ID() (string, error) {
	return selectionset.Get(f, HeroFriendsOfFriendsNamesHeroFriendType, "id", datadict.ID)
}

func (f HeroFriendsOfFriendsNamesHeroFriend) Friends() (nullable.Nullable[[]nullable.Nullable[HeroFriendsOfFriendsNamesHeroFriendFriend]], error) {
	return selectionset.Get(f, HeroFriendsOfFriendsNamesHeroFriendType, "friends", optionalObjects(HeroFriendsOfFriendsNamesHeroFriendFriendType))
}

func NewHeroFriendsOfFriendsNamesHeroFriend(typename, id string, friends nullable.Nullable[[]nullable.Nullable[HeroFriendsOfFriendsNamesHeroFriendFriend]]) (HeroFriendsOfFriendsNamesHeroFriend, error) {
	return selectionset.Construct(HeroFriendsOfFriendsNamesHeroFriendType, map[string]datadict.Value{
		datadict.TypenameKey: datadict.StringValue(typename),
		"id":                 datadict.StringValue(id),
		"friends":            objects(friends),
	})
}

func (f HeroFriendsOfFriendsNamesHeroFriendFriend) DataDict() *datadict.DataDict { return f.data }

func (f HeroFriendsOfFriendsNamesHeroFriendFriend) Name() (string, error) {
	return selectionset.Get(f, HeroFriendsOfFriendsNamesHeroFriendFriendType, "name", datadict.String)
}

func NewHeroFriendsOfFriendsNamesHeroFriendFriend(typename, name string) (HeroFriendsOfFriendsNamesHeroFriendFriend, error) {
	return selectionset.Construct(HeroFriendsOfFriendsNamesHeroFriendFriendType, map[string]datadict.Value{
		datadict.TypenameKey: datadict.StringValue(typename),
		"name":               datadict.StringValue(name),
	})
}

package starwarsapi

import (
	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/nullable"
	"github.com/hanpama/graphshape/internal/operation"
	"github.com/hanpama/graphshape/internal/schema"
	"github.com/hanpama/graphshape/internal/selectionset"
)

const humanDocument = `query Human($id: ID!) {
  human(id: $id) {
    __typename
    id
    name
    friends {
      __typename
      ...CharacterName
    }
  }
}`

// HumanQuery looks up a human by ID.
type HumanQuery struct {
	ID string
}

var HumanDefinition = &operation.Definition[HumanData]{
	Name:      "Human",
	Type:      operation.Query,
	Document:  operation.Literal(humanDocument + "\n\n" + CharacterNameType.FragmentDefinition()),
	Variables: mustVariables(humanDocument),
	Data:      HumanDataType,
}

func (q HumanQuery) Variables() operation.Variables {
	return operation.Variables{"id": nullable.Some[any](q.ID)}
}

func (q HumanQuery) Operation() (*operation.Operation[HumanData], error) {
	return operation.New(HumanDefinition, q.Variables())
}

type (
	HumanData            struct{ data *datadict.DataDict }
	HumanDataHuman       struct{ data *datadict.DataDict }
	HumanDataHumanFriend struct{ data *datadict.DataDict }
)

var HumanDataHumanFriendType = selectionset.NewType(selectionset.Definition{
	Name:   "Human.Data.Human.Friend",
	Parent: characterType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.FragmentSpread(CharacterNameType),
	},
}, func(d *datadict.DataDict) HumanDataHumanFriend { return HumanDataHumanFriend{d} })

var HumanDataHumanType = selectionset.NewType(selectionset.Definition{
	Name:   "Human.Data.Human",
	Parent: humanType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.Field("id", nonNullID),
		selectionset.Field("name", nonNullString),
		selectionset.Field("friends", characterList).WithShape(HumanDataHumanFriendType),
	},
}, func(d *datadict.DataDict) HumanDataHuman { return HumanDataHuman{d} })

var HumanDataType = selectionset.NewType(selectionset.Definition{
	Name:   "Human.Data",
	Parent: queryType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		selectionset.Field("human", schema.NamedType("Human")).
			WithArguments(map[string]any{"id": selectionset.Variable("id")}).
			WithShape(HumanDataHumanType),
	},
}, func(d *datadict.DataDict) HumanData { return HumanData{d} })

func (d HumanData) DataDict() *datadict.DataDict { return d.data }

func (d HumanData) Human() (nullable.Nullable[HumanDataHuman], error) {
	return selectionset.Get(d, HumanDataType, "human", datadict.Optional(selectionset.Object(HumanDataHumanType)))
}

func NewHumanData(human nullable.Nullable[HumanDataHuman]) (HumanData, error) {
	return selectionset.Construct(HumanDataType, map[string]datadict.Value{
		"human": datadict.FromOptional(human, object[HumanDataHuman]),
	})
}

func (h HumanDataHuman) DataDict() *datadict.DataDict { return h.data }

func (h HumanDataHuman) ID() (string, error) {
	return selectionset.Get(h, HumanDataHumanType, "id", datadict.ID)
}

func (h HumanDataHuman) Name() (string, error) {
	return selectionset.Get(h, HumanDataHumanType, "name", datadict.String)
}

// Friends are this human's friends, or an empty list if they have none.
func (h HumanDataHuman) Friends() (nullable.Nullable[[]nullable.Nullable[HumanDataHumanFriend]], error) {
	return selectionset.Get(h, HumanDataHumanType, "friends", optionalObjects(HumanDataHumanFriendType))
}

func NewHumanDataHuman(id, name string, friends nullable.Nullable[[]nullable.Nullable[HumanDataHumanFriend]]) (HumanDataHuman, error) {
	return selectionset.Construct(HumanDataHumanType, map[string]datadict.Value{
		"id":      datadict.StringValue(id),
		"name":    datadict.StringValue(name),
		"friends": objects(friends),
	})
}

func (f HumanDataHumanFriend) DataDict() *datadict.DataDict { return f.data }

func (f HumanDataHumanFriend) Name() (string, error) {
	return selectionset.Get(f, HumanDataHumanFriendType, "name", datadict.String)
}

func (f HumanDataHumanFriend) Fragments() HumanDataHumanFriendFragments {
	return HumanDataHumanFriendFragments{selectionset.Fragments(f, HumanDataHumanFriendType)}
}

func NewHumanDataHumanFriend(typename, name string) (HumanDataHumanFriend, error) {
	return selectionset.Construct(HumanDataHumanFriendType, map[string]datadict.Value{
		datadict.TypenameKey: datadict.StringValue(typename),
		"name":               datadict.StringValue(name),
	})
}

type HumanDataHumanFriendFragments struct {
	fc selectionset.FragmentContainer
}

func (f HumanDataHumanFriendFragments) CharacterName() (CharacterName, error) {
	c, _, err := selectionset.ToFragment(f.fc, CharacterNameType)
	return c, err
}

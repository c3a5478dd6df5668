package starwarsapi

import (
	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/selectionset"
)

// CharacterName selects the name of any character.
type CharacterName struct{ data *datadict.DataDict }

var CharacterNameType = selectionset.NewType(selectionset.Definition{
	Name:   "CharacterName",
	Parent: characterType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.Field("name", nonNullString),
	},
	FragmentDefinition: `fragment CharacterName on Character {
  __typename
  name
}`,
}, func(d *datadict.DataDict) CharacterName { return CharacterName{d} })

func (c CharacterName) DataDict() *datadict.DataDict { return c.data }

func (c CharacterName) Typename() (string, error) {
	return selectionset.Get(c, CharacterNameType, datadict.TypenameKey, datadict.String)
}

// Name is the name of the character.
func (c CharacterName) Name() (string, error) {
	return selectionset.Get(c, CharacterNameType, "name", datadict.String)
}

func NewCharacterName(typename, name string) (CharacterName, error) {
	return selectionset.Construct(CharacterNameType, map[string]datadict.Value{
		datadict.TypenameKey: datadict.StringValue(typename),
		"name":               datadict.StringValue(name),
	})
}

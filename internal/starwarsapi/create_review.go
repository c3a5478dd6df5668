package starwarsapi

import (
	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/enum"
	"github.com/hanpama/graphshape/internal/nullable"
	"github.com/hanpama/graphshape/internal/operation"
	"github.com/hanpama/graphshape/internal/schema"
	"github.com/hanpama/graphshape/internal/selectionset"
)

const createReviewForEpisodeDocument = `mutation CreateReviewForEpisode($episode: Episode!, $review: ReviewInput!) {
  createReview(episode: $episode, review: $review) {
    __typename
    stars
    commentary
  }
}`

// ReviewInput is the input object sent when someone is creating a new
// review.
type ReviewInput struct {
	// 0-5 stars
	Stars int
	// Comment about the movie, optional
	Commentary nullable.Nullable[string]
}

func (r ReviewInput) Input() operation.InputObject {
	return operation.InputObject{
		"stars":      nullable.Some[any](r.Stars),
		"commentary": r.Commentary.Any(),
	}
}

// CreateReviewForEpisodeMutation posts a review. Its document is known to
// the server ahead of time and is sent by identifier only.
type CreateReviewForEpisodeMutation struct {
	Episode enum.Enum[Episode]
	Review  ReviewInput
}

var CreateReviewForEpisodeDefinition = &operation.Definition[CreateReviewForEpisodeData]{
	Name:      "CreateReviewForEpisode",
	Type:      operation.Mutation,
	Document:  operation.Persisted(operation.Identifier(createReviewForEpisodeDocument)),
	Variables: mustVariables(createReviewForEpisodeDocument),
	Data:      CreateReviewForEpisodeDataType,
}

func (m CreateReviewForEpisodeMutation) Variables() operation.Variables {
	return operation.Variables{
		"episode": nullable.Some[any](m.Episode),
		"review":  nullable.Some[any](m.Review.Input()),
	}
}

func (m CreateReviewForEpisodeMutation) Operation() (*operation.Operation[CreateReviewForEpisodeData], error) {
	return operation.New(CreateReviewForEpisodeDefinition, m.Variables())
}

type (
	CreateReviewForEpisodeData         struct{ data *datadict.DataDict }
	CreateReviewForEpisodeCreateReview struct{ data *datadict.DataDict }
)

var CreateReviewForEpisodeCreateReviewType = selectionset.NewType(selectionset.Definition{
	Name:   "CreateReviewForEpisode.Data.CreateReview",
	Parent: reviewType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		typenameField(),
		selectionset.Field("stars", nonNullInt),
		selectionset.Field("commentary", nullableString),
	},
}, func(d *datadict.DataDict) CreateReviewForEpisodeCreateReview {
	return CreateReviewForEpisodeCreateReview{d}
})

var CreateReviewForEpisodeDataType = selectionset.NewType(selectionset.Definition{
	Name:   "CreateReviewForEpisode.Data",
	Parent: mutationType,
	Schema: Schema,
	Selections: []selectionset.Selection{
		selectionset.Field("createReview", schema.NamedType("Review")).
			WithArguments(map[string]any{
				"episode": selectionset.Variable("episode"),
				"review":  selectionset.Variable("review"),
			}).
			WithShape(CreateReviewForEpisodeCreateReviewType),
	},
}, func(d *datadict.DataDict) CreateReviewForEpisodeData { return CreateReviewForEpisodeData{d} })

func (d CreateReviewForEpisodeData) DataDict() *datadict.DataDict { return d.data }

func (d CreateReviewForEpisodeData) CreateReview() (nullable.Nullable[CreateReviewForEpisodeCreateReview], error) {
	return selectionset.Get(d, CreateReviewForEpisodeDataType, "createReview",
		datadict.Optional(selectionset.Object(CreateReviewForEpisodeCreateReviewType)))
}

func (r CreateReviewForEpisodeCreateReview) DataDict() *datadict.DataDict { return r.data }

// Stars is the number of stars this review gave, 1-5.
func (r CreateReviewForEpisodeCreateReview) Stars() (int, error) {
	return selectionset.Get(r, CreateReviewForEpisodeCreateReviewType, "stars", datadict.Int)
}

func (r CreateReviewForEpisodeCreateReview) Commentary() (nullable.Nullable[string], error) {
	return selectionset.Get(r, CreateReviewForEpisodeCreateReviewType, "commentary", datadict.Optional(datadict.String))
}

func NewCreateReviewForEpisodeCreateReview(stars int, commentary nullable.Nullable[string]) (CreateReviewForEpisodeCreateReview, error) {
	return selectionset.Construct(CreateReviewForEpisodeCreateReviewType, map[string]datadict.Value{
		"stars":      datadict.IntValue(stars),
		"commentary": datadict.FromOptional(commentary, datadict.StringValue),
	})
}

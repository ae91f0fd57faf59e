package locationRepo

import (
	"context"

	"studyon/database"
	"studyon/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// LocationRepository is the boundary to the remote document store for
// study locations. Append and set operations are atomic at the
// document level; reads return whatever snapshot is current.
type LocationRepository interface {
	FetchAll(ctx context.Context) ([]models.StudyLocation, error)
	GetByID(ctx context.Context, id string) (*models.StudyLocation, error)
	Create(ctx context.Context, loc models.StudyLocation) (string, error)

	// SetFields merges the given fields into the document.
	SetFields(ctx context.Context, id string, fields map[string]any) error

	// SetRatingFields overwrites the rating aggregate. Two concurrent
	// callers race and the last write wins; see the rating service.
	SetRatingFields(ctx context.Context, id string, rating float64, num int) error

	// AppendDynamicReview appends one encoded sample to the
	// dynamicReviews log atomically. Entries are never rewritten.
	AppendDynamicReview(ctx context.Context, id string, entry string) error

	// ReplaceDynamicReviews swaps the whole log in one write. Only the
	// retention compactor uses this.
	ReplaceDynamicReviews(ctx context.Context, id string, entries []string) error

	AddComment(ctx context.Context, id string, comment models.Comment) error

	// Listen invokes onChange with the current document every time a
	// location changes, until ctx is cancelled.
	Listen(ctx context.Context, onChange func(models.StudyLocation)) error
}

type mongoLocationRepo struct {
	coll *mongo.Collection
}

// NewMongoLocationRepo returns a LocationRepository backed by the
// studyLocations collection.
func NewMongoLocationRepo() LocationRepository {
	db := database.MongoClient.Database("studyon")
	return &mongoLocationRepo{
		coll: db.Collection("studyLocations"),
	}
}

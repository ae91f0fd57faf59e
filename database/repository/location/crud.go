package locationRepo

import (
	"context"
	"errors"

	"studyon/models"
	"studyon/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrLocationNotFound is returned when a document ID does not resolve.
var ErrLocationNotFound = errors.New("location not found")

// FetchAll returns every study location. Documents with missing or
// ill-typed fields decode with zero defaults rather than aborting the
// whole fetch; the defaulted field names are logged.
func (r *mongoLocationRepo) FetchAll(ctx context.Context) ([]models.StudyLocation, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logger := utils.GetLogger()
	var locations []models.StudyLocation
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			logger.Warn("skipping undecodable location document", zap.Error(err))
			continue
		}
		loc, defaulted := decodeLocation(raw)
		if len(defaulted) > 0 {
			logger.Warn("location document decoded with defaults",
				zap.String("documentID", loc.DocumentID),
				zap.Strings("fields", defaulted))
		}
		locations = append(locations, loc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return locations, nil
}

// GetByID returns one study location by document ID.
func (r *mongoLocationRepo) GetByID(ctx context.Context, id string) (*models.StudyLocation, error) {
	var raw bson.M
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	loc, defaulted := decodeLocation(raw)
	if len(defaulted) > 0 {
		utils.GetLogger().Warn("location document decoded with defaults",
			zap.String("documentID", loc.DocumentID),
			zap.Strings("fields", defaulted))
	}
	return &loc, nil
}

// Create inserts a new location document and returns its ID.
func (r *mongoLocationRepo) Create(ctx context.Context, loc models.StudyLocation) (string, error) {
	if loc.DocumentID == "" {
		loc.DocumentID = uuid.New().String()
	}
	if loc.DynamicReviews == nil {
		loc.DynamicReviews = []string{}
	}
	if loc.Comments == nil {
		loc.Comments = []models.Comment{}
	}
	if _, err := r.coll.InsertOne(ctx, loc); err != nil {
		return "", err
	}
	return loc.DocumentID, nil
}

// SetFields merges fields into the document without touching the rest.
func (r *mongoLocationRepo) SetFields(ctx context.Context, id string, fields map[string]any) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// SetRatingFields overwrites rating and num in one write.
func (r *mongoLocationRepo) SetRatingFields(ctx context.Context, id string, rating float64, num int) error {
	return r.SetFields(ctx, id, map[string]any{"rating": rating, "num": num})
}

// AppendDynamicReview pushes one encoded sample onto the log. $push is
// atomic per document, so concurrent submissions both land.
func (r *mongoLocationRepo) AppendDynamicReview(ctx context.Context, id string, entry string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$push": bson.M{"dynamicReviews": entry}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// ReplaceDynamicReviews swaps the full sample log.
func (r *mongoLocationRepo) ReplaceDynamicReviews(ctx context.Context, id string, entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	return r.SetFields(ctx, id, map[string]any{"dynamicReviews": entries})
}

// AddComment pushes a comment onto the document.
func (r *mongoLocationRepo) AddComment(ctx context.Context, id string, comment models.Comment) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// Listen streams location changes via a change stream until ctx ends.
func (r *mongoLocationRepo) Listen(ctx context.Context, onChange func(models.StudyLocation)) error {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.coll.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	logger := utils.GetLogger()
	for stream.Next(ctx) {
		var event struct {
			FullDocument bson.M `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			logger.Warn("failed to decode change stream event", zap.Error(err))
			continue
		}
		if event.FullDocument == nil {
			continue
		}
		loc, _ := decodeLocation(event.FullDocument)
		onChange(loc)
	}
	return stream.Err()
}

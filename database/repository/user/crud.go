package userRepo

import (
	"context"
	"errors"

	"studyon/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUserNotFound is returned when a UID does not resolve.
var ErrUserNotFound = errors.New("user not found")

// GetByID returns a user by Firebase UID.
func (r *mongoUserRepo) GetByID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Upsert writes the user document, creating it on first contact.
func (r *mongoUserRepo) Upsert(ctx context.Context, user models.User) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts)
	return err
}

// GetFavorites returns the user's favorite location IDs. A missing
// user document means an empty list, not an error.
func (r *mongoUserRepo) GetFavorites(ctx context.Context, uid string) ([]string, error) {
	user, err := r.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if user.FavoriteLocations == nil {
		return []string{}, nil
	}
	return user.FavoriteLocations, nil
}

// AddFavorite adds a location to the favorites set.
func (r *mongoUserRepo) AddFavorite(ctx context.Context, uid string, locationID string) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": uid},
		bson.M{"$addToSet": bson.M{"favoriteLocations": locationID}}, opts)
	return err
}

// RemoveFavorite removes a location from the favorites set.
func (r *mongoUserRepo) RemoveFavorite(ctx context.Context, uid string, locationID string) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": uid},
		bson.M{"$pull": bson.M{"favoriteLocations": locationID}})
	return err
}

// SetFCMToken stores the device token prompts are pushed to.
func (r *mongoUserRepo) SetFCMToken(ctx context.Context, uid string, token string) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": uid},
		bson.M{"$set": bson.M{"fcmToken": token}}, opts)
	return err
}

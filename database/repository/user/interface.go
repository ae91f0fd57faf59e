package userRepo

import (
	"context"

	"studyon/database"
	"studyon/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository stores per-user state: the favorites list and the FCM
// token proximity prompts are delivered to. Identity comes from the
// Firebase UID.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	Upsert(ctx context.Context, user models.User) error
	GetFavorites(ctx context.Context, uid string) ([]string, error)
	AddFavorite(ctx context.Context, uid string, locationID string) error
	RemoveFavorite(ctx context.Context, uid string, locationID string) error
	SetFCMToken(ctx context.Context, uid string, token string) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a UserRepository backed by the users collection.
func NewMongoUserRepo() UserRepository {
	db := database.MongoClient.Database("studyon")
	return &mongoUserRepo{
		coll: db.Collection("users"),
	}
}

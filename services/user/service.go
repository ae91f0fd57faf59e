package user

import (
	"context"
	"errors"

	userRepo "studyon/database/repository/user"
	"studyon/models"
)

// UserService scopes per-user state to the authenticated Firebase UID.
type UserService interface {
	GetFavorites(ctx context.Context, uid string) ([]string, error)
	AddFavorite(ctx context.Context, uid string, locationID string) error
	RemoveFavorite(ctx context.Context, uid string, locationID string) error
	RegisterFCMToken(ctx context.Context, uid string, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) GetFavorites(ctx context.Context, uid string) ([]string, error) {
	return s.Repo.GetFavorites(ctx, uid)
}

func (s *DefaultUserService) AddFavorite(ctx context.Context, uid string, locationID string) error {
	return s.Repo.AddFavorite(ctx, uid, locationID)
}

func (s *DefaultUserService) RemoveFavorite(ctx context.Context, uid string, locationID string) error {
	return s.Repo.RemoveFavorite(ctx, uid, locationID)
}

// RegisterFCMToken stores the device token prompts are pushed to.
// First contact bootstraps the user document; afterwards only the
// token field is touched.
func (s *DefaultUserService) RegisterFCMToken(ctx context.Context, uid string, token string) error {
	_, err := s.Repo.GetByID(ctx, uid)
	if errors.Is(err, userRepo.ErrUserNotFound) {
		return s.Repo.Upsert(ctx, models.User{
			ID:                uid,
			FavoriteLocations: []string{},
			FCMToken:          token,
		})
	}
	if err != nil {
		return err
	}
	return s.Repo.SetFCMToken(ctx, uid, token)
}

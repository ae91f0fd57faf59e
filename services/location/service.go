package location

import (
	"context"
	"encoding/json"
	"time"

	locationRepo "studyon/database/repository/location"
	"studyon/models"
	"studyon/services/rating"
	"studyon/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const feedCacheKey = "feed:locations"

// LocationView is a study location decorated with the derived,
// display-only signals. Nothing here is persisted.
type LocationView struct {
	models.StudyLocation
	OpenNow         bool               `json:"openNow"`
	Marker          models.MarkerColor `json:"marker"`
	Crowdedness     float64            `json:"crowdedness"`
	Noise           float64            `json:"noise"`
	CrowdednessText string             `json:"crowdednessText"`
	NoiseText       string             `json:"noiseText"`
}

// LocationService assembles the location feed for the map and list
// screens.
type LocationService interface {
	ListLocations(ctx context.Context) ([]LocationView, error)
	GetLocation(ctx context.Context, id string) (*LocationView, error)
	CreateLocation(ctx context.Context, loc models.StudyLocation) (string, error)
	UpdateLocation(ctx context.Context, id string, fields map[string]any) error
	AddComment(ctx context.Context, id string, comment models.Comment) error

	// Snapshot returns the raw location set for proximity scans.
	Snapshot(ctx context.Context) ([]models.StudyLocation, error)

	// InvalidateFeed drops the cached feed after a write.
	InvalidateFeed(ctx context.Context)
}

// DefaultLocationService is the production implementation.
type DefaultLocationService struct {
	Repo     locationRepo.LocationRepository
	Rating   *rating.DefaultRatingService
	Cache    *redis.Client
	CacheTTL time.Duration
}

func (s *DefaultLocationService) cacheTTL() time.Duration {
	if s.CacheTTL <= 0 {
		return 30 * time.Second
	}
	return s.CacheTTL
}

func (s *DefaultLocationService) ratingService() *rating.DefaultRatingService {
	if s.Rating != nil {
		return s.Rating
	}
	return &rating.DefaultRatingService{}
}

// ListLocations returns all locations with derived signals, from cache
// when fresh.
func (s *DefaultLocationService) ListLocations(ctx context.Context) ([]LocationView, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, feedCacheKey).Result()
		if err == nil {
			var views []LocationView
			if err := json.Unmarshal([]byte(cached), &views); err == nil {
				return views, nil
			}
			logger.Warn("dropping undecodable feed cache entry", zap.Error(err))
		}
	}

	locations, err := s.Repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]LocationView, 0, len(locations))
	for i := range locations {
		views = append(views, s.decorate(&locations[i]))
	}

	if s.Cache != nil {
		if data, err := json.Marshal(views); err == nil {
			if err := s.Cache.Set(ctx, feedCacheKey, data, s.cacheTTL()).Err(); err != nil {
				logger.Warn("failed to cache location feed", zap.Error(err))
			}
		}
	}
	return views, nil
}

// GetLocation returns one decorated location.
func (s *DefaultLocationService) GetLocation(ctx context.Context, id string) (*LocationView, error) {
	loc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.decorate(loc)
	return &view, nil
}

// CreateLocation inserts a new venue document.
func (s *DefaultLocationService) CreateLocation(ctx context.Context, loc models.StudyLocation) (string, error) {
	id, err := s.Repo.Create(ctx, loc)
	if err != nil {
		return "", err
	}
	s.InvalidateFeed(ctx)
	return id, nil
}

// UpdateLocation merges fields into an existing document.
func (s *DefaultLocationService) UpdateLocation(ctx context.Context, id string, fields map[string]any) error {
	if err := s.Repo.SetFields(ctx, id, fields); err != nil {
		return err
	}
	s.InvalidateFeed(ctx)
	return nil
}

// AddComment appends a comment to the document.
func (s *DefaultLocationService) AddComment(ctx context.Context, id string, comment models.Comment) error {
	if comment.Date.IsZero() {
		comment.Date = time.Now()
	}
	if err := s.Repo.AddComment(ctx, id, comment); err != nil {
		return err
	}
	s.InvalidateFeed(ctx)
	return nil
}

// Snapshot returns the raw location set, bypassing decoration.
func (s *DefaultLocationService) Snapshot(ctx context.Context) ([]models.StudyLocation, error) {
	return s.Repo.FetchAll(ctx)
}

// WatchChanges subscribes to location document changes and drops the
// cached feed on every event, so reads reflect writes made outside
// this process. Blocks until ctx is cancelled or the stream fails.
func (s *DefaultLocationService) WatchChanges(ctx context.Context) error {
	return s.Repo.Listen(ctx, func(loc models.StudyLocation) {
		utils.GetLogger().Debug("location changed, dropping cached feed",
			zap.String("documentID", loc.DocumentID))
		s.InvalidateFeed(ctx)
	})
}

// InvalidateFeed drops the cached feed.
func (s *DefaultLocationService) InvalidateFeed(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, feedCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate feed cache", zap.Error(err))
	}
}

// decorate recomputes the derived display signals for one location.
// The sample log is decoded once: Annotate hands back the averages it
// wrote onto the env factors map.
func (s *DefaultLocationService) decorate(loc *models.StudyLocation) LocationView {
	crowd, noise, sampled := s.ratingService().Annotate(loc)

	// The -1 sentinel keeps "no data" distinct from a zero reading
	// when rendering text.
	crowdEffective, noiseEffective := crowd, noise
	if !sampled {
		crowdEffective, noiseEffective = models.LevelUnknown, models.LevelUnknown
	}

	return LocationView{
		StudyLocation:   *loc,
		OpenNow:         models.IsOpenNow(loc.Hours),
		Marker:          models.ColorForRating(loc.Rating),
		Crowdedness:     crowd,
		Noise:           noise,
		CrowdednessText: rating.LevelToText(0, crowdEffective, rating.CrowdednessScale),
		NoiseText:       rating.LevelToText(0, noiseEffective, rating.NoiseScale),
	}
}

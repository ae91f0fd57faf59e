package rating

import (
	"context"
	"fmt"
	"time"

	locationRepo "studyon/database/repository/location"
	"studyon/models"
	"studyon/utils"

	"go.uber.org/zap"
)

// RatingService maintains the two derived signals attached to a
// location: the star-rating mean and the short-window crowdedness/
// noise average.
type RatingService interface {
	SubmitRating(ctx context.Context, locationID string, stars float64) (*models.StudyLocation, error)
	SubmitDynamicSample(ctx context.Context, locationID string, crowdedness, noise float64) error
}

// DefaultRatingService is the production implementation.
type DefaultRatingService struct {
	Repo       locationRepo.LocationRepository
	WindowSize int

	// Invalidate is called after a successful write so the cached
	// location feed is refreshed on the next fetch. Optional.
	Invalidate func(ctx context.Context)
}

func (s *DefaultRatingService) windowSize() int {
	if s.WindowSize <= 0 {
		return DefaultWindowSize
	}
	return s.WindowSize
}

// SubmitRating folds a new star into the location's running mean and
// overwrites the stored rating fields. The computation runs against
// the currently fetched snapshot; two concurrent submissions race and
// the last write wins. That gap is accepted rather than hidden behind
// a transaction.
func (s *DefaultRatingService) SubmitRating(ctx context.Context, locationID string, stars float64) (*models.StudyLocation, error) {
	if stars < 0 || stars > 5 {
		return nil, fmt.Errorf("%w: rating %v outside [0,5]", ErrInvalidInput, stars)
	}

	loc, err := s.Repo.GetByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %s: %w", locationID, err)
	}

	loc.Rating, loc.Num = FoldRating(loc.Rating, loc.Num, stars)

	if err := s.Repo.SetRatingFields(ctx, locationID, loc.Rating, loc.Num); err != nil {
		// The optimistic value stays on the returned snapshot; the
		// next fetch reconciles with whatever the store holds.
		werr := &RemoteWriteFailure{Op: "setRatingFields", Err: err}
		utils.GetLogger().Error("rating write rejected",
			zap.String("locationID", locationID), zap.Error(werr))
		return loc, werr
	}

	s.invalidate(ctx)
	return loc, nil
}

// SubmitDynamicSample validates, encodes and atomically appends one
// crowdedness/noise reading to the location's sample log.
func (s *DefaultRatingService) SubmitDynamicSample(ctx context.Context, locationID string, crowdedness, noise float64) error {
	if crowdedness < models.LevelLow || crowdedness > models.LevelHigh {
		return fmt.Errorf("%w: crowdedness %v outside [1,3]", ErrInvalidInput, crowdedness)
	}
	if noise < models.LevelLow || noise > models.LevelHigh {
		return fmt.Errorf("%w: noise %v outside [1,3]", ErrInvalidInput, noise)
	}

	entry := EncodeSample(crowdedness, noise, time.Now())
	if err := s.Repo.AppendDynamicReview(ctx, locationID, entry); err != nil {
		werr := &RemoteWriteFailure{Op: "appendDynamicReview", Err: err}
		utils.GetLogger().Error("sample append rejected",
			zap.String("locationID", locationID), zap.Error(werr))
		return werr
	}

	s.invalidate(ctx)
	return nil
}

// Annotate recomputes the derived crowdedness/noise display values for
// a fetched location from the first-window rolling average of its
// sample log, writes them onto the env factors map and returns them.
// sampled is false when the log holds no decodable readings; the map
// is left untouched then. The derived values are never persisted.
func (s *DefaultRatingService) Annotate(loc *models.StudyLocation) (crowd, noise float64, sampled bool) {
	samples := DecodeLog(loc.DynamicReviews)
	if loc.EnvFactors.DynamicData == nil {
		loc.EnvFactors.DynamicData = map[string]float64{}
	}
	if len(samples) == 0 {
		return 0, 0, false
	}
	crowd = RollingAverage(samples, FieldCrowdedness, s.windowSize())
	noise = RollingAverage(samples, FieldNoise, s.windowSize())
	loc.EnvFactors.DynamicData["crowdedness"] = crowd
	loc.EnvFactors.DynamicData["noise"] = noise
	return crowd, noise, true
}

func (s *DefaultRatingService) invalidate(ctx context.Context) {
	if s.Invalidate != nil {
		s.Invalidate(ctx)
	}
}

package cron

import (
	"context"
	"time"

	locationRepo "studyon/database/repository/location"
	"studyon/services/rating"
	"studyon/utils"

	"go.uber.org/zap"
)

// StartSampleCompactor trims sample logs that have grown beyond
// maxSamples, folding the trimmed readings into the stored running
// values so the history is rolled up rather than lost. The log is
// append-only by default; this runs only when a retention cap is
// configured.
func StartSampleCompactor(ctx context.Context, repo locationRepo.LocationRepository, maxSamples int) {
	if maxSamples <= 0 {
		return
	}

	logger := utils.GetLogger()
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("sample compactor shutdown signal received")
			return
		case <-ticker.C:
			if err := compactOnce(ctx, repo, maxSamples); err != nil {
				logger.Warn("sample compaction pass failed", zap.Error(err))
			}
		}
	}
}

func compactOnce(ctx context.Context, repo locationRepo.LocationRepository, maxSamples int) error {
	locations, err := repo.FetchAll(ctx)
	if err != nil {
		return err
	}

	logger := utils.GetLogger()
	for _, loc := range locations {
		if len(loc.DynamicReviews) <= maxSamples {
			continue
		}

		overflow := len(loc.DynamicReviews) - maxSamples
		trimmed := rating.DecodeLog(loc.DynamicReviews[:overflow])
		kept := loc.DynamicReviews[overflow:]

		// Fold the trimmed readings into the stored baseline.
		if len(trimmed) > 0 {
			crowd := rating.RollingAverage(trimmed, rating.FieldCrowdedness, len(trimmed))
			noise := rating.RollingAverage(trimmed, rating.FieldNoise, len(trimmed))
			fields := map[string]any{
				"envFactors.dynamicData.crowdedness": crowd,
				"envFactors.dynamicData.noise":       noise,
			}
			if err := repo.SetFields(ctx, loc.DocumentID, fields); err != nil {
				logger.Warn("failed to roll up trimmed samples",
					zap.String("documentID", loc.DocumentID), zap.Error(err))
				continue
			}
		}

		if err := repo.ReplaceDynamicReviews(ctx, loc.DocumentID, kept); err != nil {
			logger.Warn("failed to trim sample log",
				zap.String("documentID", loc.DocumentID), zap.Error(err))
			continue
		}
		logger.Info("compacted sample log",
			zap.String("documentID", loc.DocumentID),
			zap.Int("trimmed", overflow),
			zap.Int("kept", len(kept)))
	}
	return nil
}

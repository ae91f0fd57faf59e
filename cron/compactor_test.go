package cron

import (
	"context"
	"testing"
	"time"

	"studyon/models"
	"studyon/services/rating"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationRepo struct {
	locations []models.StudyLocation

	fields   map[string]map[string]any
	replaced map[string][]string
}

func newFakeLocationRepo(locations ...models.StudyLocation) *fakeLocationRepo {
	return &fakeLocationRepo{
		locations: locations,
		fields:    map[string]map[string]any{},
		replaced:  map[string][]string{},
	}
}

func (f *fakeLocationRepo) FetchAll(ctx context.Context) ([]models.StudyLocation, error) {
	return f.locations, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string) (*models.StudyLocation, error) {
	return nil, nil
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc models.StudyLocation) (string, error) {
	return loc.DocumentID, nil
}

func (f *fakeLocationRepo) SetFields(ctx context.Context, id string, fields map[string]any) error {
	f.fields[id] = fields
	return nil
}

func (f *fakeLocationRepo) SetRatingFields(ctx context.Context, id string, ratingValue float64, num int) error {
	return nil
}

func (f *fakeLocationRepo) AppendDynamicReview(ctx context.Context, id string, entry string) error {
	return nil
}

func (f *fakeLocationRepo) ReplaceDynamicReviews(ctx context.Context, id string, entries []string) error {
	f.replaced[id] = entries
	return nil
}

func (f *fakeLocationRepo) AddComment(ctx context.Context, id string, comment models.Comment) error {
	return nil
}

func (f *fakeLocationRepo) Listen(ctx context.Context, onChange func(models.StudyLocation)) error {
	return nil
}

func sampleLog(crowdedness ...float64) []string {
	ts := time.Unix(1700000000, 0)
	entries := make([]string, 0, len(crowdedness))
	for i, c := range crowdedness {
		entries = append(entries, rating.EncodeSample(c, 3, ts.Add(time.Duration(i)*time.Minute)))
	}
	return entries
}

func TestCompactOnceBelowCapLeavesLogAlone(t *testing.T) {
	repo := newFakeLocationRepo(models.StudyLocation{
		DocumentID:     "loc-1",
		DynamicReviews: sampleLog(1, 2, 3),
	})

	require.NoError(t, compactOnce(context.Background(), repo, 5))
	assert.Empty(t, repo.fields)
	assert.Empty(t, repo.replaced)
}

func TestCompactOnceAtCapLeavesLogAlone(t *testing.T) {
	repo := newFakeLocationRepo(models.StudyLocation{
		DocumentID:     "loc-1",
		DynamicReviews: sampleLog(1, 2, 3, 2, 1),
	})

	require.NoError(t, compactOnce(context.Background(), repo, 5))
	assert.Empty(t, repo.fields)
	assert.Empty(t, repo.replaced)
}

func TestCompactOnceTrimsOldestAndRollsUpBaseline(t *testing.T) {
	log := sampleLog(1, 2, 3, 1, 1, 2, 2, 3)
	repo := newFakeLocationRepo(models.StudyLocation{
		DocumentID:     "loc-1",
		DynamicReviews: log,
	})

	require.NoError(t, compactOnce(context.Background(), repo, 5))

	// The three oldest entries are trimmed; the newest five survive in
	// order.
	require.Contains(t, repo.replaced, "loc-1")
	assert.Equal(t, log[3:], repo.replaced["loc-1"])

	// Their averages land on the stored baseline.
	fields := repo.fields["loc-1"]
	require.NotNil(t, fields)
	assert.InDelta(t, 2.0, fields["envFactors.dynamicData.crowdedness"].(float64), 1e-9)
	assert.InDelta(t, 3.0, fields["envFactors.dynamicData.noise"].(float64), 1e-9)
}

func TestCompactOnceCorruptOverflowStillTrims(t *testing.T) {
	log := append([]string{"garbage", "also garbage"}, sampleLog(1, 2, 3)...)
	repo := newFakeLocationRepo(models.StudyLocation{
		DocumentID:     "loc-1",
		DynamicReviews: log,
	})

	require.NoError(t, compactOnce(context.Background(), repo, 3))

	// Nothing decodable was trimmed, so the baseline is untouched, but
	// the log still shrinks to the cap.
	assert.Empty(t, repo.fields)
	assert.Equal(t, log[2:], repo.replaced["loc-1"])
}

func TestCompactOnceMixedLocations(t *testing.T) {
	repo := newFakeLocationRepo(
		models.StudyLocation{DocumentID: "small", DynamicReviews: sampleLog(1)},
		models.StudyLocation{DocumentID: "big", DynamicReviews: sampleLog(3, 3, 3, 1, 1)},
	)

	require.NoError(t, compactOnce(context.Background(), repo, 2))

	assert.NotContains(t, repo.replaced, "small")
	require.Contains(t, repo.replaced, "big")
	assert.Len(t, repo.replaced["big"], 2)
	assert.InDelta(t, 3.0, repo.fields["big"]["envFactors.dynamicData.crowdedness"].(float64), 1e-9)
}

package location

import (
	"context"
	"errors"
	"testing"
	"time"

	locationRepo "studyon/database/repository/location"
	"studyon/models"
	"studyon/services/rating"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationRepo struct {
	locations []models.StudyLocation

	fields    map[string]any
	comments  []models.Comment
	listenErr error
}

func (f *fakeLocationRepo) FetchAll(ctx context.Context) ([]models.StudyLocation, error) {
	return f.locations, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string) (*models.StudyLocation, error) {
	for i := range f.locations {
		if f.locations[i].DocumentID == id {
			loc := f.locations[i]
			return &loc, nil
		}
	}
	return nil, locationRepo.ErrLocationNotFound
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc models.StudyLocation) (string, error) {
	f.locations = append(f.locations, loc)
	return loc.DocumentID, nil
}

func (f *fakeLocationRepo) SetFields(ctx context.Context, id string, fields map[string]any) error {
	f.fields = fields
	return nil
}

func (f *fakeLocationRepo) SetRatingFields(ctx context.Context, id string, ratingValue float64, num int) error {
	return nil
}

func (f *fakeLocationRepo) AppendDynamicReview(ctx context.Context, id string, entry string) error {
	return nil
}

func (f *fakeLocationRepo) ReplaceDynamicReviews(ctx context.Context, id string, entries []string) error {
	return nil
}

func (f *fakeLocationRepo) AddComment(ctx context.Context, id string, comment models.Comment) error {
	f.comments = append(f.comments, comment)
	return nil
}

// Listen replays one change event per stored location, then ends the
// stream.
func (f *fakeLocationRepo) Listen(ctx context.Context, onChange func(models.StudyLocation)) error {
	for i := range f.locations {
		onChange(f.locations[i])
	}
	return f.listenErr
}

func sampledLocation() models.StudyLocation {
	ts := time.Unix(1700000000, 0)
	return models.StudyLocation{
		DocumentID: "loc-1",
		Name:       "British Library",
		Rating:     4.0,
		Num:        10,
		DynamicReviews: []string{
			rating.EncodeSample(1, 3, ts),
			rating.EncodeSample(1, 3, ts.Add(time.Minute)),
			rating.EncodeSample(2, 3, ts.Add(2*time.Minute)),
		},
	}
}

func newTestService(locations ...models.StudyLocation) (*DefaultLocationService, *fakeLocationRepo) {
	repo := &fakeLocationRepo{locations: locations}
	return &DefaultLocationService{
		Repo:   repo,
		Rating: &rating.DefaultRatingService{Repo: repo},
	}, repo
}

func TestGetLocationDecoratesDerivedSignals(t *testing.T) {
	svc, _ := newTestService(sampledLocation())

	view, err := svc.GetLocation(context.Background(), "loc-1")
	require.NoError(t, err)

	assert.InDelta(t, 4.0/3.0, view.Crowdedness, 1e-9)
	assert.InDelta(t, 3.0, view.Noise, 1e-9)
	assert.Equal(t, "Sparse", view.CrowdednessText)
	assert.Equal(t, "Loud", view.NoiseText)

	// The derived averages also land on the env factors map.
	assert.InDelta(t, 4.0/3.0, view.EnvFactors.DynamicData["crowdedness"], 1e-9)

	// Marker interpolates the rating.
	assert.InDelta(t, 0.2, view.Marker.Red, 1e-9)
	assert.InDelta(t, 0.8, view.Marker.Green, 1e-9)
}

func TestGetLocationWithoutSamplesRendersUnknown(t *testing.T) {
	svc, _ := newTestService(models.StudyLocation{DocumentID: "loc-1", Name: "Barbican"})

	view, err := svc.GetLocation(context.Background(), "loc-1")
	require.NoError(t, err)

	assert.Zero(t, view.Crowdedness)
	assert.Equal(t, "Unknown", view.CrowdednessText)
	assert.Equal(t, "Unknown", view.NoiseText)
}

func TestGetLocationUnknown(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetLocation(context.Background(), "missing")
	assert.ErrorIs(t, err, locationRepo.ErrLocationNotFound)
}

func TestListLocationsWithoutCache(t *testing.T) {
	svc, _ := newTestService(
		sampledLocation(),
		models.StudyLocation{DocumentID: "loc-2", Name: "Barbican"},
	)

	views, err := svc.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "British Library", views[0].Name)
	assert.Equal(t, "Unknown", views[1].CrowdednessText)
}

func TestWatchChangesDrainsEventsAndReturnsStreamError(t *testing.T) {
	svc, repo := newTestService(
		sampledLocation(),
		models.StudyLocation{DocumentID: "loc-2", Name: "Barbican"},
	)
	repo.listenErr = errors.New("stream closed")

	// Each replayed event runs the invalidation callback (a no-op
	// without a cache client); the stream error comes back unchanged.
	err := svc.WatchChanges(context.Background())
	assert.EqualError(t, err, "stream closed")
}

func TestWatchChangesCleanStreamEnd(t *testing.T) {
	svc, _ := newTestService(sampledLocation())
	assert.NoError(t, svc.WatchChanges(context.Background()))
}

func TestAddCommentStampsMissingDate(t *testing.T) {
	svc, repo := newTestService(sampledLocation())

	err := svc.AddComment(context.Background(), "loc-1", models.Comment{
		Name: "sam", Content: "great desks",
	})
	require.NoError(t, err)
	require.Len(t, repo.comments, 1)
	assert.WithinDuration(t, time.Now(), repo.comments[0].Date, 5*time.Second)
}

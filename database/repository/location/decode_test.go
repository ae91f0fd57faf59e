package locationRepo

import (
	"testing"
	"time"

	"studyon/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fullDocument() bson.M {
	return bson.M{
		"_id":       "loc-1",
		"name":      "British Library",
		"title":     "Quiet reading rooms",
		"category":  "library",
		"latitude":  51.5299,
		"longitude": -0.1276,
		"rating":    4.2,
		"num":       int32(17),
		"images":    bson.A{"a.jpg", "b.jpg"},
		"comments": bson.A{
			bson.M{
				"name":    "sam",
				"content": "great desks",
				"date":    primitive.NewDateTimeFromTime(time.Unix(1700000000, 0)),
			},
		},
		"hours": bson.M{
			"Monday": bson.M{"open": "09:30", "close": "20:00"},
			"Sunday": bson.M{"open": "Closed", "close": "Closed"},
		},
		"envFactors": bson.M{
			"dynamicData": bson.M{"crowdedness": 2.0, "noise": int32(1)},
			"staticData":  bson.M{"wifi": 1.0},
			"atmosphere":  bson.A{"calm"},
		},
		"dynamicReviews": bson.A{"1700000000___2,1"},
	}
}

func TestDecodeLocationFullDocument(t *testing.T) {
	loc, defaulted := decodeLocation(fullDocument())
	assert.Empty(t, defaulted)

	assert.Equal(t, "loc-1", loc.DocumentID)
	assert.Equal(t, "British Library", loc.Name)
	assert.Equal(t, 51.5299, loc.Latitude)
	assert.Equal(t, 4.2, loc.Rating)
	assert.Equal(t, 17, loc.Num)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, loc.Images)
	assert.Equal(t, []string{"1700000000___2,1"}, loc.DynamicReviews)

	require.Len(t, loc.Comments, 1)
	assert.Equal(t, "sam", loc.Comments[0].Name)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), loc.Comments[0].Date.UTC())

	assert.Equal(t, models.OpeningHours{Open: "09:30", Close: "20:00"}, loc.Hours["Monday"])
	assert.Equal(t, models.OpeningHours{Open: "Closed", Close: "Closed"}, loc.Hours["Sunday"])

	assert.Equal(t, 2.0, loc.EnvFactors.DynamicData["crowdedness"])
	assert.Equal(t, 1.0, loc.EnvFactors.DynamicData["noise"])
	assert.Equal(t, []string{"calm"}, loc.EnvFactors.Atmosphere)
}

func TestDecodeLocationMissingFieldsDefaultAndReport(t *testing.T) {
	loc, defaulted := decodeLocation(bson.M{"_id": "loc-2", "name": "Barbican"})

	// Every absent field defaults to its zero value.
	assert.Zero(t, loc.Rating)
	assert.Zero(t, loc.Num)
	assert.Empty(t, loc.Images)
	assert.Empty(t, loc.DynamicReviews)
	assert.NotNil(t, loc.Hours)
	assert.NotNil(t, loc.EnvFactors.DynamicData)

	// And is reported by name.
	for _, field := range []string{
		"title", "category", "latitude", "longitude", "rating", "num",
		"images", "dynamicReviews", "comments", "hours", "envFactors",
	} {
		assert.Contains(t, defaulted, field)
	}
	assert.NotContains(t, defaulted, "name")
}

func TestDecodeLocationLooselyTypedNumbers(t *testing.T) {
	doc := fullDocument()
	doc["latitude"] = int64(51)
	doc["rating"] = int32(4)
	doc["num"] = 9

	loc, defaulted := decodeLocation(doc)
	assert.Empty(t, defaulted)
	assert.Equal(t, 51.0, loc.Latitude)
	assert.Equal(t, 4.0, loc.Rating)
	assert.Equal(t, 9, loc.Num)
}

func TestDecodeLocationWrongTypeFieldsDefault(t *testing.T) {
	doc := fullDocument()
	doc["rating"] = "four"
	doc["hours"] = "weekdays"

	loc, defaulted := decodeLocation(doc)
	assert.Zero(t, loc.Rating)
	assert.Empty(t, loc.Hours)
	assert.Contains(t, defaulted, "rating")
	assert.Contains(t, defaulted, "hours")
}

func TestDecodeLocationSkipsMalformedArrayItems(t *testing.T) {
	doc := fullDocument()
	doc["images"] = bson.A{"a.jpg", int32(7), "b.jpg"}
	doc["comments"] = bson.A{"not a comment", bson.M{"name": "sam", "content": "ok"}}

	loc, defaulted := decodeLocation(doc)
	assert.Empty(t, defaulted)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, loc.Images)
	require.Len(t, loc.Comments, 1)
	assert.True(t, loc.Comments[0].Date.IsZero())
}

func TestDecodeLocationEmptyHourEntriesCloseTheDay(t *testing.T) {
	doc := fullDocument()
	doc["hours"] = bson.M{
		"Tuesday":   bson.M{"open": "", "close": "18:00"},
		"Wednesday": "open all day",
	}

	loc, defaulted := decodeLocation(doc)
	assert.Empty(t, defaulted)
	assert.Equal(t, models.ClosedSentinel, loc.Hours["Tuesday"].Open)
	assert.Equal(t, "18:00", loc.Hours["Tuesday"].Close)
	assert.Equal(t, models.ClosedSentinel, loc.Hours["Wednesday"].Open)
	assert.Equal(t, models.ClosedSentinel, loc.Hours["Wednesday"].Close)
}

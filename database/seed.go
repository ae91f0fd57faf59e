package database

import (
	"context"
	"errors"
	"time"

	"studyon/models"
	"studyon/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func weekdayHours() map[string]models.OpeningHours {
	return map[string]models.OpeningHours{
		"Monday":    {Open: "09:00", Close: "18:00"},
		"Tuesday":   {Open: "09:00", Close: "18:00"},
		"Wednesday": {Open: "09:00", Close: "18:00"},
		"Thursday":  {Open: "09:00", Close: "18:00"},
		"Friday":    {Open: "09:00", Close: "18:00"},
		"Saturday":  {Open: "10:00", Close: "16:00"},
		"Sunday":    {Open: models.ClosedSentinel, Close: models.ClosedSentinel},
	}
}

func sampleEnvFactors() models.EnvFactors {
	return models.EnvFactors{
		DynamicData: map[string]float64{
			"crowdedness": 2.5,
			"noise":       3.0,
		},
		StaticData: map[string]float64{
			"wifi speed":   4.0,
			"spaciousness": 4.5,
			"socket no":    5.0,
		},
		Atmosphere: []string{"Calm", "Nice music", "Pet-friendly"},
	}
}

func sampleLocations() []models.StudyLocation {
	now := time.Now()
	comments := []models.Comment{
		{Name: "Alice", Content: "Great place to study!", Date: now},
		{Name: "Bob", Content: "Quite noisy during peak hours.", Date: now},
		{Name: "Charlie", Content: "Friendly staff and good resources.", Date: now},
	}

	venue := func(name, title string, lat, lon, rating float64, num int) models.StudyLocation {
		return models.StudyLocation{
			Name:           name,
			Title:          title,
			Latitude:       lat,
			Longitude:      lon,
			Rating:         rating,
			Num:            num,
			Category:       "library",
			Images:         []string{},
			Comments:       []models.Comment{},
			Hours:          weekdayHours(),
			EnvFactors:     sampleEnvFactors(),
			DynamicReviews: []string{},
		}
	}

	first := venue("Imperial College London - Abdus Salam Library",
		"Imperial College London, South Kensington Campus, London SW7 2AZ",
		51.49805710, -0.17824890, 5.0, 4)
	first.Images = []string{"imperial1", "imperial2", "imperial3"}
	first.Comments = comments

	return []models.StudyLocation{
		first,
		venue("The London Library", "14 St James's Square, St. James's, London SW1Y 4LG",
			51.50733901, -0.13698200, 2.1, 4),
		venue("Chelsea Library", "Chelsea Old Town Hall, King's Rd, London SW3 5EZ",
			51.48738370, -0.16837240, 0.7, 4),
		venue("Fulham Library", "598 Fulham Rd., London SW6 5NX",
			51.478, -0.2028, 3.5, 4),
		venue("Brompton Library", "210 Old Brompton Rd, London SW5 0BS",
			51.490, -0.188, 4.1, 4),
		venue("Avonmore Library", "7 North End Crescent, London W14 8TG",
			51.492, -0.206, 4.7, 4),
		venue("Charing Cross Hospital Campus Library", "St Dunstan's Rd, London W6 8RP",
			51.490, -0.218, 1.5, 4),
	}
}

// SeedSampleData upserts the bundled sample venues, keyed by name so
// re-seeding refreshes the static fields without duplicating documents
// or clobbering accumulated ratings and sample logs.
func SeedSampleData(ctx context.Context) error {
	logger := utils.GetLogger()
	coll := MongoClient.Database("studyon").Collection("studyLocations")

	for _, loc := range sampleLocations() {
		filter := bson.M{"name": loc.Name}

		var existing bson.M
		err := coll.FindOne(ctx, filter).Decode(&existing)
		if err == nil {
			// Refresh descriptive fields only.
			update := bson.M{"$set": bson.M{
				"title":     loc.Title,
				"latitude":  loc.Latitude,
				"longitude": loc.Longitude,
				"category":  loc.Category,
				"hours":     loc.Hours,
			}}
			if _, err := coll.UpdateOne(ctx, filter, update); err != nil {
				return err
			}
			continue
		}

		if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}

		loc.DocumentID = uuid.New().String()
		if _, err := coll.InsertOne(ctx, loc); err != nil {
			return err
		}
		logger.Info("seeded sample location", zap.String("name", loc.Name))
	}
	return nil
}

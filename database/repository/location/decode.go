package locationRepo

import (
	"time"

	"studyon/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// decodeLocation converts a raw document into a StudyLocation. Older
// documents miss fields or carry loosely-typed values; each such field
// defaults to its zero value and is reported back so the repository
// can log what was patched over, instead of dropping the document.
func decodeLocation(raw bson.M) (models.StudyLocation, []string) {
	var defaulted []string

	str := func(key string) string {
		if v, ok := raw[key].(string); ok {
			return v
		}
		defaulted = append(defaulted, key)
		return ""
	}

	loc := models.StudyLocation{
		DocumentID: asString(raw["_id"]),
		Name:       str("name"),
		Title:      str("title"),
		Category:   str("category"),
	}

	var ok bool
	if loc.Latitude, ok = asFloat(raw["latitude"]); !ok {
		defaulted = append(defaulted, "latitude")
	}
	if loc.Longitude, ok = asFloat(raw["longitude"]); !ok {
		defaulted = append(defaulted, "longitude")
	}
	if loc.Rating, ok = asFloat(raw["rating"]); !ok {
		defaulted = append(defaulted, "rating")
	}
	if num, numOK := asFloat(raw["num"]); numOK {
		loc.Num = int(num)
	} else {
		defaulted = append(defaulted, "num")
	}

	if loc.Images, ok = asStringSlice(raw["images"]); !ok {
		defaulted = append(defaulted, "images")
	}
	if loc.DynamicReviews, ok = asStringSlice(raw["dynamicReviews"]); !ok {
		defaulted = append(defaulted, "dynamicReviews")
	}

	loc.Comments = decodeComments(raw["comments"], &defaulted)
	loc.Hours = decodeHours(raw["hours"], &defaulted)
	loc.EnvFactors = decodeEnvFactors(raw["envFactors"], &defaulted)

	return loc, defaulted
}

func decodeComments(v any, defaulted *[]string) []models.Comment {
	arr, ok := v.(bson.A)
	if !ok {
		*defaulted = append(*defaulted, "comments")
		return []models.Comment{}
	}
	comments := make([]models.Comment, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(bson.M)
		if !ok {
			continue
		}
		c := models.Comment{
			Name:    asString(m["name"]),
			Content: asString(m["content"]),
		}
		if dt, ok := m["date"].(primitive.DateTime); ok {
			c.Date = dt.Time()
		} else {
			c.Date = time.Time{}
		}
		comments = append(comments, c)
	}
	return comments
}

func decodeHours(v any, defaulted *[]string) map[string]models.OpeningHours {
	m, ok := v.(bson.M)
	if !ok {
		*defaulted = append(*defaulted, "hours")
		return map[string]models.OpeningHours{}
	}
	hours := make(map[string]models.OpeningHours, len(m))
	for day, entry := range m {
		em, ok := entry.(bson.M)
		if !ok {
			hours[day] = models.OpeningHours{
				Open:  models.ClosedSentinel,
				Close: models.ClosedSentinel,
			}
			continue
		}
		open := asString(em["open"])
		closing := asString(em["close"])
		if open == "" {
			open = models.ClosedSentinel
		}
		if closing == "" {
			closing = models.ClosedSentinel
		}
		hours[day] = models.OpeningHours{Open: open, Close: closing}
	}
	return hours
}

func decodeEnvFactors(v any, defaulted *[]string) models.EnvFactors {
	env := models.EnvFactors{
		DynamicData: map[string]float64{},
		StaticData:  map[string]float64{},
		Atmosphere:  []string{},
	}
	m, ok := v.(bson.M)
	if !ok {
		*defaulted = append(*defaulted, "envFactors")
		return env
	}
	if dd, ok := m["dynamicData"].(bson.M); ok {
		for k, raw := range dd {
			if f, ok := asFloat(raw); ok {
				env.DynamicData[k] = f
			}
		}
	}
	if sd, ok := m["staticData"].(bson.M); ok {
		for k, raw := range sd {
			if f, ok := asFloat(raw); ok {
				env.StaticData[k] = f
			}
		}
	}
	if atm, ok := asStringSlice(m["atmosphere"]); ok {
		env.Atmosphere = atm
	}
	return env
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asFloat accepts the numeric shapes the driver may hand back for a
// stored number.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func asStringSlice(v any) ([]string, bool) {
	arr, ok := v.(bson.A)
	if !ok {
		return []string{}, false
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

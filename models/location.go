package models

// StudyLocation is a study venue document. Field names follow the
// original Firestore collection and must round-trip exactly against
// existing stored data.
type StudyLocation struct {
	DocumentID string  `bson:"_id,omitempty" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Title      string  `bson:"title" json:"title"`
	Latitude   float64 `bson:"latitude" json:"latitude"`
	Longitude  float64 `bson:"longitude" json:"longitude"`

	// Rating is the running mean of exactly Num star submissions.
	// Individual submissions are not retained.
	Rating float64 `bson:"rating" json:"rating"`
	Num    int     `bson:"num" json:"num"`

	Category string                  `bson:"category" json:"category"`
	Images   []string                `bson:"images" json:"images"`
	Comments []Comment               `bson:"comments" json:"comments"`
	Hours    map[string]OpeningHours `bson:"hours" json:"hours"`

	EnvFactors EnvFactors `bson:"envFactors" json:"envFactors"`

	// DynamicReviews is the append-only log of encoded
	// crowdedness/noise samples, one string per submission.
	DynamicReviews []string `bson:"dynamicReviews" json:"dynamicReviews"`
}

// EnvFactors groups a venue's environmental signals: the short-window
// crowdedness/noise averages under dynamicData, operator-entered
// numeric attributes under staticData, and free-text atmosphere tags.
type EnvFactors struct {
	DynamicData map[string]float64 `bson:"dynamicData" json:"dynamicData"`
	StaticData  map[string]float64 `bson:"staticData" json:"staticData"`
	Atmosphere  []string           `bson:"atmosphere" json:"atmosphere"`
}

// MarkerColor interpolates red (rating 0) to green (rating 5) for the
// map annotation, as "r,g,b" components in [0,1].
type MarkerColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// ColorForRating clamps the rating into [0,5] and interpolates the
// marker color.
func ColorForRating(rating float64) MarkerColor {
	clamped := rating
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 5 {
		clamped = 5
	}
	return MarkerColor{
		Red:   (5.0 - clamped) / 5.0,
		Green: clamped / 5.0,
		Blue:  0.0,
	}
}

package models

// User mirrors the stored user document. Identity comes from the
// Firebase UID; there is no local credential storage.
type User struct {
	ID                string   `bson:"_id,omitempty" json:"id"`
	Email             string   `bson:"email" json:"email"`
	FavoriteLocations []string `bson:"favoriteLocations" json:"favoriteLocations"`
	FCMToken          string   `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
}

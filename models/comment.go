package models

import "time"

// Comment is one user remark attached to a study location.
type Comment struct {
	Name    string    `bson:"name" json:"name"`
	Content string    `bson:"content" json:"content"`
	Date    time.Time `bson:"date" json:"date"`
}

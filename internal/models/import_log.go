package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImportRowError points at a spreadsheet row that could not be imported.
type ImportRowError struct {
	Row   int    `json:"row" bson:"row"`
	Error string `json:"error" bson:"error"`
}

// ImportResult is the outcome of one spreadsheet import.
type ImportResult struct {
	Inserted int              `json:"inserted"`
	Updated  int              `json:"updated"`
	Errors   []ImportRowError `json:"errors"`
}

// ImportLog is the audit trail of an import batch (MongoDB).
type ImportLog struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FileName  string             `json:"fileName" bson:"file_name"`
	Inserted  int                `json:"inserted" bson:"inserted"`
	Updated   int                `json:"updated" bson:"updated"`
	Errors    []ImportRowError   `json:"errors" bson:"errors"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a program of study offered by the center. Students enroll
// into exactly one course; groups are scheduled cohorts within one.
type Course struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"`
	Description string             `bson:"description" json:"description"`

	// DurationMonths and MonthlyFee are descriptive; nothing in the
	// enrollment logic depends on them.
	DurationMonths int     `bson:"duration_months" json:"duration_months"`
	MonthlyFee     float64 `bson:"monthly_fee" json:"monthly_fee"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

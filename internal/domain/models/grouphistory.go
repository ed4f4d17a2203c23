// internal/domain/models/grouphistory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupHistory is one immutable record of a student's group move.
// At least one of FromGroupID/ToGroupID is always set: a record with
// neither would describe a no-op, and the enrollment store rejects
// such moves before logging. Records are never updated or deleted.
type GroupHistory struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	StudentID   primitive.ObjectID  `bson:"student_id" json:"student_id"`
	FromGroupID *primitive.ObjectID `bson:"from_group_id,omitempty" json:"from_group_id,omitempty"`
	ToGroupID   *primitive.ObjectID `bson:"to_group_id,omitempty" json:"to_group_id,omitempty"`
	MovedByID   *primitive.ObjectID `bson:"moved_by_id,omitempty" json:"moved_by_id,omitempty"`
	Reason      string              `bson:"reason,omitempty" json:"reason,omitempty"`
	MovedAt     time.Time           `bson:"moved_at" json:"moved_at"`
}

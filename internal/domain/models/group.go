// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a scheduled cohort of students taking one course together.
//
// NOTE:
//   - StudentIDs is the authoritative membership list, kept
//     deduplicated. Each member's Student.GroupID must point back here;
//     the enrollment store keeps the two sides in sync.
//   - MaxStudents nil means unbounded capacity.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	CourseID    primitive.ObjectID   `bson:"course_id" json:"course_id"`
	MaxStudents *int                 `bson:"max_students,omitempty" json:"max_students,omitempty"`
	StudentIDs  []primitive.ObjectID `bson:"student_ids" json:"student_ids"`

	// Schedule metadata; descriptive only.
	DaysOfWeek []string            `bson:"days_of_week,omitempty" json:"days_of_week,omitempty"`
	StartTime  string              `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime    string              `bson:"end_time,omitempty" json:"end_time,omitempty"`
	TeacherID  *primitive.ObjectID `bson:"teacher_id,omitempty" json:"teacher_id,omitempty"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasCapacityFor reports whether adding n more supplied ids passes the
// capacity pre-check. The count used is the count of supplied ids, not
// the growth of the deduplicated union; re-adding an existing member
// still consumes headroom in the check.
func (g Group) HasCapacityFor(n int) bool {
	if g.MaxStudents == nil {
		return true
	}
	return len(g.StudentIDs)+n <= *g.MaxStudents
}

// IsFull reports whether the group has reached its capacity.
func (g Group) IsFull() bool {
	return g.MaxStudents != nil && len(g.StudentIDs) >= *g.MaxStudents
}

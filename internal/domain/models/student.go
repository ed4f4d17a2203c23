// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student lifecycle states.
const (
	StudentActive    = "active"
	StudentCompleted = "completed"
	StudentDropped   = "dropped"
)

// AttendanceRecord is one attendance mark. Records are append-only and
// kept in insertion order, which is not necessarily date order.
type AttendanceRecord struct {
	Date    time.Time `bson:"date" json:"date"`
	Present bool      `bson:"present" json:"present"`
}

// Student is an enrollment record: a person tied to exactly one course,
// optionally a group and a teacher.
//
// NOTE:
//   - GroupID is a denormalized back-reference. The authoritative
//     membership list is Group.StudentIDs; the enrollment store is the
//     only place allowed to write either side.
//   - A nil GroupID means the student is unassigned.
type Student struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	FullName string             `bson:"full_name" json:"full_name"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone    string             `bson:"phone" json:"phone"`

	CourseID  primitive.ObjectID  `bson:"course_id" json:"course_id"`
	GroupID   *primitive.ObjectID `bson:"group_id,omitempty" json:"group_id,omitempty"`
	TeacherID *primitive.ObjectID `bson:"teacher_id,omitempty" json:"teacher_id,omitempty"`

	Status string `bson:"status" json:"status"`

	// Grades maps an assignment label to a numeric score.
	Grades     map[string]float64 `bson:"grades,omitempty" json:"grades,omitempty"`
	Attendance []AttendanceRecord `bson:"attendance,omitempty" json:"attendance,omitempty"`

	EnrolledAt time.Time `bson:"enrolled_at" json:"enrolled_at"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/edcenterhq/edcenter/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCourse creates a test course with the given name.
func (f *Fixtures) CreateCourse(ctx context.Context, name string) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	course := models.Course{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		Description:    "Test course description",
		DurationMonths: 6,
		MonthlyFee:     100,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("courses").InsertOne(ctx, course); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}
	return course
}

// CreateStudent creates a test student on the given course, with no
// group assignment.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, phone string, courseID primitive.ObjectID) models.Student {
	f.t.Helper()

	now := time.Now().UTC()
	student := models.Student{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		Phone:      phone,
		CourseID:   courseID,
		Status:     models.StudentActive,
		Grades:     map[string]float64{},
		EnrolledAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("students").InsertOne(ctx, student); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return student
}

// CreateGroup creates a test group on the given course with the given
// member capacity. Pass 0 for an unbounded group.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, courseID primitive.ObjectID, maxStudents int) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		CourseID:   courseID,
		StudentIDs: []primitive.ObjectID{},
		DaysOfWeek: []string{"monday", "wednesday"},
		StartTime:  "10:00",
		EndTime:    "12:00",
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if maxStudents > 0 {
		group.MaxStudents = &maxStudents
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// AssignStudent sets both sides of a group membership directly,
// bypassing the enrollment store. For arranging test state only.
func (f *Fixtures) AssignStudent(ctx context.Context, groupID, studentID primitive.ObjectID) {
	f.t.Helper()

	if _, err := f.db.Collection("groups").UpdateByID(ctx, groupID,
		bson.M{"$addToSet": bson.M{"student_ids": studentID}}); err != nil {
		f.t.Fatalf("failed to add student to group: %v", err)
	}
	if _, err := f.db.Collection("students").UpdateByID(ctx, studentID,
		bson.M{"$set": bson.M{"group_id": groupID}}); err != nil {
		f.t.Fatalf("failed to set student group: %v", err)
	}
}

// CreateUser creates a test staff user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Email:     email,
		EmailCI:   text.Fold(email),
		Role:      role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

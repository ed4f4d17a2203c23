// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"errors"
	"time"

	"github.com/edcenterhq/edcenter/internal/app/system/status"
	"github.com/edcenterhq/edcenter/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists courses. It also holds the students and groups
// collections so Delete can refuse to orphan their course references.
type Store struct {
	c        *mongo.Collection
	students *mongo.Collection
	groups   *mongo.Collection
}

var (
	ErrDuplicateCourseName = errors.New("a course with this name already exists")
	ErrCourseInUse         = errors.New("course still has students or groups")
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("courses"),
		students: db.Collection("students"),
		groups:   db.Collection("groups"),
	}
}

func (s *Store) Create(ctx context.Context, course models.Course) (models.Course, error) {
	now := time.Now().UTC()
	course.ID = primitive.NewObjectID()
	course.NameCI = text.Fold(course.Name)
	if course.Status == "" {
		course.Status = status.Active
	}
	course.CreatedAt = now
	course.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, course); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Course{}, ErrDuplicateCourseName
		}
		return models.Course{}, err
	}
	return course, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var course models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (s *Store) List(ctx context.Context) ([]models.Course, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// UpdateParams carries optional course field updates; nil means keep.
type UpdateParams struct {
	Name           *string
	Description    *string
	DurationMonths *int
	MonthlyFee     *float64
	Status         *string
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p UpdateParams) (models.Course, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		set["name"] = *p.Name
		set["name_ci"] = text.Fold(*p.Name)
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.DurationMonths != nil {
		set["duration_months"] = *p.DurationMonths
	}
	if p.MonthlyFee != nil {
		set["monthly_fee"] = *p.MonthlyFee
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}

	var course models.Course
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&course)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Course{}, ErrDuplicateCourseName
		}
		return models.Course{}, err
	}
	return course, nil
}

// Delete removes a course. It refuses while any student or group still
// references it. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	n, err := s.students.CountDocuments(ctx, bson.M{"course_id": id})
	if err != nil {
		return 0, err
	}
	if n == 0 {
		n, err = s.groups.CountDocuments(ctx, bson.M{"course_id": id})
		if err != nil {
			return 0, err
		}
	}
	if n > 0 {
		return 0, ErrCourseInUse
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

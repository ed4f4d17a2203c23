// internal/app/store/groups/groupstore.go
package groupstore

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

// Store handles plain group CRUD. Membership mutations live in the
// enrollment store, which is the only writer of the student_ids field
// after creation.
type Store struct {
	c *mongo.Collection
}

var ErrDuplicateGroupName = errors.New("a group with this name already exists in the course")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	if g.StudentIDs == nil {
		g.StudentIDs = []primitive.ObjectID{}
	}
	if g.Status == "" {
		g.Status = status.Active
	}
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateGroupName
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// List returns groups, optionally restricted to one course.
func (s *Store) List(ctx context.Context, courseID *primitive.ObjectID) ([]models.Group, error) {
	filter := bson.M{}
	if courseID != nil {
		filter["course_id"] = *courseID
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// UpdateParams carries optional group updates; nil means keep. The
// members list is deliberately absent: it is owned by the enrollment
// store.
type UpdateParams struct {
	Name        *string
	Description *string
	MaxStudents *int
	DaysOfWeek  []string
	StartTime   *string
	EndTime     *string
	TeacherID   *primitive.ObjectID
	Status      *string
}

func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, p UpdateParams) (models.Group, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		set["name"] = *p.Name
		set["name_ci"] = text.Fold(*p.Name)
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.MaxStudents != nil {
		set["max_students"] = *p.MaxStudents
	}
	if p.DaysOfWeek != nil {
		set["days_of_week"] = p.DaysOfWeek
	}
	if p.StartTime != nil {
		set["start_time"] = *p.StartTime
	}
	if p.EndTime != nil {
		set["end_time"] = *p.EndTime
	}
	if p.TeacherID != nil {
		set["teacher_id"] = *p.TeacherID
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}

	var g models.Group
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&g)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateGroupName
		}
		return models.Group{}, err
	}
	return g, nil
}

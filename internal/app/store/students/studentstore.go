// internal/app/store/students/studentstore.go
package studentstore

import (
	"context"
	"errors"
	"time"

	"github.com/edcenterhq/edcenter/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists students. It holds the groups collection as well so a
// hard delete can detach the student from its group's member list.
type Store struct {
	c      *mongo.Collection
	groups *mongo.Collection
}

var ErrDuplicatePhone = errors.New("a student with this phone number already exists")

func New(db *mongo.Database) *Store {
	return &Store{
		c:      db.Collection("students"),
		groups: db.Collection("groups"),
	}
}

// Create inserts an enrollment record. Group and teacher assignment
// happen later through the enrollment store, never at creation.
func (s *Store) Create(ctx context.Context, st models.Student) (models.Student, error) {
	now := time.Now().UTC()
	st.ID = primitive.NewObjectID()
	st.GroupID = nil
	if st.Status == "" {
		st.Status = models.StudentActive
	}
	if st.EnrolledAt.IsZero() {
		st.EnrolledAt = now
	}
	st.CreatedAt = now
	st.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, st); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Student{}, ErrDuplicatePhone
		}
		return models.Student{}, err
	}
	return st, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Student, error) {
	var st models.Student
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		return models.Student{}, err
	}
	return st, nil
}

// ListParams filters List. Nil fields are not applied.
type ListParams struct {
	CourseID *primitive.ObjectID
	GroupID  *primitive.ObjectID
	Status   *string
}

func (s *Store) List(ctx context.Context, p ListParams) ([]models.Student, error) {
	filter := bson.M{}
	if p.CourseID != nil {
		filter["course_id"] = *p.CourseID
	}
	if p.GroupID != nil {
		filter["group_id"] = *p.GroupID
	}
	if p.Status != nil {
		filter["status"] = *p.Status
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var students []models.Student
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// UpdateParams carries optional profile updates; nil means keep.
type UpdateParams struct {
	FullName  *string
	Email     *string
	Phone     *string
	TeacherID *primitive.ObjectID
	Status    *string
}

func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, p UpdateParams) (models.Student, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.FullName != nil {
		set["full_name"] = *p.FullName
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.TeacherID != nil {
		set["teacher_id"] = *p.TeacherID
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}

	var st models.Student
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&st)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Student{}, ErrDuplicatePhone
		}
		return models.Student{}, err
	}
	return st, nil
}

// SetGrade records a score under an assignment label, overwriting any
// previous score for that label.
func (s *Store) SetGrade(ctx context.Context, id primitive.ObjectID, label string, score float64) (models.Student, error) {
	set := bson.M{
		"grades." + label: score,
		"updated_at":      time.Now().UTC(),
	}

	var st models.Student
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&st)
	if err != nil {
		return models.Student{}, err
	}
	return st, nil
}

// AppendAttendance appends one attendance mark. The sequence is
// append-only; existing records are never rewritten.
func (s *Store) AppendAttendance(ctx context.Context, id primitive.ObjectID, rec models.AttendanceRecord) (models.Student, error) {
	update := bson.M{
		"$push": bson.M{"attendance": rec},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	var st models.Student
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&st)
	if err != nil {
		return models.Student{}, err
	}
	return st, nil
}

// Delete hard-deletes a student. The student is pulled out of any
// group member list first so no group keeps a dangling reference.
// Returns the number of student documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, err := s.groups.UpdateMany(ctx,
		bson.M{"student_ids": id},
		bson.M{"$pull": bson.M{"student_ids": id}},
	); err != nil {
		return 0, err
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of students matching the filter.
func (s *Store) Count(ctx context.Context, p ListParams) (int64, error) {
	filter := bson.M{}
	if p.CourseID != nil {
		filter["course_id"] = *p.CourseID
	}
	if p.GroupID != nil {
		filter["group_id"] = *p.GroupID
	}
	if p.Status != nil {
		filter["status"] = *p.Status
	}
	return s.c.CountDocuments(ctx, filter)
}

// internal/app/store/enrollment/enrollmentstore.go

// Package enrollmentstore is the single choke point for the
// bidirectional Group<->Student relationship.
//
// Group.student_ids is the authoritative membership list and
// Student.group_id is its denormalized back-reference. Every mutation
// of either side goes through this store so the two never drift outside
// one code path, and each orchestrated mutation runs inside a
// multi-document transaction where the deployment supports one.
package enrollmentstore

import (
	"context"
	"errors"
	"time"

	historystore "github.com/edcenterhq/edcenter/internal/app/store/history"
	"github.com/edcenterhq/edcenter/internal/app/system/txn"
	"github.com/edcenterhq/edcenter/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	client   *mongo.Client
	groups   *mongo.Collection
	students *mongo.Collection
	history  *historystore.Store
}

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrStudentNotFound  = errors.New("student not found")
	ErrCapacityExceeded = errors.New("group is full")
	ErrCrossCourseMove  = errors.New("cannot move student to a group from a different course")
	ErrNoOpMove         = errors.New("student is not in a group and no target group was given")
)

func New(db *mongo.Database) *Store {
	return &Store{
		client:   db.Client(),
		groups:   db.Collection("groups"),
		students: db.Collection("students"),
		history:  historystore.New(db),
	}
}

// AddStudents adds the given students to the group and points each
// student's group_id back at it. The membership list is the
// deduplicated union of current members and the supplied ids.
//
// The capacity pre-check counts the supplied ids, not the union growth:
// re-adding an existing member still consumes headroom. The read, the
// checks, and the writes all run inside one transaction, so a retry
// after a write conflict re-reads the committed membership instead of
// replaying a stale union. On failure nothing is mutated.
func (s *Store) AddStudents(ctx context.Context, groupID primitive.ObjectID, studentIDs []primitive.ObjectID) (models.Group, error) {
	err := txn.WithTransaction(ctx, s.client, func(ctx context.Context) error {
		g, err := s.getGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if !g.HasCapacityFor(len(studentIDs)) {
			return ErrCapacityExceeded
		}
		return s.applyAdd(ctx, groupID, studentIDs, unionIDs(g.StudentIDs, studentIDs))
	})
	if err != nil {
		return models.Group{}, err
	}

	return s.getGroup(ctx, groupID)
}

// RemoveStudent takes a student out of the group's member list and
// unsets the student's group_id. Removal is idempotent: a student who
// was never a member is not an error, and the back-reference is cleared
// unconditionally even if it pointed elsewhere.
func (s *Store) RemoveStudent(ctx context.Context, groupID, studentID primitive.ObjectID) (models.Group, error) {
	if _, err := s.getGroup(ctx, groupID); err != nil {
		return models.Group{}, err
	}

	err := txn.WithTransaction(ctx, s.client, func(ctx context.Context) error {
		return s.applyRemove(ctx, groupID, studentID)
	})
	if err != nil {
		return models.Group{}, err
	}

	return s.getGroup(ctx, groupID)
}

// DeleteGroup clears the group reference on every student pointing at
// the group, then deletes the group document. The bulk clear matches on
// the students' back-references rather than the group's own member
// list, so it repairs any drift between the two sides. No history is
// written for the implied removals.
func (s *Store) DeleteGroup(ctx context.Context, groupID primitive.ObjectID) error {
	if _, err := s.getGroup(ctx, groupID); err != nil {
		return err
	}

	return txn.WithTransaction(ctx, s.client, func(ctx context.Context) error {
		if _, err := s.students.UpdateMany(ctx,
			bson.M{"group_id": groupID},
			bson.M{"$unset": bson.M{"group_id": 1}},
		); err != nil {
			return err
		}
		_, err := s.groups.DeleteOne(ctx, bson.M{"_id": groupID})
		return err
	})
}

// MoveParams describes one student move. A nil ToGroupID means
// "unassign". MovedBy is the already-authenticated caller, nil when
// system-initiated.
type MoveParams struct {
	StudentID primitive.ObjectID
	ToGroupID *primitive.ObjectID
	MovedBy   *primitive.ObjectID
	Reason    string
}

// MoveStudent transitions a student's group assignment and appends one
// history record describing the move.
//
// A move with no current group and no target group is rejected with
// ErrNoOpMove before anything is written, so every history record names
// at least one group. All other precondition failures (missing student
// or group, cross-course target, full target) also abort before the
// first write. The reads and checks run inside the same transaction as
// the writes, so a retry after a write conflict observes the committed
// state rather than replaying stale membership.
func (s *Store) MoveStudent(ctx context.Context, p MoveParams) (models.Student, error) {
	err := txn.WithTransaction(ctx, s.client, func(ctx context.Context) error {
		st, err := s.getStudent(ctx, p.StudentID)
		if err != nil {
			return err
		}
		fromGroupID := st.GroupID

		if p.ToGroupID == nil && fromGroupID == nil {
			return ErrNoOpMove
		}

		if p.ToGroupID != nil {
			target, err := s.getGroup(ctx, *p.ToGroupID)
			if err != nil {
				return err
			}
			if target.CourseID != st.CourseID {
				return ErrCrossCourseMove
			}
			if target.IsFull() {
				return ErrCapacityExceeded
			}

			// Pull the student out of the source group's member list
			// first, so both sides stay consistent after the move.
			if fromGroupID != nil && *fromGroupID != *p.ToGroupID {
				if _, err := s.groups.UpdateByID(ctx, *fromGroupID, bson.M{
					"$pull": bson.M{"student_ids": p.StudentID},
					"$set":  bson.M{"updated_at": time.Now().UTC()},
				}); err != nil {
					return err
				}
			}
			ids := []primitive.ObjectID{p.StudentID}
			if err := s.applyAdd(ctx, *p.ToGroupID, ids, unionIDs(target.StudentIDs, ids)); err != nil {
				return err
			}
		} else {
			if err := s.applyRemove(ctx, *fromGroupID, p.StudentID); err != nil {
				return err
			}
		}

		_, err = s.history.Append(ctx, models.GroupHistory{
			StudentID:   p.StudentID,
			FromGroupID: fromGroupID,
			ToGroupID:   p.ToGroupID,
			MovedByID:   p.MovedBy,
			Reason:      p.Reason,
		})
		return err
	})
	if err != nil {
		return models.Student{}, err
	}

	return s.getStudent(ctx, p.StudentID)
}

// UnassignedStudents returns every student of the course with no group,
// whether the field is absent or explicitly null.
func (s *Store) UnassignedStudents(ctx context.Context, courseID primitive.ObjectID) ([]models.Student, error) {
	cur, err := s.students.Find(ctx, bson.M{
		"course_id": courseID,
		"$or": bson.A{
			bson.M{"group_id": bson.M{"$exists": false}},
			bson.M{"group_id": nil},
		},
	})
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

/* ----------------------------- write paths ------------------------------ */

// applyAdd writes both sides of an add: the students' back-references
// and the group's member list. Callers have already done the capacity
// and existence checks and computed the union.
func (s *Store) applyAdd(ctx context.Context, groupID primitive.ObjectID, studentIDs, union []primitive.ObjectID) error {
	if _, err := s.students.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": studentIDs}},
		bson.M{"$set": bson.M{"group_id": groupID, "updated_at": time.Now().UTC()}},
	); err != nil {
		return err
	}
	_, err := s.groups.UpdateByID(ctx, groupID, bson.M{
		"$set": bson.M{"student_ids": union, "updated_at": time.Now().UTC()},
	})
	return err
}

// applyRemove writes both sides of a removal.
func (s *Store) applyRemove(ctx context.Context, groupID, studentID primitive.ObjectID) error {
	if _, err := s.groups.UpdateByID(ctx, groupID, bson.M{
		"$pull": bson.M{"student_ids": studentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}); err != nil {
		return err
	}
	_, err := s.students.UpdateByID(ctx, studentID, bson.M{
		"$unset": bson.M{"group_id": 1},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

func (s *Store) getGroup(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.groups.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, ErrGroupNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) getStudent(ctx context.Context, id primitive.ObjectID) (models.Student, error) {
	var st models.Student
	if err := s.students.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}
	return st, nil
}

// unionIDs appends the ids not already in current, preserving order and
// deduplicating the result.
func unionIDs(current, incoming []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(current)+len(incoming))
	union := make([]primitive.ObjectID, 0, len(current)+len(incoming))
	for _, id := range current {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		union = append(union, id)
	}
	for _, id := range incoming {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		union = append(union, id)
	}
	return union
}

// Package indexes creates the MongoDB indexes the app relies on.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll is called at startup. Index creation is idempotent; errors
// are aggregated so every problem is visible and startup can fail fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureCourses(ctx, db); err != nil {
		problems = append(problems, "courses: "+err.Error())
	}
	if err := ensureStudents(ctx, db); err != nil {
		problems = append(problems, "students: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureGroupHistory(ctx, db); err != nil {
		problems = append(problems, "group_history: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureSet(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	zap.L().Info("ensured indexes", zap.String("collection", coll), zap.Strings("names", names))
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db, "users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_email_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("by_role"),
		},
	})
}

func ensureCourses(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db, "courses", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_name_ci").SetUnique(true),
		},
	})
}

func ensureStudents(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db, "students", []mongo.IndexModel{
		{
			// unassigned-students query: course scan filtered on group
			Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "group_id", Value: 1}},
			Options: options.Index().SetName("by_course_group"),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}},
			Options: options.Index().SetName("by_group"),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName("uniq_phone").SetUnique(true),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db, "groups", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "course_id", Value: 1}},
			Options: options.Index().SetName("by_course"),
		},
		{
			Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_course_name_ci").SetUnique(true),
		},
	})
}

func ensureGroupHistory(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db, "group_history", []mongo.IndexModel{
		{
			// newest-first history reads per student
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "moved_at", Value: -1}},
			Options: options.Index().SetName("by_student_moved_at"),
		},
	})
}

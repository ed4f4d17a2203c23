// internal/app/store/queries/historyview/historyview.go

// Package historyview resolves a student's move history for display:
// raw group_history records joined with group names and the mover's
// name. Groups referenced by old records may have been deleted since;
// their names simply come back empty.
package historyview

import (
	"context"

	"github.com/edcenterhq/edcenter/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Entry is one resolved history record, newest first.
type Entry struct {
	models.GroupHistory `bson:",inline"`

	FromGroupName string `bson:"from_group_name,omitempty" json:"from_group_name,omitempty"`
	ToGroupName   string `bson:"to_group_name,omitempty" json:"to_group_name,omitempty"`
	MovedByName   string `bson:"moved_by_name,omitempty" json:"moved_by_name,omitempty"`
}

// ForStudent returns the student's resolved history, newest first.
func ForStudent(ctx context.Context, db *mongo.Database, studentID primitive.ObjectID) ([]Entry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"student_id": studentID}}},
		{{Key: "$sort", Value: bson.D{{Key: "moved_at", Value: -1}}}},
		lookup("groups", "from_group_id", "from_group"),
		lookup("groups", "to_group_id", "to_group"),
		lookup("users", "moved_by_id", "moved_by"),
		{{Key: "$addFields", Value: bson.M{
			"from_group_name": firstField("from_group", "name"),
			"to_group_name":   firstField("to_group", "name"),
			"moved_by_name":   firstField("moved_by", "full_name"),
		}}},
		{{Key: "$project", Value: bson.M{
			"from_group": 0,
			"to_group":   0,
			"moved_by":   0,
		}}},
	}

	cur, err := db.Collection("group_history").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func lookup(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": "_id",
		"as":           as,
	}}}
}

func firstField(arrayField, field string) bson.M {
	return bson.M{"$ifNull": bson.A{
		bson.M{"$arrayElemAt": bson.A{"$" + arrayField + "." + field, 0}},
		"",
	}}
}

package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func members(n int) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, n)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	return ids
}

func TestGroupHasCapacityFor(t *testing.T) {
	five := 5

	tests := []struct {
		name    string
		max     *int
		current int
		add     int
		want    bool
	}{
		{"unbounded always fits", nil, 100, 50, true},
		{"fits exactly", &five, 3, 2, true},
		{"one over", &five, 3, 3, false},
		{"empty group full batch", &five, 0, 5, true},
		{"full group zero add", &five, 5, 0, true},
		{"full group one add", &five, 5, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Group{MaxStudents: tt.max, StudentIDs: members(tt.current)}
			if got := g.HasCapacityFor(tt.add); got != tt.want {
				t.Errorf("HasCapacityFor(%d) = %v, want %v", tt.add, got, tt.want)
			}
		})
	}
}

func TestGroupIsFull(t *testing.T) {
	two := 2

	if (Group{MaxStudents: nil, StudentIDs: members(100)}).IsFull() {
		t.Error("unbounded group must never be full")
	}
	if (Group{MaxStudents: &two, StudentIDs: members(1)}).IsFull() {
		t.Error("group under capacity must not be full")
	}
	if !(Group{MaxStudents: &two, StudentIDs: members(2)}).IsFull() {
		t.Error("group at capacity must be full")
	}
	if !(Group{MaxStudents: &two, StudentIDs: members(3)}).IsFull() {
		t.Error("group over capacity must be full")
	}
}

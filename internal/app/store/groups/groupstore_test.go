package groupstore

import (
	"errors"
	"testing"

	"github.com/edcenterhq/edcenter/internal/app/system/indexes"
	"github.com/edcenterhq/edcenter/internal/domain/models"
	"github.com/edcenterhq/edcenter/internal/testutil"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	max := 15
	store := New(db)
	g, err := store.Create(ctx, models.Group{
		Name:        "Morning A",
		CourseID:    course.ID,
		MaxStudents: &max,
		DaysOfWeek:  []string{"monday", "wednesday"},
		StartTime:   "10:00",
		EndTime:     "12:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID.IsZero() {
		t.Error("expected generated ID")
	}
	if g.NameCI != "morning a" {
		t.Errorf("expected folded name_ci, got %q", g.NameCI)
	}
	if g.StudentIDs == nil || len(g.StudentIDs) != 0 {
		t.Error("expected empty member list")
	}
	if g.Status != "active" {
		t.Errorf("expected default status active, got %q", g.Status)
	}
}

func TestCreate_DuplicateNameWithinCourse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to ensure indexes: %v", err)
	}

	c1 := fx.CreateCourse(ctx, "Go Basics")
	c2 := fx.CreateCourse(ctx, "English B2")

	store := New(db)
	if _, err := store.Create(ctx, models.Group{Name: "Morning A", CourseID: c1.ID}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Same name, different case, same course: rejected.
	_, err := store.Create(ctx, models.Group{Name: "MORNING a", CourseID: c1.ID})
	if !errors.Is(err, ErrDuplicateGroupName) {
		t.Fatalf("expected ErrDuplicateGroupName, got %v", err)
	}

	// Same name on another course is fine.
	if _, err := store.Create(ctx, models.Group{Name: "Morning A", CourseID: c2.ID}); err != nil {
		t.Fatalf("Create on other course failed: %v", err)
	}
}

func TestList_FiltersByCourse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c1 := fx.CreateCourse(ctx, "Go Basics")
	c2 := fx.CreateCourse(ctx, "English B2")
	fx.CreateGroup(ctx, "Zulu", c1.ID, 10)
	fx.CreateGroup(ctx, "Alpha", c1.ID, 10)
	fx.CreateGroup(ctx, "Other", c2.ID, 10)

	store := New(db)
	all, err := store.List(ctx, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 groups, got %d", len(all))
	}

	got, err := store.List(ctx, &c1.ID)
	if err != nil {
		t.Fatalf("List by course failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	// Sorted by folded name.
	if got[0].Name != "Alpha" || got[1].Name != "Zulu" {
		t.Errorf("expected name order [Alpha Zulu], got [%s %s]", got[0].Name, got[1].Name)
	}
}

func TestUpdateInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	g := fx.CreateGroup(ctx, "Morning A", course.ID, 10)

	newName := "Morning B"
	newMax := 20
	inactive := "inactive"
	store := New(db)
	got, err := store.UpdateInfo(ctx, g.ID, UpdateParams{
		Name:        &newName,
		MaxStudents: &newMax,
		Status:      &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}
	if got.Name != "Morning B" || got.NameCI != "morning b" {
		t.Errorf("unexpected name after update: %q / %q", got.Name, got.NameCI)
	}
	if got.MaxStudents == nil || *got.MaxStudents != 20 {
		t.Error("expected max_students updated")
	}
	if got.Status != "inactive" {
		t.Errorf("expected status inactive, got %q", got.Status)
	}
}

func TestUpdateInfo_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	name := "Renamed"
	_, err := store.UpdateInfo(ctx, primitive.NewObjectID(), UpdateParams{Name: &name})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

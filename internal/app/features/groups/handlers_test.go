package groups

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/edcenterhq/edcenter/internal/app/features/errors"
	"github.com/edcenterhq/edcenter/internal/app/store/queries/historyview"
	"github.com/edcenterhq/edcenter/internal/domain/models"
	"github.com/edcenterhq/edcenter/internal/testutil"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, apierrors.NewResponder(zap.NewNop()), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestHandleCreate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups", map[string]any{
		"name":         "Morning A",
		"course_id":    course.ID.Hex(),
		"max_students": 15,
		"days_of_week": []string{"monday", "wednesday"},
		"start_time":   "10:00",
		"end_time":     "12:00",
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var got models.Group
	testutil.DecodeJSON(t, rec, &got)
	if got.Name != "Morning A" {
		t.Errorf("unexpected name %q", got.Name)
	}
	if got.MaxStudents == nil || *got.MaxStudents != 15 {
		t.Error("expected max_students 15")
	}
}

func TestHandleCreate_UnknownCourse(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups", map[string]any{
		"name":      "Morning A",
		"course_id": primitive.NewObjectID().Hex(),
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandleCreate_MissingName(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups", map[string]any{
		"course_id": course.ID.Hex(),
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestHandleAddStudents(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	group := fx.CreateGroup(ctx, "Morning A", course.ID, 10)
	s1 := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)
	s2 := fx.CreateStudent(ctx, "Bob Brown", "+100000002", course.ID)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups/"+group.ID.Hex()+"/students", map[string]any{
		"student_ids": []string{s1.ID.Hex(), s2.ID.Hex()},
	})
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleAddStudents(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var got models.Group
	testutil.DecodeJSON(t, rec, &got)
	if len(got.StudentIDs) != 2 {
		t.Errorf("expected 2 members, got %d", len(got.StudentIDs))
	}
}

func TestHandleAddStudents_CapacityExceeded(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	group := fx.CreateGroup(ctx, "Tiny", course.ID, 1)
	s1 := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)
	s2 := fx.CreateStudent(ctx, "Bob Brown", "+100000002", course.ID)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups/"+group.ID.Hex()+"/students", map[string]any{
		"student_ids": []string{s1.ID.Hex(), s2.ID.Hex()},
	})
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleAddStudents(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	var payload apierrors.Payload
	testutil.DecodeJSON(t, rec, &payload)
	if payload.Code != apierrors.CodeCapacityExceeded {
		t.Errorf("expected code %q, got %q", apierrors.CodeCapacityExceeded, payload.Code)
	}
}

func TestHandleAddStudents_GroupNotFound(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	st := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)
	missing := primitive.NewObjectID()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups/"+missing.Hex()+"/students", map[string]any{
		"student_ids": []string{st.ID.Hex()},
	})
	req = testutil.WithChiURLParam(req, "id", missing.Hex())
	rec := httptest.NewRecorder()
	h.HandleAddStudents(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandleRemoveStudent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	group := fx.CreateGroup(ctx, "Morning A", course.ID, 10)
	st := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)
	fx.AssignStudent(ctx, group.ID, st.ID)

	req := httptest.NewRequest(http.MethodDelete, "/groups/"+group.ID.Hex()+"/students/"+st.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	req = testutil.WithChiURLParam(req, "studentId", st.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleRemoveStudent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var got models.Group
	testutil.DecodeJSON(t, rec, &got)
	if len(got.StudentIDs) != 0 {
		t.Errorf("expected empty member list, got %d entries", len(got.StudentIDs))
	}
}

func TestHandleMoveStudent_RecordsMover(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	group := fx.CreateGroup(ctx, "Morning A", course.ID, 10)
	st := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)
	admin := fx.CreateUser(ctx, "Admin", "admin@test.com", "admin")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups/move-student", map[string]any{
		"student_id":  st.ID.Hex(),
		"to_group_id": group.ID.Hex(),
		"reason":      "placement",
	})
	req = testutil.WithUser(req, testutil.TestUser{
		ID: admin.ID.Hex(), Name: admin.FullName, Email: admin.Email, Role: admin.Role,
	})
	rec := httptest.NewRecorder()
	h.HandleMoveStudent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var got models.Student
	testutil.DecodeJSON(t, rec, &got)
	if got.GroupID == nil || *got.GroupID != group.ID {
		t.Fatal("expected student assigned to group")
	}

	var hist models.GroupHistory
	if err := fx.DB().Collection("group_history").FindOne(ctx, bson.M{"student_id": st.ID}).Decode(&hist); err != nil {
		t.Fatalf("expected history record: %v", err)
	}
	if hist.MovedByID == nil || *hist.MovedByID != admin.ID {
		t.Error("expected mover recorded from session user")
	}
	if hist.Reason != "placement" {
		t.Errorf("unexpected reason %q", hist.Reason)
	}
}

func TestHandleMoveStudent_SanitizesReason(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	group := fx.CreateGroup(ctx, "Morning A", course.ID, 10)
	st := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups/move-student", map[string]any{
		"student_id":  st.ID.Hex(),
		"to_group_id": group.ID.Hex(),
		"reason":      `<script>alert("x")</script>schedule conflict`,
	})
	rec := httptest.NewRecorder()
	h.HandleMoveStudent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var hist models.GroupHistory
	if err := fx.DB().Collection("group_history").FindOne(ctx, bson.M{"student_id": st.ID}).Decode(&hist); err != nil {
		t.Fatalf("expected history record: %v", err)
	}
	if hist.Reason != "schedule conflict" {
		t.Errorf("expected sanitized reason, got %q", hist.Reason)
	}
}

func TestHandleMoveStudent_NoOpRejected(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	st := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups/move-student", map[string]any{
		"student_id": st.ID.Hex(),
	})
	rec := httptest.NewRecorder()
	h.HandleMoveStudent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	var payload apierrors.Payload
	testutil.DecodeJSON(t, rec, &payload)
	if payload.Code != apierrors.CodeNoOpMove {
		t.Errorf("expected code %q, got %q", apierrors.CodeNoOpMove, payload.Code)
	}
}

func TestHandleMoveStudent_CrossCourse(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c1 := fx.CreateCourse(ctx, "Go Basics")
	c2 := fx.CreateCourse(ctx, "English B2")
	g2 := fx.CreateGroup(ctx, "English Evening", c2.ID, 10)
	st := fx.CreateStudent(ctx, "Alice Adams", "+100000001", c1.ID)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/groups/move-student", map[string]any{
		"student_id":  st.ID.Hex(),
		"to_group_id": g2.ID.Hex(),
	})
	rec := httptest.NewRecorder()
	h.HandleMoveStudent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	var payload apierrors.Payload
	testutil.DecodeJSON(t, rec, &payload)
	if payload.Code != apierrors.CodeCrossCourseMove {
		t.Errorf("expected code %q, got %q", apierrors.CodeCrossCourseMove, payload.Code)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	group := fx.CreateGroup(ctx, "Morning A", course.ID, 10)
	st := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)
	fx.AssignStudent(ctx, group.ID, st.ID)

	req := httptest.NewRequest(http.MethodDelete, "/groups/"+group.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var loaded models.Student
	if err := fx.DB().Collection("students").FindOne(ctx, bson.M{"_id": st.ID}).Decode(&loaded); err != nil {
		t.Fatalf("failed to load student: %v", err)
	}
	if loaded.GroupID != nil {
		t.Error("expected member's group reference cleared")
	}
}

func TestHandleDelete_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	missing := primitive.NewObjectID()
	req := httptest.NewRequest(http.MethodDelete, "/groups/"+missing.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", missing.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestServeUnassigned(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	group := fx.CreateGroup(ctx, "Morning A", course.ID, 10)
	free := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)
	placed := fx.CreateStudent(ctx, "Bob Brown", "+100000002", course.ID)
	fx.AssignStudent(ctx, group.ID, placed.ID)

	req := httptest.NewRequest(http.MethodGet, "/groups/course/"+course.ID.Hex()+"/unassigned", nil)
	req = testutil.WithChiURLParam(req, "courseId", course.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeUnassigned(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var got []models.Student
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 1 || got[0].ID != free.ID {
		t.Errorf("expected only the unassigned student, got %d entries", len(got))
	}
}

func TestServeHistory(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	g1 := fx.CreateGroup(ctx, "Morning A", course.ID, 10)
	g2 := fx.CreateGroup(ctx, "Evening B", course.ID, 10)
	st := fx.CreateStudent(ctx, "Alice Adams", "+100000001", course.ID)

	// Two real moves through the handler layer's store.
	for _, target := range []primitive.ObjectID{g1.ID, g2.ID} {
		target := target
		req := testutil.NewJSONRequest(t, http.MethodPost, "/groups/move-student", map[string]any{
			"student_id":  st.ID.Hex(),
			"to_group_id": target.Hex(),
		})
		rec := httptest.NewRecorder()
		h.HandleMoveStudent(rec, req)
		testutil.AssertStatus(t, rec, http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/groups/students/"+st.ID.Hex()+"/history", nil)
	req = testutil.WithChiURLParam(req, "studentId", st.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeHistory(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var entries []historyview.Entry
	testutil.DecodeJSON(t, rec, &entries)
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	// Newest first: the move into g2.
	if entries[0].ToGroupName != "Evening B" {
		t.Errorf("expected newest entry first, got to_group_name %q", entries[0].ToGroupName)
	}
	if entries[0].FromGroupName != "Morning A" {
		t.Errorf("expected from_group_name resolved, got %q", entries[0].FromGroupName)
	}
}

package students

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/edcenterhq/edcenter/internal/app/features/errors"
	"github.com/edcenterhq/edcenter/internal/domain/models"
	"github.com/edcenterhq/edcenter/internal/testutil"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, apierrors.NewResponder(zap.NewNop()), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestHandleSelfEnroll(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/students/enroll", map[string]any{
		"full_name": "Alice Adams",
		"phone":     "+100000001",
		"course_id": course.ID.Hex(),
	})
	rec := httptest.NewRecorder()
	h.HandleSelfEnroll(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var got models.Student
	testutil.DecodeJSON(t, rec, &got)
	if got.FullName != "Alice Adams" {
		t.Errorf("unexpected full_name %q", got.FullName)
	}
	if got.Status != models.StudentActive {
		t.Errorf("expected status active, got %q", got.Status)
	}
	if got.GroupID != nil {
		t.Error("expected no group at enrollment")
	}
}

func TestHandleSelfEnroll_UnknownCourse(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/students/enroll", map[string]any{
		"full_name": "Alice Adams",
		"phone":     "+100000001",
		"course_id": primitive.NewObjectID().Hex(),
	})
	rec := httptest.NewRecorder()
	h.HandleSelfEnroll(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandleSelfEnroll_MissingFields(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/students/enroll", map[string]any{
		"full_name": "Alice Adams",
	})
	rec := httptest.NewRecorder()
	h.HandleSelfEnroll(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestHandleEnroll_FullRecord(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fx.CreateCourse(ctx, "Go Basics")
	teacher := fx.CreateUser(ctx, "Tina Teacher", "tina@test.com", "teacher")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/students", map[string]any{
		"full_name":  "Bob Brown",
		"email":      "bob@test.com",
		"phone":      "+100000002",
		"course_id":  course.ID.Hex(),
		"teacher_id": teacher.ID.Hex(),
	})
	rec := httptest.NewRecorder()
	h.HandleEnroll(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var got models.Student
	testutil.DecodeJSON(t, rec, &got)
	if got.TeacherID == nil || *got.TeacherID != teacher.ID {
		t.Error("expected teacher assigned")
	}
	if got.Email != "bob@test.com" {
		t.Errorf("unexpected email %q", got.Email)
	}
}

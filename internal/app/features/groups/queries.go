// internal/app/features/groups/queries.go
package groups

import (
	"context"
	"net/http"

	enrollmentstore "github.com/edcenterhq/edcenter/internal/app/store/enrollment"
	"github.com/edcenterhq/edcenter/internal/app/store/queries/historyview"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"
	"github.com/edcenterhq/edcenter/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeUnassigned lists students on a course with no group.
// GET /groups/course/{courseId}/unassigned
func (h *Handler) ServeUnassigned(w http.ResponseWriter, r *http.Request) {
	courseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "courseId"))
	if err != nil {
		h.Err.BadRequest(w, "invalid course ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	students, err := enrollmentstore.New(h.DB).UnassignedStudents(ctx, courseID)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}
	if students == nil {
		students = []models.Student{}
	}
	h.Err.JSON(w, http.StatusOK, students)
}

// ServeHistory returns a student's move records, most recent first,
// with group and user names resolved.
// GET /groups/students/{studentId}/history
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	studentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "studentId"))
	if err != nil {
		h.Err.BadRequest(w, "invalid student ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := historyview.ForStudent(ctx, h.DB, studentID)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}
	if entries == nil {
		entries = []historyview.Entry{}
	}
	h.Err.JSON(w, http.StatusOK, entries)
}

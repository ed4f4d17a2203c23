// internal/app/features/students/manage.go
package students

import (
	"context"
	"net/http"

	studentstore "github.com/edcenterhq/edcenter/internal/app/store/students"
	"github.com/edcenterhq/edcenter/internal/app/system/reqjson"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"
	"github.com/edcenterhq/edcenter/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList lists students, optionally filtered by course, group, or
// status query parameters.
// GET /students?courseId=&groupId=&status=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	var params studentstore.ListParams

	if raw := r.URL.Query().Get("courseId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.Err.BadRequest(w, "invalid courseId")
			return
		}
		params.CourseID = &id
	}
	if raw := r.URL.Query().Get("groupId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.Err.BadRequest(w, "invalid groupId")
			return
		}
		params.GroupID = &id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		if raw != models.StudentActive && raw != models.StudentCompleted && raw != models.StudentDropped {
			h.Err.BadRequest(w, "invalid status")
			return
		}
		params.Status = &raw
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	students, err := studentstore.New(h.DB).List(ctx, params)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}
	if students == nil {
		students = []models.Student{}
	}

	h.Err.JSON(w, http.StatusOK, students)
}

// ServeStudent returns one student.
// GET /students/{id}
func (h *Handler) ServeStudent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid student ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := studentstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusOK, st)
}

type updateStudentRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,min=1"`
	TeacherID *string `json:"teacher_id"`
	Status    *string `json:"status" validate:"omitempty,oneof=active completed dropped"`
}

// HandleUpdate applies a partial profile update. Group assignment is
// not part of the profile; it changes only through the groups feature.
// PUT /students/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid student ID")
		return
	}

	var req updateStudentRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}

	params := studentstore.UpdateParams{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Status:   req.Status,
	}
	if req.TeacherID != nil {
		tid, err := primitive.ObjectIDFromHex(*req.TeacherID)
		if err != nil {
			h.Err.BadRequest(w, "invalid teacher ID")
			return
		}
		params.TeacherID = &tid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := studentstore.New(h.DB).UpdateProfile(ctx, id, params)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusOK, st)
}

// HandleDelete hard-deletes a student.
// DELETE /students/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid student ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	deleted, err := studentstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}
	if deleted == 0 {
		h.Err.NotFound(w, "student not found")
		return
	}

	h.Err.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

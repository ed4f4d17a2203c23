// internal/app/features/courses/crud.go
package courses

import (
	"context"
	"net/http"

	coursestore "github.com/edcenterhq/edcenter/internal/app/store/courses"
	"github.com/edcenterhq/edcenter/internal/app/system/htmlsanitize"
	"github.com/edcenterhq/edcenter/internal/app/system/reqjson"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"
	"github.com/edcenterhq/edcenter/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createCourseRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	DurationMonths int     `json:"duration_months" validate:"omitempty,min=1"`
	MonthlyFee     float64 `json:"monthly_fee" validate:"omitempty,min=0"`
}

type updateCourseRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=1"`
	Description    *string  `json:"description"`
	DurationMonths *int     `json:"duration_months" validate:"omitempty,min=1"`
	MonthlyFee     *float64 `json:"monthly_fee" validate:"omitempty,min=0"`
	Status         *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// HandleCreate creates a course.
// POST /courses
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	course, err := coursestore.New(h.DB).Create(ctx, models.Course{
		Name:           req.Name,
		Description:    htmlsanitize.Clean(req.Description),
		DurationMonths: req.DurationMonths,
		MonthlyFee:     req.MonthlyFee,
	})
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusCreated, course)
}

// ServeList lists all courses.
// GET /courses
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courses, err := coursestore.New(h.DB).List(ctx)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}

	h.Err.JSON(w, http.StatusOK, courses)
}

// ServeCourse returns one course.
// GET /courses/{id}
func (h *Handler) ServeCourse(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid course ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	course, err := coursestore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusOK, course)
}

// HandleUpdate applies a partial course update.
// PUT /courses/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid course ID")
		return
	}

	var req updateCourseRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}
	if req.Description != nil {
		clean := htmlsanitize.Clean(*req.Description)
		req.Description = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	course, err := coursestore.New(h.DB).Update(ctx, id, coursestore.UpdateParams{
		Name:           req.Name,
		Description:    req.Description,
		DurationMonths: req.DurationMonths,
		MonthlyFee:     req.MonthlyFee,
		Status:         req.Status,
	})
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusOK, course)
}

// HandleDelete removes a course that no student or group references.
// DELETE /courses/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid course ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := coursestore.New(h.DB).Delete(ctx, id)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}
	if deleted == 0 {
		h.Err.NotFound(w, "course not found")
		return
	}

	h.Err.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

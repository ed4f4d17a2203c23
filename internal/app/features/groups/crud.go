// internal/app/features/groups/crud.go
package groups

import (
	"context"
	"net/http"

	coursestore "github.com/edcenterhq/edcenter/internal/app/store/courses"
	enrollmentstore "github.com/edcenterhq/edcenter/internal/app/store/enrollment"
	groupstore "github.com/edcenterhq/edcenter/internal/app/store/groups"
	"github.com/edcenterhq/edcenter/internal/app/system/htmlsanitize"
	"github.com/edcenterhq/edcenter/internal/app/system/reqjson"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"
	"github.com/edcenterhq/edcenter/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createGroupRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	CourseID    string   `json:"course_id" validate:"required"`
	MaxStudents *int     `json:"max_students" validate:"omitempty,min=1"`
	DaysOfWeek  []string `json:"days_of_week"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	TeacherID   string   `json:"teacher_id"`
}

type updateGroupRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	MaxStudents *int     `json:"max_students" validate:"omitempty,min=1"`
	DaysOfWeek  []string `json:"days_of_week"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	TeacherID   *string  `json:"teacher_id"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// HandleCreate creates a group for a course.
// POST /groups
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}

	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		h.Err.BadRequest(w, "invalid course ID")
		return
	}

	var teacherID *primitive.ObjectID
	if req.TeacherID != "" {
		tid, err := primitive.ObjectIDFromHex(req.TeacherID)
		if err != nil {
			h.Err.BadRequest(w, "invalid teacher ID")
			return
		}
		teacherID = &tid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := coursestore.New(h.DB).GetByID(ctx, courseID); err != nil {
		h.Err.Error(w, r, err)
		return
	}

	g, err := groupstore.New(h.DB).Create(ctx, models.Group{
		Name:        req.Name,
		Description: htmlsanitize.Clean(req.Description),
		CourseID:    courseID,
		MaxStudents: req.MaxStudents,
		DaysOfWeek:  req.DaysOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TeacherID:   teacherID,
	})
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Log.Info("group created",
		zap.String("group_id", g.ID.Hex()),
		zap.String("course_id", courseID.Hex()))
	h.Err.JSON(w, http.StatusCreated, g)
}

// ServeList lists groups, optionally filtered by course.
// GET /groups?courseId=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	var courseID *primitive.ObjectID
	if raw := r.URL.Query().Get("courseId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.Err.BadRequest(w, "invalid courseId")
			return
		}
		courseID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := groupstore.New(h.DB).List(ctx, courseID)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}

	h.Err.JSON(w, http.StatusOK, groups)
}

// ServeGroup returns one group.
// GET /groups/{id}
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid group ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := groupstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusOK, g)
}

// HandleUpdate applies a partial group update. Membership is not
// touched here; it changes only through the member/move endpoints.
// PUT /groups/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid group ID")
		return
	}

	var req updateGroupRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}
	if req.Description != nil {
		clean := htmlsanitize.Clean(*req.Description)
		req.Description = &clean
	}

	params := groupstore.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		MaxStudents: req.MaxStudents,
		DaysOfWeek:  req.DaysOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      req.Status,
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

	g, err := groupstore.New(h.DB).UpdateInfo(ctx, id, params)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusOK, g)
}

// HandleDelete deletes a group after clearing every member's group
// reference.
// DELETE /groups/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid group ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := enrollmentstore.New(h.DB).DeleteGroup(ctx, id); err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Log.Info("group deleted", zap.String("group_id", id.Hex()))
	h.Err.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

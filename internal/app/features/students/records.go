// internal/app/features/students/records.go
package students

import (
	"context"
	"net/http"
	"strings"
	"time"

	studentstore "github.com/edcenterhq/edcenter/internal/app/store/students"
	"github.com/edcenterhq/edcenter/internal/app/system/reqjson"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"
	"github.com/edcenterhq/edcenter/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type gradeRequest struct {
	Label string  `json:"label" validate:"required"`
	Score float64 `json:"score" validate:"min=0,max=100"`
}

type attendanceRequest struct {
	Date    time.Time `json:"date" validate:"required"`
	Present bool      `json:"present"`
}

// HandleGrade records a score under an assignment label.
// POST /students/{id}/grades
func (h *Handler) HandleGrade(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid student ID")
		return
	}

	var req gradeRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}
	// Grade labels become document keys.
	if strings.ContainsAny(req.Label, ".$") {
		h.Err.BadRequest(w, "label must not contain '.' or '$'")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := studentstore.New(h.DB).SetGrade(ctx, id, req.Label, req.Score)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusOK, st)
}

// HandleAttendance appends one attendance mark.
// POST /students/{id}/attendance
func (h *Handler) HandleAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid student ID")
		return
	}

	var req attendanceRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := studentstore.New(h.DB).AppendAttendance(ctx, id, models.AttendanceRecord{
		Date:    req.Date.UTC(),
		Present: req.Present,
	})
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusOK, st)
}

// internal/app/features/groups/members.go
package groups

import (
	"context"
	"net/http"

	enrollmentstore "github.com/edcenterhq/edcenter/internal/app/store/enrollment"
	"github.com/edcenterhq/edcenter/internal/app/system/reqjson"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type addStudentsRequest struct {
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,required"`
}

// HandleAddStudents adds students to a group's member list.
// POST /groups/{id}/students
func (h *Handler) HandleAddStudents(w http.ResponseWriter, r *http.Request) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid group ID")
		return
	}

	var req addStudentsRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}

	studentIDs := make([]primitive.ObjectID, 0, len(req.StudentIDs))
	for _, raw := range req.StudentIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.Err.BadRequest(w, "invalid student ID: "+raw)
			return
		}
		studentIDs = append(studentIDs, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	g, err := enrollmentstore.New(h.DB).AddStudents(ctx, groupID, studentIDs)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Log.Info("students added to group",
		zap.String("group_id", groupID.Hex()),
		zap.Int("count", len(studentIDs)))
	h.Err.JSON(w, http.StatusOK, g)
}

// HandleRemoveStudent removes one student from a group. Removing a
// student who is not a member succeeds and leaves the list unchanged.
// DELETE /groups/{id}/students/{studentId}
func (h *Handler) HandleRemoveStudent(w http.ResponseWriter, r *http.Request) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Err.BadRequest(w, "invalid group ID")
		return
	}
	studentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "studentId"))
	if err != nil {
		h.Err.BadRequest(w, "invalid student ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := enrollmentstore.New(h.DB).RemoveStudent(ctx, groupID, studentID)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Log.Info("student removed from group",
		zap.String("group_id", groupID.Hex()),
		zap.String("student_id", studentID.Hex()))
	h.Err.JSON(w, http.StatusOK, g)
}

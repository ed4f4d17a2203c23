// internal/app/features/groups/move.go
package groups

import (
	"context"
	"net/http"

	enrollmentstore "github.com/edcenterhq/edcenter/internal/app/store/enrollment"
	sessionauth "github.com/edcenterhq/edcenter/internal/app/system/auth"
	"github.com/edcenterhq/edcenter/internal/app/system/htmlsanitize"
	"github.com/edcenterhq/edcenter/internal/app/system/reqjson"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type moveStudentRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	ToGroupID string `json:"to_group_id"`
	Reason    string `json:"reason"`
}

// HandleMoveStudent transfers a student between groups, records a
// history entry, and returns the updated student. An empty to_group_id
// removes the student from their current group.
// POST /groups/move-student
func (h *Handler) HandleMoveStudent(w http.ResponseWriter, r *http.Request) {
	var req moveStudentRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}

	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		h.Err.BadRequest(w, "invalid student ID")
		return
	}

	params := enrollmentstore.MoveParams{
		StudentID: studentID,
		Reason:    htmlsanitize.Clean(req.Reason),
	}
	if req.ToGroupID != "" {
		toID, err := primitive.ObjectIDFromHex(req.ToGroupID)
		if err != nil {
			h.Err.BadRequest(w, "invalid target group ID")
			return
		}
		params.ToGroupID = &toID
	}
	if su, ok := sessionauth.CurrentUser(r); ok {
		if movedBy, err := primitive.ObjectIDFromHex(su.ID); err == nil {
			params.MovedBy = &movedBy
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	st, err := enrollmentstore.New(h.DB).MoveStudent(ctx, params)
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Log.Info("student moved",
		zap.String("student_id", studentID.Hex()),
		zap.String("to_group_id", req.ToGroupID))
	h.Err.JSON(w, http.StatusOK, st)
}

// internal/app/features/students/enroll.go
package students

import (
	"context"
	"net/http"

	coursestore "github.com/edcenterhq/edcenter/internal/app/store/courses"
	studentstore "github.com/edcenterhq/edcenter/internal/app/store/students"
	"github.com/edcenterhq/edcenter/internal/app/system/reqjson"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"
	"github.com/edcenterhq/edcenter/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type enrollRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
	TeacherID string `json:"teacher_id"`
}

// selfEnrollRequest is the public application form: just who you are
// and which course you want. Group and teacher come later from staff.
type selfEnrollRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	CourseID string `json:"course_id" validate:"required"`
}

// HandleEnroll creates a full enrollment record (staff-initiated).
// POST /students
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
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

	// The course reference is immutable after enrollment, so reject a
	// bad one up front.
	if _, err := coursestore.New(h.DB).GetByID(ctx, courseID); err != nil {
		h.Err.Error(w, r, err)
		return
	}

	st, err := studentstore.New(h.DB).Create(ctx, models.Student{
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		CourseID:  courseID,
		TeacherID: teacherID,
	})
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Log.Info("student enrolled",
		zap.String("student_id", st.ID.Hex()),
		zap.String("course_id", courseID.Hex()))
	h.Err.JSON(w, http.StatusCreated, st)
}

// HandleSelfEnroll creates an enrollment from the public application
// form. No session required.
// POST /students/enroll
func (h *Handler) HandleSelfEnroll(w http.ResponseWriter, r *http.Request) {
	var req selfEnrollRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}

	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		h.Err.BadRequest(w, "invalid course ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := coursestore.New(h.DB).GetByID(ctx, courseID); err != nil {
		h.Err.Error(w, r, err)
		return
	}

	st, err := studentstore.New(h.DB).Create(ctx, models.Student{
		FullName: req.FullName,
		Phone:    req.Phone,
		CourseID: courseID,
	})
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Log.Info("student self-enrolled",
		zap.String("student_id", st.ID.Hex()),
		zap.String("course_id", courseID.Hex()))
	h.Err.JSON(w, http.StatusCreated, st)
}

// internal/app/features/errors/errors.go

// Package errors maps store errors onto JSON HTTP responses. Handlers
// hand every failed operation to a Responder instead of inspecting
// sentinel errors themselves, so the error taxonomy is applied in one
// place.
package errors

import (
	"encoding/json"
	"net/http"

	coursestore "github.com/edcenterhq/edcenter/internal/app/store/courses"
	enrollmentstore "github.com/edcenterhq/edcenter/internal/app/store/enrollment"
	groupstore "github.com/edcenterhq/edcenter/internal/app/store/groups"
	historystore "github.com/edcenterhq/edcenter/internal/app/store/history"
	studentstore "github.com/edcenterhq/edcenter/internal/app/store/students"
	userstore "github.com/edcenterhq/edcenter/internal/app/store/users"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Machine-readable error codes returned in the "code" field.
const (
	CodeNotFound         = "not_found"
	CodeCapacityExceeded = "capacity_exceeded"
	CodeCrossCourseMove  = "cross_course_move"
	CodeNoOpMove         = "no_op_move"
	CodeDuplicate        = "duplicate"
	CodeInUse            = "in_use"
	CodeBadRequest       = "bad_request"
	CodeUnauthorized     = "unauthorized"
	CodeInternal         = "internal"
)

// Payload is the JSON error body.
type Payload struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Responder writes JSON responses and logs unexpected failures.
type Responder struct {
	Log *zap.Logger
}

func NewResponder(logger *zap.Logger) *Responder {
	return &Responder{Log: logger}
}

// JSON writes v with the given status.
func (e *Responder) JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		e.Log.Error("encoding response failed", zap.Error(err))
	}
}

// BadRequest writes a 400 with a caller-facing message.
func (e *Responder) BadRequest(w http.ResponseWriter, msg string) {
	e.JSON(w, http.StatusBadRequest, Payload{Code: CodeBadRequest, Error: msg})
}

// NotFound writes a 404 with a caller-facing message.
func (e *Responder) NotFound(w http.ResponseWriter, msg string) {
	e.JSON(w, http.StatusNotFound, Payload{Code: CodeNotFound, Error: msg})
}

// Error maps err onto the error taxonomy: not-found and validation
// failures become 404/400 with stable codes, duplicates and in-use
// conflicts become 409, and anything unexpected becomes a logged 500.
func (e *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	switch err {
	case enrollmentstore.ErrGroupNotFound,
		enrollmentstore.ErrStudentNotFound,
		mongo.ErrNoDocuments:
		e.JSON(w, http.StatusNotFound, Payload{Code: CodeNotFound, Error: notFoundMessage(err)})

	case enrollmentstore.ErrCapacityExceeded:
		e.JSON(w, http.StatusBadRequest, Payload{Code: CodeCapacityExceeded, Error: err.Error()})

	case enrollmentstore.ErrCrossCourseMove:
		e.JSON(w, http.StatusBadRequest, Payload{Code: CodeCrossCourseMove, Error: err.Error()})

	case enrollmentstore.ErrNoOpMove, historystore.ErrVacuousRecord:
		e.JSON(w, http.StatusBadRequest, Payload{Code: CodeNoOpMove, Error: err.Error()})

	case groupstore.ErrDuplicateGroupName,
		coursestore.ErrDuplicateCourseName,
		studentstore.ErrDuplicatePhone,
		userstore.ErrDuplicateEmail:
		e.JSON(w, http.StatusConflict, Payload{Code: CodeDuplicate, Error: err.Error()})

	case coursestore.ErrCourseInUse:
		e.JSON(w, http.StatusConflict, Payload{Code: CodeInUse, Error: err.Error()})

	default:
		e.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		e.JSON(w, http.StatusInternalServerError, Payload{Code: CodeInternal, Error: "internal error"})
	}
}

func notFoundMessage(err error) string {
	if err == mongo.ErrNoDocuments {
		return "not found"
	}
	return err.Error()
}

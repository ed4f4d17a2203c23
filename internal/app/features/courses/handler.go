// internal/app/features/courses/handler.go
package courses

import (
	apierrors "github.com/edcenterhq/edcenter/internal/app/features/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the courses feature.
type Handler struct {
	DB  *mongo.Database
	Err *apierrors.Responder
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, errs *apierrors.Responder, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Err: errs, Log: logger}
}

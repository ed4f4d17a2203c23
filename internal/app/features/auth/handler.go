// internal/app/features/auth/handler.go

// Package auth exposes session login/logout for staff accounts.
package auth

import (
	"context"
	"net/http"

	apierrors "github.com/edcenterhq/edcenter/internal/app/features/errors"
	userstore "github.com/edcenterhq/edcenter/internal/app/store/users"
	sessionauth "github.com/edcenterhq/edcenter/internal/app/system/auth"
	"github.com/edcenterhq/edcenter/internal/app/system/reqjson"
	"github.com/edcenterhq/edcenter/internal/app/system/status"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Sessions *sessionauth.SessionManager
	Err      *apierrors.Responder
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, sm *sessionauth.SessionManager, errs *apierrors.Responder, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Sessions: sm, Err: errs, Log: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleLogin authenticates a staff account and issues a session cookie.
// POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := reqjson.Decode(r, &req); err != nil {
		h.Err.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		h.Log.Info("login failed: unknown email", zap.String("email", req.Email))
		h.unauthorized(w)
		return
	}
	if err != nil {
		h.Err.Error(w, r, err)
		return
	}
	if u.Status != status.Active || !userstore.VerifyPassword(u, req.Password) {
		h.Log.Info("login failed", zap.String("email", req.Email))
		h.unauthorized(w)
		return
	}

	su := sessionauth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}
	if err := h.Sessions.SignIn(w, r, su); err != nil {
		h.Err.Error(w, r, err)
		return
	}

	h.Err.JSON(w, http.StatusOK, sessionResponse(su))
}

// HandleLogout clears the session cookie.
// POST /auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Err.Error(w, r, err)
		return
	}
	h.Err.JSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// ServeMe returns the signed-in user, or 401.
// GET /auth/me
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := sessionauth.CurrentUser(r)
	if !ok {
		h.unauthorized(w)
		return
	}
	h.Err.JSON(w, http.StatusOK, sessionResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	})
}

func (h *Handler) unauthorized(w http.ResponseWriter) {
	h.Err.JSON(w, http.StatusUnauthorized, apierrors.Payload{
		Code:  apierrors.CodeUnauthorized,
		Error: "invalid credentials",
	})
}

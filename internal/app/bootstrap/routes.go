// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/edcenterhq/edcenter/internal/app/features/auth"
	coursesfeature "github.com/edcenterhq/edcenter/internal/app/features/courses"
	apierrors "github.com/edcenterhq/edcenter/internal/app/features/errors"
	groupsfeature "github.com/edcenterhq/edcenter/internal/app/features/groups"
	healthfeature "github.com/edcenterhq/edcenter/internal/app/features/health"
	studentsfeature "github.com/edcenterhq/edcenter/internal/app/features/students"
	"github.com/edcenterhq/edcenter/internal/app/system/auth"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. EdCenter applies the session
// middleware globally and mounts the JSON feature routers: health,
// auth, courses, students, and groups.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errResponder := apierrors.NewResponder(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	authHandler := authfeature.NewHandler(deps.MongoDatabase, sessionMgr, errResponder, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Course catalog
	coursesHandler := coursesfeature.NewHandler(deps.MongoDatabase, errResponder, logger)
	r.Mount("/courses", coursesfeature.Routes(coursesHandler, sessionMgr))

	// Student records (includes the public enrollment endpoint)
	studentsHandler := studentsfeature.NewHandler(deps.MongoDatabase, errResponder, logger)
	r.Mount("/students", studentsfeature.Routes(studentsHandler, sessionMgr))

	// Group management and enrollment operations
	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, errResponder, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	return r, nil
}

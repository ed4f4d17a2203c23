// internal/app/features/groups/routes.go
package groups

import (
	"github.com/edcenterhq/edcenter/internal/app/system/auth"
	"github.com/edcenterhq/edcenter/internal/domain/models"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin, models.RoleModerator))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)

		// Literal routes before the {id} wildcard.
		pr.Post("/move-student", h.HandleMoveStudent)
		pr.Get("/course/{courseId}/unassigned", h.ServeUnassigned)
		pr.Get("/students/{studentId}/history", h.ServeHistory)

		pr.Get("/{id}", h.ServeGroup)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		pr.Post("/{id}/students", h.HandleAddStudents)
		pr.Delete("/{id}/students/{studentId}", h.HandleRemoveStudent)
	})

	return r
}

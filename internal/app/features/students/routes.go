// internal/app/features/students/routes.go
package students

import (
	"github.com/edcenterhq/edcenter/internal/app/system/auth"
	"github.com/edcenterhq/edcenter/internal/domain/models"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Public application form.
	r.Post("/enroll", h.HandleSelfEnroll)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin, models.RoleModerator))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleEnroll)
		pr.Get("/{id}", h.ServeStudent)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		pr.Post("/{id}/grades", h.HandleGrade)
		pr.Post("/{id}/attendance", h.HandleAttendance)
	})

	return r
}

package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/Dijital-human/yusu-admin/internal/admins"
	"github.com/Dijital-human/yusu-admin/internal/audit"
	"github.com/Dijital-human/yusu-admin/internal/auth"
	"github.com/Dijital-human/yusu-admin/internal/blocking"
	"github.com/Dijital-human/yusu-admin/internal/category"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
	"github.com/Dijital-human/yusu-admin/internal/transport/middleware"
	"github.com/Dijital-human/yusu-admin/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	Category *category.Handler
	Admins   *admins.Handler
	Blocking *blocking.Handler
	Audit    *audit.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, checker permissions.Checker, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware(logger))

	// Spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires an authenticated admin.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/auth/me", h.Auth.Me)

			pr.Group(func(cr chi.Router) {
				cr.Use(middleware.RequirePermission(checker, permissions.ManageCategories))
				cr.Get("/categories", h.Category.GetCategories)
				cr.Post("/categories", h.Category.CreateCategory)
				cr.Put("/categories", h.Category.UpdateCategory)
				cr.Delete("/categories", h.Category.DeleteCategory)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(middleware.RequirePermission(checker, permissions.ManageAdmins))
				ar.Get("/sub-admins", h.Admins.GetSubAdmins)
				ar.Post("/sub-admins", h.Admins.CreateSubAdmin)
				ar.Put("/sub-admins", h.Admins.UpdateSubAdmin)
			})

			pr.Group(func(br chi.Router) {
				br.Use(middleware.RequirePermission(checker, permissions.ManageUsers))
				br.Get("/user-blocking", h.Blocking.GetBlockedUsers)
				br.Post("/user-blocking", h.Blocking.BlockUser)
				br.Post("/user-blocking/unblock", h.Blocking.UnblockUser)
				br.Post("/user-blocking/bulk", h.Blocking.BulkBlockUsers)
			})

			pr.Group(func(lr chi.Router) {
				lr.Use(middleware.RequirePermission(checker, permissions.ViewAuditLogs))
				lr.Get("/audit-logs", h.Audit.ListEntries)
			})
		})
	})
}

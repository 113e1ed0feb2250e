package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Dijital-human/yusu-admin/internal/auth"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
)

// RequirePermission gates a route on the admin's role holding at least
// one of the listed permissions. Must run after the auth middleware; a
// missing admin in context is a 401, a role without the permission a 403.
func RequirePermission(checker permissions.Checker, required ...permissions.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, ok := auth.AdminFromContext(r.Context())
			if !ok {
				writeDenied(w, http.StatusUnauthorized, "missing authenticated admin")
				return
			}

			if !checker.HasAnyPermission(admin.Role, required) {
				slog.Warn("access denied: role lacks required permission",
					"admin_id", admin.ID,
					"role", admin.Role,
					"required_permissions", required)
				writeDenied(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeDenied(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    status,
		"message": message,
	})
}

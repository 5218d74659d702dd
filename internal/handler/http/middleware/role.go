package middleware

import (
	"net/http"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func roleFromContext(r *http.Request) (worker.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}

	role := worker.Role(roleStr)
	return role, role.Valid()
}

// RequireApprover requires a role that sits in the approval chain.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || role == worker.RoleWorker {
			response.Forbidden(w, "Approver role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSupervision requires supervisor or above, for the site views.
func RequireSupervision(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || role == worker.RoleWorker {
			response.Forbidden(w, "Supervisor access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManagement requires manager or director.
func RequireManagement(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || (role != worker.RoleManager && role != worker.RoleDirector) {
			response.Forbidden(w, "Management access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

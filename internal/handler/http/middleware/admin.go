package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintaihq/kintai-backend-go/internal/domain/auth"
	"github.com/kintaihq/kintai-backend-go/internal/domain/user"
	"github.com/kintaihq/kintai-backend-go/internal/handler/http/response"
)

// ManagerOnly gates routes that act on other employees' records.
func ManagerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		roleStr, _ := claims["role"].(string)
		if !user.Role(roleStr).CanManage() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AdminOnly gates routes reserved for the admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		roleStr, _ := claims["role"].(string)
		if user.Role(roleStr) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

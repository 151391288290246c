package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	database "github.com/Tahsin974/bistro-boss-server/config"
	"github.com/Tahsin974/bistro-boss-server/models"
)

// LookupUserRole resolves the stored role for an email. Package-level so
// tests can stub it out without a running database.
var LookupUserRole = func(ctx context.Context, email string) (string, error) {
	var user models.User
	err := database.OpenCollection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return "", err
	}
	if user.Role == nil {
		return "", nil
	}
	return *user.Role, nil
}

func isAdmin(r *http.Request) bool {
	email := GetUserEmail(r)
	if email == "" {
		return false
	}
	role, err := LookupUserRole(r.Context(), email)
	return err == nil && role == "admin"
}

// RequireAdmin gates a route to users whose stored role is "admin".
// Must run after Authentication.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdmin(r) {
			writeAuthError(w, http.StatusForbidden, "Forbidden: admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSelfOrAdmin gates a route to the user named by the email found in
// the given query parameter or path variable. Admins pass any ownership
// check. Must run after Authentication.
func RequireSelfOrAdmin(emailParam string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			target := r.URL.Query().Get(emailParam)
			if target == "" {
				target = mux.Vars(r)[emailParam]
			}

			// an absent email is the handler's validation error, not an
			// ownership violation
			if target == "" || target == GetUserEmail(r) {
				next.ServeHTTP(w, r)
				return
			}

			if isAdmin(r) {
				next.ServeHTTP(w, r)
				return
			}

			writeAuthError(w, http.StatusForbidden, "Forbidden: access denied")
		})
	}
}

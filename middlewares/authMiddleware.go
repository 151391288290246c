package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	helper "github.com/Tahsin974/bistro-boss-server/helper"
)

// Context keys to store user information
type contextKey string

const EmailKey contextKey = "email"

// Authentication middleware for Gorilla Mux
func Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientToken := r.Header.Get("Authorization")
		if clientToken == "" {
			writeAuthError(w, http.StatusUnauthorized, "No Authorization header provided")
			return
		}

		// Token format should be "Bearer <token>"
		tokenParts := strings.Split(clientToken, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			writeAuthError(w, http.StatusUnauthorized, "Invalid Authorization format")
			return
		}

		claims, errMsg := helper.ValidateToken(tokenParts[1])
		if errMsg != "" {
			writeAuthError(w, http.StatusUnauthorized, errMsg)
			return
		}

		ctx := context.WithValue(r.Context(), EmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserEmail retrieves the authenticated email from the request context
func GetUserEmail(r *http.Request) string {
	email, _ := r.Context().Value(EmailKey).(string)
	return email
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

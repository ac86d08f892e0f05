package middleware

import (
	"context"
	"net/http"

	"festive-foliage/moderation"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	AttributionContextKey = contextKey("attribution")
	AdminContextKey       = contextKey("admin")
)

// RequireAdmin only lets requests with a valid Basic admin credential through.
func RequireAdmin(authorizer moderation.Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authorizer.Configured() {
				logrus.Error("Admin credentials are not configured")
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"error": "Server not configured"})
				return
			}

			cred, ok := moderation.ParseBasic(r.Header.Get("Authorization"))
			if !ok || !authorizer.Authorize(cred) {
				logrus.WithField("path", r.URL.Path).Warn("Rejected admin request")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsAdmin reports whether the request carries a valid admin credential. It
// never rejects; handlers use it to decide how much to show.
func IsAdmin(r *http.Request, authorizer moderation.Authorizer) bool {
	if admin, ok := r.Context().Value(AdminContextKey).(bool); ok && admin {
		return true
	}
	if authorizer == nil || !authorizer.Configured() {
		return false
	}
	cred, ok := moderation.ParseBasic(r.Header.Get("Authorization"))
	return ok && authorizer.Authorize(cred)
}

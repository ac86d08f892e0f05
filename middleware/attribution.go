package middleware

import (
	"context"
	"net/http"
	"strings"

	"festive-foliage/core"
)

// Attribution records who is asking, for moderation only.
func Attribution(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attr := core.Attribution{
			IP:      clientIP(r),
			Session: strings.TrimSpace(r.Header.Get("X-Session-Id")),
		}
		ctx := context.WithValue(r.Context(), AttributionContextKey, attr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AttributionFrom returns the attribution stored by the Attribution middleware.
func AttributionFrom(ctx context.Context) core.Attribution {
	if attr, ok := ctx.Value(AttributionContextKey).(core.Attribution); ok {
		return attr
	}
	return core.Attribution{IP: "unknown"}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}

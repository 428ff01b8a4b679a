package middleware

import (
	"context"
	"net/http"
)

type contextKey string

// uidKey carries the caller's user id through the request context.
const uidKey contextKey = "uid"

// Identity extracts the caller's user id from the X-User-ID header and
// stores it in the request context. Requests without the header pass
// through; handlers that need a user reject them.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid := r.Header.Get("X-User-ID"); uid != "" {
			r = r.WithContext(context.WithValue(r.Context(), uidKey, uid))
		}
		next.ServeHTTP(w, r)
	})
}

// UID returns the user id stored by Identity, or "" when absent.
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(uidKey).(string)
	return uid
}

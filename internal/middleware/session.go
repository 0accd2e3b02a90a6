// Package middleware provides HTTP middlewares for session authentication and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/atinyakov/userportal/internal/cookie"
)

type ctxKey string

const sessionKey ctxKey = "session"

// LoginPath is where clients with an invalid session are sent.
const LoginPath = "/login"

// SessionValidator reports whether a session id is live.
type SessionValidator interface {
	SessionValid(ctx context.Context, sessionID string) bool
}

// RequireSession is a middleware that only lets requests carrying a live
// session cookie through.
//
// A missing cookie or session token is answered with 400 and the reason.
// A session that is no longer live gets its cookie expired and is
// redirected to the login page. Otherwise the session id is stored in the
// request context for downstream handlers.
func RequireSession(v SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := cookie.SessionID(r.Header)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if !v.SessionValid(r.Context(), sessionID) {
				cookie.Expire(w)
				w.Header().Set("Location", LoginPath)
				w.WriteHeader(http.StatusFound)
				_, _ = w.Write([]byte("Invalid session"))
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionIDFromContext extracts the session id stored by RequireSession.
// Returns an empty string if not found.
func GetSessionIDFromContext(ctx context.Context) string {
	val := ctx.Value(sessionKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

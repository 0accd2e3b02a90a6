// Package cookie reads and writes the session_id cookie that carries
// a client's session identifier.
package cookie

import (
	"errors"
	"net/http"
	"strings"
)

// Name is the cookie holding the session identifier.
const Name = "session_id"

var (
	// ErrNoCookie is returned when the request has no Cookie header.
	ErrNoCookie = errors.New("no cookie found")
	// ErrNoSessionID is returned when no session_id token is present.
	ErrNoSessionID = errors.New("no session ID in cookie")
)

// SessionID returns the value of the first session_id token found in the
// Cookie headers. Tokens are split on ';' and trimmed.
func SessionID(h http.Header) (string, error) {
	lines := h.Values("Cookie")
	if len(lines) == 0 {
		return "", ErrNoCookie
	}
	for _, line := range lines {
		for _, part := range strings.Split(line, ";") {
			if id, ok := strings.CutPrefix(strings.TrimSpace(part), Name+"="); ok {
				return id, nil
			}
		}
	}
	return "", ErrNoSessionID
}

// Set writes an HttpOnly session cookie scoped to the whole site.
func Set(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
	})
}

// Expire clears the session cookie on the client.
func Expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Package http provides HTTP handlers for registration, cookie-session
// login and logout, profile access and page serving.
package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/userportal/internal/cookie"
	"github.com/atinyakov/userportal/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register stores a new user and returns its id.
	Register(ctx context.Context, u models.User) (models.UserID, error)
	// Login opens a session for the user matching the credentials.
	Login(ctx context.Context, login models.LoginInfo) (models.Session, error)
	// Logout closes a session. Unknown sessions are ignored.
	Logout(ctx context.Context, sessionID string)
	// SessionValid reports whether the session is live.
	SessionValid(ctx context.Context, sessionID string) bool
}

// AuthHandler handles HTTP requests for registration, login and logout.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// Register handles POST /register.
// It expects a JSON user with first_name, last_name, email and password,
// stores it and redirects to the login page.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	u, err := models.DecodeUser(r.Body)
	if err != nil {
		badRequest(w, decodeError(err))
		return
	}

	if _, err := h.AuthService.Register(r.Context(), u); err != nil {
		badRequest(w, err.Error())
		return
	}

	redirect(w, PathLogin, "Successfully registered")
}

// Login handles POST /login.
//
// A request that already carries a session cookie is not logged in again:
// a live session is sent to the home page, a dead one gets its cookie
// expired and is sent back to the login page. Otherwise the JSON body
// {email, password} is matched against the directory and, on success, a
// new session cookie is set and the client is redirected home.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if sessionID, err := cookie.SessionID(r.Header); err == nil {
		if !h.AuthService.SessionValid(r.Context(), sessionID) {
			cookie.Expire(w)
			redirect(w, PathLogin, "Invalid session")
			return
		}
		cookie.Set(w, sessionID)
		redirect(w, PathHome, "Already logged in")
		return
	}

	login, err := models.DecodeLoginInfo(r.Body)
	if err != nil {
		badRequest(w, decodeError(err))
		return
	}

	session, err := h.AuthService.Login(r.Context(), login)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	cookie.Set(w, session.ID)
	redirect(w, PathHome, "Successfully logged in")
}

// Logout handles DELETE /logout.
// It requires a session cookie, closes the session whether or not it is
// still live, expires the cookie and redirects to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := cookie.SessionID(r.Header)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	h.AuthService.Logout(r.Context(), sessionID)

	cookie.Expire(w)
	redirect(w, PathLogin, "Successfully logged out")
}

// Package http provides HTTP routing and middleware configuration
// for the user portal.
package http

import (
	"net/http"

	"github.com/atinyakov/userportal/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the portal.
//
// Parameters:
//
//	authHandler    - handler for registration, login and logout
//	profileHandler - handler for the authenticated profile endpoints
//	pageHandler    - handler for static pages
//	sessions       - session validator guarding the profile endpoints
//	logger         - structured logger for request logging middleware
//
// Routes:
//
//	GET    /                    → redirect to /login
//	GET    /home, /login, /register, /profile → static pages
//	GET    /loginPageStyle.css  → stylesheet
//	GET    /healthz             → liveness
//	POST   /register            → authHandler.Register
//	POST   /login               → authHandler.Login
//	DELETE /logout              → authHandler.Logout
//	PUT    /profile             → profileHandler.Update (RequireSession)
//	GET    /profile/user        → profileHandler.Load (RequireSession)
//
// Middleware chain (applied in order):
//  1. Recoverer: turns panics into 500
//  2. RealIP: takes the client address from proxy headers
//  3. WithRequestLogging(logger): logs incoming requests
//  4. RequireSession(sessions) on the profile endpoints
//
// Request bodies are decoded as JSON whatever their Content-Type; a body
// that does not decode is answered with 400.
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	pageHandler *PageHandler,
	sessions middleware.SessionValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RealIP)
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Pages
	r.Get(PathRoot, pageHandler.Root)
	r.Get(PathHome, pageHandler.Page(PageHome))
	r.Get(PathLogin, pageHandler.Page(PageLogin))
	r.Get(PathRegister, pageHandler.Page(PageRegister))
	r.Get(PathProfile, pageHandler.Page(PageProfile))
	r.Get(PathCSS, pageHandler.Stylesheet)
	r.Get(PathHealth, pageHandler.Health)

	r.Post(PathRegister, authHandler.Register)
	r.Post(PathLogin, authHandler.Login)
	r.Delete(PathLogout, authHandler.Logout)

	// Protected group: requires a live session cookie
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions))
		r.Put(PathProfile, profileHandler.Update)
		r.Get(PathUserData, profileHandler.Load)
	})

	return r
}

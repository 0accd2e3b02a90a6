package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/userportal/internal/middleware"
	"github.com/atinyakov/userportal/internal/models"
)

// ProfileService defines the profile operations required by ProfileHandler.
type ProfileService interface {
	// Profile returns the profile of the user behind the session.
	Profile(ctx context.Context, sessionID string) (models.UserProfile, error)
	// UpdateProfile overwrites the user behind the session.
	UpdateProfile(ctx context.Context, sessionID string, u models.User) error
}

// ProfileHandler serves the authenticated profile endpoints.
// Both handlers expect middleware.RequireSession in front of them.
type ProfileHandler struct {
	ProfileService ProfileService
}

// Update handles PUT /profile.
// The JSON body replaces every field of the session's user.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionIDFromContext(ctx)

	u, err := models.DecodeUser(r.Body)
	if err != nil {
		badRequest(w, decodeError(err))
		return
	}

	if err := h.ProfileService.UpdateProfile(ctx, sessionID, u); err != nil {
		badRequest(w, err.Error())
		return
	}

	redirect(w, PathHome, "Successfully updated user")
}

// Load handles GET /profile/user and writes the session user's profile as JSON.
func (h *ProfileHandler) Load(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionIDFromContext(ctx)

	profile, err := h.ProfileService.Profile(ctx, sessionID)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profile)
}

package state

import (
	"fmt"

	"github.com/atinyakov/userportal/internal/models"
)

// Manager owns the user directory and the session table.
//
// Each collection is guarded by its own lock and the Manager never holds
// both at once. Operations that touch both, such as ProfileFromSession,
// are therefore not atomic: the session may be deleted or the user updated
// between the two steps.
type Manager struct {
	users    *Directory
	sessions *SessionTable
}

// NewManager returns a Manager with an empty directory and session table.
func NewManager() *Manager {
	return &Manager{
		users:    NewDirectory(),
		sessions: NewSessionTable(),
	}
}

// AddUser registers a user and returns its id.
func (m *Manager) AddUser(u models.User) (models.UserID, error) {
	return m.users.Add(u)
}

// UpdateUser overwrites every field of the user with the given id.
func (m *Manager) UpdateUser(u models.User, id models.UserID) error {
	return m.users.Update(u, id)
}

// FindUser returns the id of the first user matching login.
func (m *Manager) FindUser(login models.LoginInfo) (models.UserID, error) {
	return m.users.FindByCredentials(login)
}

// ProfileOf returns the profile of the user with the given id.
func (m *Manager) ProfileOf(id models.UserID) (models.UserProfile, error) {
	return m.users.Profile(id)
}

// AddSession opens a session for userID.
func (m *Manager) AddSession(userID models.UserID) models.Session {
	return m.sessions.Create(userID)
}

// IsSessionValid reports whether sessionID is live.
func (m *Manager) IsSessionValid(sessionID string) bool {
	return m.sessions.IsValid(sessionID)
}

// UserIDFromSession resolves the user bound to sessionID.
func (m *Manager) UserIDFromSession(sessionID string) (models.UserID, error) {
	return m.sessions.UserID(sessionID)
}

// DeleteSession closes sessionID. Deleting an unknown session is a no-op.
func (m *Manager) DeleteSession(sessionID string) {
	m.sessions.Delete(sessionID)
}

// ProfileFromSession resolves sessionID to a user and returns its profile.
// The session lock is released before the directory lock is taken.
func (m *Manager) ProfileFromSession(sessionID string) (models.UserProfile, error) {
	id, err := m.sessions.UserID(sessionID)
	if err != nil {
		return models.UserProfile{}, err
	}
	profile, err := m.users.Profile(id)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return profile, nil
}

// Users returns a snapshot of the directory.
func (m *Manager) Users() []models.StoredUser {
	return m.users.Snapshot()
}

// Sessions returns a snapshot of the session table.
func (m *Manager) Sessions() []models.Session {
	return m.sessions.Snapshot()
}

// UserCount returns the number of registered users.
func (m *Manager) UserCount() int {
	return m.users.Len()
}

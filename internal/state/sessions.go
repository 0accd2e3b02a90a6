package state

import (
	"strconv"
	"sync"

	"github.com/atinyakov/userportal/internal/models"
)

// SessionTable maps live session ids to user ids.
//
// A new session id is the decimal table length at creation time. Once a
// session has been deleted the next id can repeat one that is still live;
// lookups then resolve to the earliest entry and Delete removes all of them.
type SessionTable struct {
	mu       sync.Mutex
	sessions []models.Session
}

// NewSessionTable returns an empty SessionTable.
func NewSessionTable() *SessionTable {
	return &SessionTable{}
}

// Create appends a session for userID and returns a copy of it.
func (t *SessionTable) Create(userID models.UserID) models.Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := models.NewSession(strconv.Itoa(len(t.sessions)), userID)
	if err != nil {
		// strconv.Itoa never yields an empty id
		panic(err)
	}
	t.sessions = append(t.sessions, s)
	return s
}

// IsValid reports whether sessionID is live.
func (t *SessionTable) IsValid(sessionID string) bool {
	_, err := t.UserID(sessionID)
	return err == nil
}

// UserID returns the user bound to sessionID.
func (t *SessionTable) UserID(sessionID string) (models.UserID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.sessions {
		if s.ID == sessionID {
			return s.UserID, nil
		}
	}
	return 0, ErrInvalidSession
}

// Delete removes every session with the given id. Unknown ids are ignored.
func (t *SessionTable) Delete(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.sessions[:0]
	for _, s := range t.sessions {
		if s.ID != sessionID {
			kept = append(kept, s)
		}
	}
	clear(t.sessions[len(kept):])
	t.sessions = kept
}

// Len returns the number of live sessions.
func (t *SessionTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Snapshot returns a copy of every live session in creation order.
func (t *SessionTable) Snapshot() []models.Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.Session, len(t.sessions))
	copy(out, t.sessions)
	return out
}

// Package storage implements the portal command-line client: the local
// session file, the HTTP API calls and the interactive prompts.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// DefaultSessionFile is used when LocalStorage.Path is empty.
const DefaultSessionFile = "session.json"

// LocalStorage keeps the current session on disk so a later run can reuse it.
type LocalStorage struct {
	// Path is the session file location.
	Path    string
	Session Session

	mu sync.Mutex
}

func (ls *LocalStorage) path() string {
	if ls.Path == "" {
		return DefaultSessionFile
	}
	return ls.Path
}

// Load reads the session file. A missing file leaves an empty session.
func (ls *LocalStorage) Load() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	f, err := os.Open(ls.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ls.Session = Session{}
			return nil
		}
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&ls.Session)
}

// Save writes the session file, readable only by the owner.
func (ls *LocalStorage) Save() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	data, err := json.Marshal(ls.Session)
	if err != nil {
		return err
	}
	return os.WriteFile(ls.path(), data, 0o600)
}

// Clear forgets the session and removes the file.
func (ls *LocalStorage) Clear() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.Session = Session{}
	if err := os.Remove(ls.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SessionID returns the stored session id, empty when logged out.
func (ls *LocalStorage) SessionID() string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.Session.ID
}

// SetSessionID records id for baseURL and saves the file.
func (ls *LocalStorage) SetSessionID(id, baseURL string) error {
	ls.mu.Lock()
	ls.Session = Session{ID: id, BaseURL: baseURL}
	ls.mu.Unlock()
	return ls.Save()
}

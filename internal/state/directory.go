// Package state holds the in-memory user directory and session table
// and the Manager that coordinates access to both.
package state

import (
	"sync"

	"github.com/atinyakov/userportal/internal/models"
)

// Directory is the ordered collection of registered users.
// Identifiers equal the directory size at insertion and are never reused.
type Directory struct {
	mu    sync.Mutex
	users []models.StoredUser
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Add validates candidate and stores a copy under the next sequential id.
// Emails are not checked for uniqueness.
func (d *Directory) Add(candidate models.User) (models.UserID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored, err := models.NewStoredUser(models.UserID(len(d.users)), candidate)
	if err != nil {
		return 0, err
	}
	d.users = append(d.users, stored)
	return stored.ID, nil
}

// Update replaces all fields of the user with the given id.
// Nothing changes unless updated is valid and the id exists.
func (d *Directory) Update(updated models.User, id models.UserID) error {
	if err := updated.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.users {
		if d.users[i].ID == id {
			d.users[i].User = updated
			return nil
		}
	}
	return ErrNotFound
}

// FindByCredentials returns the id of the first user whose email and
// password match login exactly.
func (d *Directory) FindByCredentials(login models.LoginInfo) (models.UserID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.User.MatchCredentials(login) {
			return u.ID, nil
		}
	}
	return 0, ErrNotFound
}

// Get returns a copy of the user with the given id.
func (d *Directory) Get(id models.UserID) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.ID == id {
			return u.User, nil
		}
	}
	return models.User{}, ErrNotFound
}

// Profile returns the password-free projection of the user with the given id.
func (d *Directory) Profile(id models.UserID) (models.UserProfile, error) {
	u, err := d.Get(id)
	if err != nil {
		return models.UserProfile{}, err
	}
	return u.Profile(), nil
}

// Len returns the number of stored users.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.users)
}

// Snapshot returns a copy of every stored user in insertion order.
func (d *Directory) Snapshot() []models.StoredUser {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]models.StoredUser, len(d.users))
	copy(out, d.users)
	return out
}

package state

import "errors"

var (
	// ErrNotFound is returned when no user matches an id or credentials.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidSession is returned when a session id is not live.
	ErrInvalidSession = errors.New("invalid session")
)

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEmptySessionID is returned when a session is built without an id.
var ErrEmptySessionID = &ValidationError{Field: FieldSessionID, Message: "Session id must not be empty"}

// LoginInfo is an email and password pair used to look up a user.
type LoginInfo struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewLoginInfo builds a LoginInfo from a valid email and password.
func NewLoginInfo(email, password string) (LoginInfo, error) {
	if err := checkEmail(email); err != nil {
		return LoginInfo{}, err
	}
	if err := checkPassword(password); err != nil {
		return LoginInfo{}, err
	}
	return LoginInfo{Email: email, Password: password}, nil
}

// DecodeLoginInfo reads a JSON encoded LoginInfo from r and validates it.
func DecodeLoginInfo(r io.Reader) (LoginInfo, error) {
	var raw LoginInfo
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return LoginInfo{}, err
	}
	return NewLoginInfo(raw.Email, raw.Password)
}

// Session binds a session id to a user.
type Session struct {
	ID     string
	UserID UserID
}

// NewSession builds a Session, rejecting an empty id.
func NewSession(id string, userID UserID) (Session, error) {
	if id == "" {
		return Session{}, ErrEmptySessionID
	}
	return Session{ID: id, UserID: userID}, nil
}

func (s Session) String() string {
	return fmt.Sprintf("Session id %s user id %d", s.ID, s.UserID)
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Package models defines the user directory and session data types
// together with the field rules they enforce.
package models

import (
	"encoding/json"
	"fmt"
	"io"
)

// UserID identifies a stored user. It equals the directory size at insertion.
type UserID int

// User is a registered account. Fields are unexported so a User can only
// be built through NewUser, JSON decoding or the validating setters.
type User struct {
	firstName string
	lastName  string
	email     string
	password  string
}

// userJSON is the wire shape of a User.
type userJSON struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// NewUser builds a User and validates every field.
func NewUser(firstName, lastName, email, password string) (User, error) {
	u := User{
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		password:  password,
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// DecodeUser reads a JSON encoded User from r.
// Shape violations are reported as *ValidationError.
func DecodeUser(r io.Reader) (User, error) {
	var u User
	if err := json.NewDecoder(r).Decode(&u); err != nil {
		return User{}, err
	}
	return u, nil
}

// UnmarshalJSON decodes and validates a User.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw userJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := NewUser(raw.FirstName, raw.LastName, raw.Email, raw.Password)
	if err != nil {
		return err
	}
	*u = decoded
	return nil
}

// MarshalJSON encodes u in the registration and update request shape.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userJSON{
		FirstName: u.firstName,
		LastName:  u.lastName,
		Email:     u.email,
		Password:  u.password,
	})
}

// Validate checks the fields in order and returns the first violation.
func (u User) Validate() error {
	if err := checkFirstName(u.firstName); err != nil {
		return err
	}
	if err := checkLastName(u.lastName); err != nil {
		return err
	}
	if err := checkEmail(u.email); err != nil {
		return err
	}
	return checkPassword(u.password)
}

// FirstName returns the first name.
func (u User) FirstName() string { return u.firstName }

// LastName returns the last name.
func (u User) LastName() string { return u.lastName }

// Email returns the email address.
func (u User) Email() string { return u.email }

// Password returns the stored password.
func (u User) Password() string { return u.password }

// SetFirstName replaces the first name if v is a valid name.
func (u *User) SetFirstName(v string) error {
	if err := checkFirstName(v); err != nil {
		return err
	}
	u.firstName = v
	return nil
}

// SetLastName replaces the last name if v is a valid name.
func (u *User) SetLastName(v string) error {
	if err := checkLastName(v); err != nil {
		return err
	}
	u.lastName = v
	return nil
}

// SetEmail replaces the email if v is a valid email.
func (u *User) SetEmail(v string) error {
	if err := checkEmail(v); err != nil {
		return err
	}
	u.email = v
	return nil
}

// SetPassword replaces the password if v is long enough.
func (u *User) SetPassword(v string) error {
	if err := checkPassword(v); err != nil {
		return err
	}
	u.password = v
	return nil
}

// MatchCredentials reports an exact, byte-for-byte email and password match.
func (u User) MatchCredentials(login LoginInfo) bool {
	return u.email == login.Email && u.password == login.Password
}

// Profile projects the user without its password.
func (u User) Profile() UserProfile {
	return UserProfile{
		FirstName: u.firstName,
		LastName:  u.lastName,
		Email:     u.email,
	}
}

// String omits the password so users can be logged.
func (u User) String() string {
	return fmt.Sprintf("User %s %s email %s", u.firstName, u.lastName, u.email)
}

// StoredUser is a User with the identifier assigned by the directory.
type StoredUser struct {
	ID   UserID
	User User
}

// NewStoredUser attaches id to a validated copy of u.
func NewStoredUser(id UserID, u User) (StoredUser, error) {
	if err := u.Validate(); err != nil {
		return StoredUser{}, err
	}
	return StoredUser{ID: id, User: u}, nil
}

// Profile projects the stored user without its password.
func (s StoredUser) Profile() UserProfile {
	return s.User.Profile()
}

func (s StoredUser) String() string {
	return fmt.Sprintf("Id: %d %s", s.ID, s.User)
}

// UserProfile is the password-free view of a user returned to clients.
type UserProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// NewUserProfile builds a profile, applying the name and email rules.
func NewUserProfile(firstName, lastName, email string) (UserProfile, error) {
	if err := checkFirstName(firstName); err != nil {
		return UserProfile{}, err
	}
	if err := checkLastName(lastName); err != nil {
		return UserProfile{}, err
	}
	if err := checkEmail(email); err != nil {
		return UserProfile{}, err
	}
	return UserProfile{FirstName: firstName, LastName: lastName, Email: email}, nil
}

// Package service provides the registration, login and profile business
// logic, delegating state to the in-memory manager and optionally
// mirroring user writes to a repository.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/atinyakov/userportal/internal/models"
)

// StateManager defines the in-memory state operations required by the service.
type StateManager interface {
	AddUser(u models.User) (models.UserID, error)
	UpdateUser(u models.User, id models.UserID) error
	FindUser(login models.LoginInfo) (models.UserID, error)
	AddSession(userID models.UserID) models.Session
	IsSessionValid(sessionID string) bool
	UserIDFromSession(sessionID string) (models.UserID, error)
	DeleteSession(sessionID string)
	ProfileFromSession(sessionID string) (models.UserProfile, error)
	Users() []models.StoredUser
	Sessions() []models.Session
}

// UserMirror defines the persistence operations used to mirror user writes.
// Mirror failures never fail the calling operation.
type UserMirror interface {
	// InsertUser stores a newly registered user.
	InsertUser(ctx context.Context, u models.StoredUser) error
	// UpdateUser overwrites an existing user.
	UpdateUser(ctx context.Context, u models.StoredUser) error
}

// Service implements the account operations consumed by HTTP handlers.
type Service struct {
	// state is the source of truth for users and sessions.
	state StateManager
	// mirror is optional.
	mirror UserMirror
	log    *zap.Logger
}

// NewAuthService constructs a new Service. mirror may be nil.
func NewAuthService(state StateManager, mirror UserMirror, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{state: state, mirror: mirror, log: log}
}

// Register adds u to the directory and mirrors it.
func (s *Service) Register(ctx context.Context, u models.User) (models.UserID, error) {
	id, err := s.state.AddUser(u)
	if err != nil {
		return 0, err
	}

	if s.mirror != nil {
		if err := s.mirror.InsertUser(ctx, models.StoredUser{ID: id, User: u}); err != nil {
			s.log.Warn("failed to mirror new user", zap.Int("user_id", int(id)), zap.Error(err))
		}
	}

	s.log.Info("user registered", zap.Int("user_id", int(id)))
	s.dumpUsers()
	return id, nil
}

// Login opens a session for the user matching login.
func (s *Service) Login(_ context.Context, login models.LoginInfo) (models.Session, error) {
	id, err := s.state.FindUser(login)
	if err != nil {
		return models.Session{}, err
	}

	session := s.state.AddSession(id)
	s.log.Info("user logged in", zap.Int("user_id", int(id)), zap.String("session_id", session.ID))
	s.dumpSessions()
	return session, nil
}

// Logout closes sessionID. Unknown sessions are ignored.
func (s *Service) Logout(_ context.Context, sessionID string) {
	s.state.DeleteSession(sessionID)
	s.log.Info("session closed", zap.String("session_id", sessionID))
	s.dumpSessions()
}

// SessionValid reports whether sessionID is live.
func (s *Service) SessionValid(_ context.Context, sessionID string) bool {
	return s.state.IsSessionValid(sessionID)
}

// Profile returns the profile of the user behind sessionID.
func (s *Service) Profile(_ context.Context, sessionID string) (models.UserProfile, error) {
	return s.state.ProfileFromSession(sessionID)
}

// UpdateProfile replaces every field of the user behind sessionID with u
// and mirrors the change.
func (s *Service) UpdateProfile(ctx context.Context, sessionID string, u models.User) error {
	id, err := s.state.UserIDFromSession(sessionID)
	if err != nil {
		return err
	}
	if err := s.state.UpdateUser(u, id); err != nil {
		return err
	}

	if s.mirror != nil {
		if err := s.mirror.UpdateUser(ctx, models.StoredUser{ID: id, User: u}); err != nil {
			s.log.Warn("failed to mirror user update", zap.Int("user_id", int(id)), zap.Error(err))
		}
	}

	s.log.Info("user updated", zap.Int("user_id", int(id)))
	s.dumpUsers()
	return nil
}

func (s *Service) dumpUsers() {
	if ce := s.log.Check(zap.DebugLevel, "users"); ce != nil {
		ce.Write(zap.Stringers("users", s.state.Users()))
	}
}

func (s *Service) dumpSessions() {
	if ce := s.log.Check(zap.DebugLevel, "sessions"); ce != nil {
		ce.Write(zap.Stringers("sessions", s.state.Sessions()))
	}
}

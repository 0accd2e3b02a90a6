package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atinyakov/userportal/internal/models"
	"github.com/atinyakov/userportal/internal/state"
)

type mockMirror struct {
	InsertUserFunc func(ctx context.Context, u models.StoredUser) error
	UpdateUserFunc func(ctx context.Context, u models.StoredUser) error
}

func (m *mockMirror) InsertUser(ctx context.Context, u models.StoredUser) error {
	return m.InsertUserFunc(ctx, u)
}

func (m *mockMirror) UpdateUser(ctx context.Context, u models.StoredUser) error {
	return m.UpdateUserFunc(ctx, u)
}

func john(t *testing.T) models.User {
	t.Helper()
	u, err := models.NewUser("John", "Doe", "john@doe.com", "johnDoe123")
	require.NoError(t, err)
	return u
}

func TestRegister_MirrorsUser(t *testing.T) {
	var mirrored models.StoredUser
	mirror := &mockMirror{
		InsertUserFunc: func(ctx context.Context, u models.StoredUser) error {
			mirrored = u
			return nil
		},
	}
	svc := NewAuthService(state.NewManager(), mirror, zap.NewNop())

	id, err := svc.Register(context.Background(), john(t))
	require.NoError(t, err)
	assert.Equal(t, models.UserID(0), id)
	assert.Equal(t, models.UserID(0), mirrored.ID)
	assert.Equal(t, "john@doe.com", mirrored.User.Email())
}

func TestRegister_MirrorFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mirror := &mockMirror{
		InsertUserFunc: func(ctx context.Context, u models.StoredUser) error {
			return errors.New("db down")
		},
	}
	m := state.NewManager()
	svc := NewAuthService(m, mirror, zap.New(core))

	_, err := svc.Register(context.Background(), john(t))
	require.NoError(t, err, "mirror failure must not fail registration")
	assert.Len(t, m.Users(), 1)
	assert.Equal(t, 1, logs.FilterMessage("failed to mirror new user").Len())
}

func TestRegister_InvalidUser(t *testing.T) {
	svc := NewAuthService(state.NewManager(), nil, nil)

	_, err := svc.Register(context.Background(), models.User{})
	assert.True(t, models.IsValidationError(err))
}

func TestLoginProfileLogout(t *testing.T) {
	svc := NewAuthService(state.NewManager(), nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, john(t))
	require.NoError(t, err)

	session, err := svc.Login(ctx, models.LoginInfo{Email: "john@doe.com", Password: "johnDoe123"})
	require.NoError(t, err)
	assert.Equal(t, "0", session.ID)
	assert.True(t, svc.SessionValid(ctx, "0"))

	profile, err := svc.Profile(ctx, "0")
	require.NoError(t, err)
	assert.Equal(t, models.UserProfile{FirstName: "John", LastName: "Doe", Email: "john@doe.com"}, profile)

	svc.Logout(ctx, "0")
	assert.False(t, svc.SessionValid(ctx, "0"))
	_, err = svc.Profile(ctx, "0")
	assert.ErrorIs(t, err, state.ErrInvalidSession)

	svc.Logout(ctx, "0")
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := NewAuthService(state.NewManager(), nil, nil)
	ctx := context.Background()
	_, err := svc.Register(ctx, john(t))
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginInfo{Email: "john@doe.com", Password: "wrongpass1"})
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	var updated models.StoredUser
	mirror := &mockMirror{
		InsertUserFunc: func(ctx context.Context, u models.StoredUser) error { return nil },
		UpdateUserFunc: func(ctx context.Context, u models.StoredUser) error {
			updated = u
			return nil
		},
	}
	svc := NewAuthService(state.NewManager(), mirror, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, john(t))
	require.NoError(t, err)
	session, err := svc.Login(ctx, models.LoginInfo{Email: "john@doe.com", Password: "johnDoe123"})
	require.NoError(t, err)

	jane, err := models.NewUser("Jane", "Roe", "jane@roe.org", "janeRoe456")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateProfile(ctx, session.ID, jane))

	profile, err := svc.Profile(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", profile.FirstName)
	assert.Equal(t, "jane@roe.org", updated.User.Email())

	err = svc.UpdateProfile(ctx, "99", jane)
	assert.ErrorIs(t, err, state.ErrInvalidSession)

	err = svc.UpdateProfile(ctx, session.ID, models.User{})
	assert.True(t, models.IsValidationError(err))
}

func TestDebugDumpOmitsPasswords(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewAuthService(state.NewManager(), nil, zap.New(core))

	_, err := svc.Register(context.Background(), john(t))
	require.NoError(t, err)

	dumps := logs.FilterMessage("users").All()
	require.Len(t, dumps, 1)
	users, ok := dumps[0].ContextMap()["users"].([]interface{})
	require.True(t, ok)
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "johnDoe123")
	assert.Contains(t, users[0], "john@doe.com")
}

package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/atinyakov/userportal/internal/certgen"
	"github.com/atinyakov/userportal/internal/models"
	handler "github.com/atinyakov/userportal/internal/server/handler/http"
	"github.com/atinyakov/userportal/internal/service"
	"github.com/atinyakov/userportal/internal/state"
)

// newPortal starts a real portal backed by a fresh in-memory state.
func newPortal(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.NewAuthService(state.NewManager(), nil, zap.NewNop())
	router := handler.NewRouter(
		&handler.AuthHandler{AuthService: svc},
		&handler.ProfileHandler{ProfileService: svc},
		&handler.PageHandler{Dir: t.TempDir()},
		svc,
		zap.NewNop(),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	httpClient, err := NewHTTPClient("")
	if err != nil {
		t.Fatal(err)
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    httpClient,
		Storage: &LocalStorage{Path: filepath.Join(t.TempDir(), "session.json")},
	}
}

func TestClient_Journey(t *testing.T) {
	srv := newPortal(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	john, _ := models.NewUser("John", "Doe", "john@doe.com", "johnDoe123")
	msg, err := c.Register(ctx, john)
	if err != nil || msg != "Successfully registered" {
		t.Fatalf("Register = %q, %v", msg, err)
	}

	if _, err := c.Profile(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Profile before login: %v", err)
	}

	msg, err = c.Login(ctx, models.LoginInfo{Email: "john@doe.com", Password: "johnDoe123"})
	if err != nil || msg != "Successfully logged in" {
		t.Fatalf("Login = %q, %v", msg, err)
	}
	if c.Storage.SessionID() != "0" {
		t.Errorf("session id = %q; want 0", c.Storage.SessionID())
	}

	msg, err = c.Login(ctx, models.LoginInfo{Email: "john@doe.com", Password: "johnDoe123"})
	if err != nil || msg != "Already logged in" {
		t.Errorf("second Login = %q, %v", msg, err)
	}

	p, err := c.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Email != "john@doe.com" {
		t.Errorf("profile = %+v", p)
	}

	jane, _ := models.NewUser("Jane", "Roe", "jane@roe.org", "janeRoe456")
	msg, err = c.UpdateProfile(ctx, jane)
	if err != nil || msg != "Successfully updated user" {
		t.Fatalf("UpdateProfile = %q, %v", msg, err)
	}
	if p, _ = c.Profile(ctx); p.FirstName != "Jane" {
		t.Errorf("profile after update = %+v", p)
	}

	msg, err = c.Logout(ctx)
	if err != nil || msg != "Successfully logged out" {
		t.Fatalf("Logout = %q, %v", msg, err)
	}
	if c.Storage.SessionID() != "" {
		t.Errorf("session kept after logout")
	}
	if _, err := c.Logout(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("second Logout: %v", err)
	}
}

func TestClient_LoginReplacesStaleSession(t *testing.T) {
	srv := newPortal(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	john, _ := models.NewUser("John", "Doe", "john@doe.com", "johnDoe123")
	if _, err := c.Register(ctx, john); err != nil {
		t.Fatal(err)
	}
	if err := c.Storage.SetSessionID("42", srv.URL); err != nil {
		t.Fatal(err)
	}

	msg, err := c.Login(ctx, models.LoginInfo{Email: "john@doe.com", Password: "johnDoe123"})
	if err != nil || msg != "Successfully logged in" {
		t.Fatalf("Login = %q, %v", msg, err)
	}
	if c.Storage.SessionID() != "0" {
		t.Errorf("session id = %q; want 0", c.Storage.SessionID())
	}
}

func TestClient_StaleSessionOnProfile(t *testing.T) {
	srv := newPortal(t)
	c := newClient(t, srv.URL)
	if err := c.Storage.SetSessionID("7", srv.URL); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Profile(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
	if c.Storage.SessionID() != "" {
		t.Errorf("stale session kept")
	}
}

func TestClient_ServerErrors(t *testing.T) {
	srv := newPortal(t)
	c := newClient(t, srv.URL)

	_, err := c.Login(context.Background(), models.LoginInfo{Email: "ghost@doe.com", Password: "johnDoe123"})
	if err == nil || !strings.Contains(err.Error(), "user not found") {
		t.Errorf("expected user not found, got %v", err)
	}
	if c.Storage.SessionID() != "" {
		t.Errorf("session stored after failed login")
	}
}

func TestClient_ProfileRejectsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"first_name":"John","last_name":"Doe","email":"not-an-email"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	if err := c.Storage.SetSessionID("0", srv.URL); err != nil {
		t.Fatal(err)
	}

	_, err := c.Profile(context.Background())
	if !models.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Email") {
		t.Errorf("error %q does not name the email field", err)
	}
}

func TestNewHTTPClient_CA(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewHTTPClient(filepath.Join(dir, "missing.crt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.crt")
	if err := os.WriteFile(bad, []byte("invalid pem"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewHTTPClient(bad); err == nil || !strings.Contains(err.Error(), "failed to parse CA cert") {
		t.Errorf("expected parse CA error, got %v", err)
	}

	if err := certgen.WriteDevCertificates(dir, []string{"localhost"}); err != nil {
		t.Fatal(err)
	}
	client, err := NewHTTPClient(filepath.Join(dir, certgen.CACertFile))
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	if client.Transport == nil {
		t.Error("expected custom TLS transport")
	}
}

func TestNewHTTPClient_NoRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer srv.Close()

	client, err := NewHTTPClient("")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Errorf("status = %d; want 302", resp.StatusCode)
	}
}

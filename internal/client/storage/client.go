package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/userportal/internal/cookie"
	"github.com/atinyakov/userportal/internal/models"
)

// API paths served by the portal.
const (
	apiRegister = "/register"
	apiLogin    = "/login"
	apiLogout   = "/logout"
	apiProfile  = "/profile"
	apiUserData = "/profile/user"
)

// ErrNotLoggedIn is returned by calls that need a session when none is stored
// or the server rejected the stored one.
var ErrNotLoggedIn = errors.New("not logged in")

// NewHTTPClient returns a client that does not follow redirects, so the
// portal's 302 answers reach the caller. When caPath is set, the server
// certificate must chain to that CA.
func NewHTTPClient(caPath string) (*http.Client, error) {
	client := &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	if caPath == "" {
		return client, nil
	}

	caCert, err := os.ReadFile(caPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}
	client.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{RootCAs: caPool, MinVersion: tls.VersionTLS12},
	}
	return client, nil
}

// Client calls the portal API and keeps the session cookie in Storage.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Storage *LocalStorage
}

// Register creates an account and returns the server's message.
func (c *Client) Register(ctx context.Context, u models.User) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, apiRegister, u, false)
	if err != nil {
		return "", err
	}
	return redirectMessage(resp)
}

// Login opens a session and stores its id. A stored session is offered
// first; if the server rejects it the login is retried without it.
func (c *Client) Login(ctx context.Context, info models.LoginInfo) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, apiLogin, info, true)
	if err != nil {
		return "", err
	}
	if expired(resp) && c.Storage.SessionID() != "" {
		_ = resp.Body.Close()
		if err := c.Storage.Clear(); err != nil {
			return "", err
		}
		if resp, err = c.do(ctx, http.MethodPost, apiLogin, info, true); err != nil {
			return "", err
		}
	}

	id := sessionCookie(resp)
	msg, err := redirectMessage(resp)
	if err != nil {
		return "", err
	}
	if id != "" {
		if err := c.Storage.SetSessionID(id, c.BaseURL); err != nil {
			return "", fmt.Errorf("save session: %w", err)
		}
	}
	return msg, nil
}

// Profile fetches the logged-in user's profile.
func (c *Client) Profile(ctx context.Context) (models.UserProfile, error) {
	if c.Storage.SessionID() == "" {
		return models.UserProfile{}, ErrNotLoggedIn
	}
	resp, err := c.do(ctx, http.MethodGet, apiUserData, nil, true)
	if err != nil {
		return models.UserProfile{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var raw models.UserProfile
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return models.UserProfile{}, fmt.Errorf("failed to decode response: %w", err)
		}
		p, err := models.NewUserProfile(raw.FirstName, raw.LastName, raw.Email)
		if err != nil {
			return models.UserProfile{}, fmt.Errorf("invalid profile in response: %w", err)
		}
		return p, nil
	case http.StatusFound:
		_ = c.Storage.Clear()
		return models.UserProfile{}, ErrNotLoggedIn
	default:
		return models.UserProfile{}, serverError(resp)
	}
}

// UpdateProfile replaces the logged-in user's fields.
func (c *Client) UpdateProfile(ctx context.Context, u models.User) (string, error) {
	if c.Storage.SessionID() == "" {
		return "", ErrNotLoggedIn
	}
	resp, err := c.do(ctx, http.MethodPut, apiProfile, u, true)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusFound && resp.Header.Get("Location") == apiLogin {
		_ = resp.Body.Close()
		_ = c.Storage.Clear()
		return "", ErrNotLoggedIn
	}
	return redirectMessage(resp)
}

// Logout closes the session on the server and forgets it locally.
func (c *Client) Logout(ctx context.Context) (string, error) {
	if c.Storage.SessionID() == "" {
		return "", ErrNotLoggedIn
	}
	resp, err := c.do(ctx, http.MethodDelete, apiLogout, nil, true)
	if err != nil {
		return "", err
	}
	msg, err := redirectMessage(resp)
	if clearErr := c.Storage.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return msg, err
}

func (c *Client) do(ctx context.Context, method, path string, body any, withSession bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withSession {
		if id := c.Storage.SessionID(); id != "" {
			req.AddCookie(&http.Cookie{Name: cookie.Name, Value: id})
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	return resp, nil
}

// redirectMessage closes resp and returns its body when it is a 302.
func redirectMessage(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		return "", serverError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(data), nil
}

func serverError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("server error (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
}

// sessionCookie returns the session id the server set, if any.
func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == cookie.Name && c.MaxAge >= 0 {
			return c.Value
		}
	}
	return ""
}

// expired reports whether the server expired the session cookie.
func expired(resp *http.Response) bool {
	for _, c := range resp.Cookies() {
		if c.Name == cookie.Name && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

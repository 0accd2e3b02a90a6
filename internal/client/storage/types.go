package storage

// Session is the client-side record of a login, persisted between runs.
type Session struct {
	ID      string `json:"session_id"`
	BaseURL string `json:"base_url,omitempty"`
}

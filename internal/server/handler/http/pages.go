package http

import (
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Page files served from PageHandler.Dir.
const (
	PageHome     = "home.html"
	PageLogin    = "login.html"
	PageRegister = "register.html"
	PageProfile  = "profile.html"
	PageCSS      = "loginPageStyle.css"
)

// fallbackPage is served when a page file cannot be read.
const fallbackPage = "<html><body>base</body></html>"

// PageHandler serves the static HTML pages and stylesheet.
type PageHandler struct {
	// Dir is the directory holding the page files.
	Dir string
	Log *zap.Logger
}

// Page returns a handler writing the named page, or a placeholder page
// if it cannot be read.
func (h *PageHandler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := os.ReadFile(filepath.Join(h.Dir, name))
		if err != nil {
			h.logger().Warn("failed to read page", zap.String("page", name), zap.Error(err))
			content = []byte(fallbackPage)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(content)
	}
}

// Stylesheet serves the login page stylesheet.
func (h *PageHandler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	content, err := os.ReadFile(filepath.Join(h.Dir, PageCSS))
	if err != nil {
		h.logger().Warn("failed to read stylesheet", zap.Error(err))
		badRequest(w, "Failed to load css")
		return
	}
	w.Header().Set("Content-Type", "text/css")
	_, _ = w.Write(content)
}

// Root redirects to the login page.
func (h *PageHandler) Root(w http.ResponseWriter, r *http.Request) {
	redirect(w, PathLogin, "")
}

// Health reports liveness.
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *PageHandler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

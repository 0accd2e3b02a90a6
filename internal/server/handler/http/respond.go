package http

import (
	"net/http"

	"github.com/atinyakov/userportal/internal/models"
)

// Paths that handlers redirect to.
const (
	PathRoot     = "/"
	PathHome     = "/home"
	PathLogin    = "/login"
	PathRegister = "/register"
	PathProfile  = "/profile"
	PathUserData = "/profile/user"
	PathLogout   = "/logout"
	PathCSS      = "/loginPageStyle.css"
	PathHealth   = "/healthz"
)

// msgInvalidBody is returned when a request body is not the expected JSON.
const msgInvalidBody = "invalid request body"

// redirect answers with 302 to location and a short plain-text body.
func redirect(w http.ResponseWriter, location, body string) {
	w.Header().Set("Location", location)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusFound)
	_, _ = w.Write([]byte(body))
}

// badRequest answers with 400 and msg as plain text.
func badRequest(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusBadRequest)
}

// decodeError maps a body decoding failure to a client message.
// Field rule violations keep their own message.
func decodeError(err error) string {
	if models.IsValidationError(err) {
		return err.Error()
	}
	return msgInvalidBody
}

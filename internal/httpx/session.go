package httpx

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const sessionCookie = "vs_session"

// sessionID identifies the shopper: the X-Session-Id header wins, then the
// session cookie; a first-time visitor gets a fresh one set on the response.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get("X-Session-Id"); id != "" {
		return id
	}
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HttpOnly: true,
	})
	return id
}

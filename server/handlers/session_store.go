package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// SessionStore hands out the dashboard session id kept in a signed cookie.
type SessionStore struct {
	store      sessions.Store
	cookieName string
	idKey      string
}

// NewSessionStore creates a cookie-backed store. maxAge is in seconds.
func NewSessionStore(secret, cookieName, idKey string, maxAge int, secure bool) *SessionStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store, cookieName: cookieName, idKey: idKey}
}

// ID returns the session id of r, issuing a new one when the request has
// none. It must run before the response body is written.
func (s *SessionStore) ID(w http.ResponseWriter, r *http.Request) (string, error) {
	// A cookie that fails verification yields a fresh session and an error;
	// the fresh session is used.
	session, _ := s.store.Get(r, s.cookieName)
	if id, ok := session.Values[s.idKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	session.Values[s.idKey] = id
	if err := session.Save(r, w); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return id, nil
}

// Lookup returns the session id of r without issuing one.
func (s *SessionStore) Lookup(r *http.Request) (string, bool) {
	session, err := s.store.Get(r, s.cookieName)
	if err != nil {
		return "", false
	}
	id, ok := session.Values[s.idKey].(string)
	return id, ok && id != ""
}

// Forget expires the session cookie.
func (s *SessionStore) Forget(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, s.cookieName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/todod/internal/model"
)

// SessionKey names the persisted session marker.
const SessionKey = "userSession"

var ErrUnauthenticated = errors.New("auth: not signed in")

type SessionState int

const (
	SessionInit SessionState = iota
	SessionPopulated
	SessionCleared
)

func (s SessionState) String() string {
	switch s {
	case SessionPopulated:
		return "populated"
	case SessionCleared:
		return "cleared"
	default:
		return "init"
	}
}

type sessionMarker struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	Remember  bool      `json:"remember"`
}

// SessionStore persists the marker as <dir>/userSession.json.
type SessionStore struct {
	path string
}

func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{path: filepath.Join(dir, SessionKey+".json")}
}

func (s *SessionStore) Path() string {
	return s.path
}

func (s *SessionStore) save(m sessionMarker) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// load returns ok=false when no marker exists.
func (s *SessionStore) load() (sessionMarker, bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sessionMarker{}, false, nil
		}
		return sessionMarker{}, false, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return sessionMarker{}, false, nil
	}
	var m sessionMarker
	if err := json.Unmarshal(raw, &m); err != nil {
		return sessionMarker{}, false, fmt.Errorf("auth: decode session marker: %w", err)
	}
	return m, m.Token != "", nil
}

func (s *SessionStore) clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Session is the signed-in context handed to the views. It starts in init,
// becomes populated on login or registration and is cleared on logout.
type Session struct {
	mu     sync.RWMutex
	state  SessionState
	marker sessionMarker
	store  *SessionStore

	now func() time.Time
}

// NewSession returns an init session. A nil store keeps the session in memory.
func NewSession(store *SessionStore) *Session {
	return &Session{store: store, now: time.Now}
}

// Restore populates the session from a persisted, unexpired marker.
func (s *Session) Restore() error {
	if s.store == nil {
		return nil
	}
	m, ok, err := s.store.load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok || !m.ExpiresAt.After(s.now()) {
		return nil
	}
	s.marker = m
	s.state = SessionPopulated
	return nil
}

func (s *Session) Populate(g Grant, remember bool) error {
	m := sessionMarker{
		Token:     g.Token,
		UserID:    g.User.ID,
		Email:     g.User.Email,
		FirstName: g.User.FirstName,
		LastName:  g.User.LastName,
		ExpiresAt: g.ExpiresAt,
		Remember:  remember,
	}
	if s.store != nil {
		if err := s.store.save(m); err != nil {
			return fmt.Errorf("auth: save session: %w", err)
		}
	}
	s.mu.Lock()
	s.marker = m
	s.state = SessionPopulated
	s.mu.Unlock()
	return nil
}

// Clear signs out and removes the persisted marker.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.marker = sessionMarker{}
	s.state = SessionCleared
	s.mu.Unlock()
	if s.store != nil {
		if err := s.store.clear(); err != nil {
			return fmt.Errorf("auth: clear session: %w", err)
		}
	}
	return nil
}

// End is called on exit. Sessions opened without "remember me" do not
// outlive the process.
func (s *Session) End() error {
	s.mu.RLock()
	keep := s.state != SessionPopulated || s.marker.Remember
	s.mu.RUnlock()
	if keep {
		return nil
	}
	return s.Clear()
}

// IsAuthenticated reports a populated, unexpired session whose persisted
// marker still exists. A logout from another process signs this one out.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	state, m := s.state, s.marker
	s.mu.RUnlock()
	if state != SessionPopulated || m.Token == "" {
		return false
	}
	if !m.ExpiresAt.IsZero() && !m.ExpiresAt.After(s.now()) {
		return false
	}
	if s.store == nil {
		return true
	}
	stored, ok, err := s.store.load()
	return err == nil && ok && stored.Token == m.Token
}

// Require returns ErrUnauthenticated unless IsAuthenticated.
func (s *Session) Require() error {
	if !s.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.marker.Token
}

func (s *Session) User() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.User{
		ID:        s.marker.UserID,
		Email:     s.marker.Email,
		FirstName: s.marker.FirstName,
		LastName:  s.marker.LastName,
	}
}

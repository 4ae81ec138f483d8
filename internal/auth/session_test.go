package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/todod/internal/model"
)

func testGrant(expires time.Time) Grant {
	return Grant{
		Token:     "token-1",
		ExpiresAt: expires,
		User:      model.User{ID: "user-1", Email: "a@example.com", FirstName: "Ada"},
	}
}

func TestSessionLifecycle(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)
	if filepath.Base(store.Path()) != "userSession.json" {
		t.Fatalf("unexpected marker path %q", store.Path())
	}

	s := NewSession(store)
	if s.State() != SessionInit || s.IsAuthenticated() {
		t.Fatal("new session must be init and unauthenticated")
	}
	if err := s.Require(); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	if err := s.Populate(testGrant(time.Now().Add(time.Hour)), true); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if s.State() != SessionPopulated || !s.IsAuthenticated() {
		t.Fatal("expected populated authenticated session")
	}
	if s.User().ID != "user-1" || s.Token() != "token-1" {
		t.Fatalf("unexpected session identity %#v", s.User())
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("expected marker on disk: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.State() != SessionCleared || s.IsAuthenticated() {
		t.Fatal("expected cleared unauthenticated session")
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected marker removed, got %v", err)
	}
}

func TestSessionRestore(t *testing.T) {
	dir := t.TempDir()
	first := NewSession(NewSessionStore(dir))
	if err := first.Populate(testGrant(time.Now().Add(time.Hour)), true); err != nil {
		t.Fatalf("populate: %v", err)
	}

	second := NewSession(NewSessionStore(dir))
	if err := second.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !second.IsAuthenticated() || second.User().FirstName != "Ada" {
		t.Fatalf("expected restored session, state=%s", second.State())
	}

	// Logging out in one process signs the other out on its next check.
	if err := first.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if second.IsAuthenticated() {
		t.Fatal("expected removed marker to end the restored session")
	}
}

func TestSessionRestoreIgnoresExpiredMarker(t *testing.T) {
	dir := t.TempDir()
	first := NewSession(NewSessionStore(dir))
	if err := first.Populate(testGrant(time.Now().Add(-time.Minute)), true); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if first.IsAuthenticated() {
		t.Fatal("expired session must not authenticate")
	}
	second := NewSession(NewSessionStore(dir))
	if err := second.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if second.State() != SessionInit {
		t.Fatalf("expected init state, got %s", second.State())
	}
}

func TestSessionEndHonoursRemember(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)
	s := NewSession(store)
	if err := s.Populate(testGrant(time.Now().Add(time.Hour)), false); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if err := s.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected marker removed for non-remembered session, got %v", err)
	}

	kept := NewSession(store)
	if err := kept.Populate(testGrant(time.Now().Add(time.Hour)), true); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if err := kept.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("expected remembered marker kept, got %v", err)
	}
}

func TestInMemorySession(t *testing.T) {
	s := NewSession(nil)
	if err := s.Populate(testGrant(time.Now().Add(time.Hour)), false); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatal("expected in-memory session authenticated")
	}
}

package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sandeepkv93/todod/internal/storage"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return NewService(repo, NewTokens([]byte("test-secret"), time.Hour))
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		FirstName:       "Grace",
		LastName:        "Hopper",
		Email:           "Grace@Example.com",
		Password:        "cobol-forever",
		ConfirmPassword: "cobol-forever",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	grant, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if grant.Token == "" || grant.User.Email != "grace@example.com" || grant.User.PasswordHash != "" {
		t.Fatalf("unexpected grant %#v", grant)
	}

	login, err := svc.Login(ctx, LoginRequest{Email: "grace@example.com", Password: "cobol-forever"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != grant.User.ID {
		t.Fatalf("expected same user, got %q and %q", login.User.ID, grant.User.ID)
	}

	user, err := svc.Authenticate(ctx, login.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.DisplayName() != "Grace Hopper" {
		t.Fatalf("unexpected user %#v", user)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mismatch := validRegistration()
	mismatch.ConfirmPassword = "different-pass"
	if _, err := svc.Register(ctx, mismatch); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	noName := validRegistration()
	noName.LastName = ""
	if _, err := svc.Register(ctx, noName); !errors.Is(err, ErrInvalidRegistration) {
		t.Fatalf("expected ErrInvalidRegistration, got %v", err)
	}

	badEmail := validRegistration()
	badEmail.Email = "not-an-email"
	if _, err := svc.Register(ctx, badEmail); !errors.Is(err, ErrInvalidRegistration) {
		t.Fatalf("expected ErrInvalidRegistration, got %v", err)
	}

	if _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, validRegistration()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("register: %v", err)
	}
	cases := []LoginRequest{
		{Email: "grace@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "cobol-forever"},
		{Email: "", Password: "cobol-forever"},
		{Email: "grace@example.com", Password: ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(ctx, tc); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login %+v: expected ErrInvalidCredentials, got %v", tc, err)
		}
	}
}

func TestTokensRejectTamperingAndExpiry(t *testing.T) {
	issuer := NewTokens([]byte("secret-a"), time.Hour)
	token, expiresAt, err := issuer.Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || !claims.ExpiresAt.Time.Equal(expiresAt.Truncate(time.Second)) {
		t.Fatalf("unexpected claims %#v", claims)
	}

	other := NewTokens([]byte("secret-b"), time.Hour)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong key, got %v", err)
	}

	later := NewTokens([]byte("secret-a"), time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := later.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := issuer.Parse(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg none, got %v", err)
	}
}

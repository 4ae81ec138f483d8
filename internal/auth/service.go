package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/storage"
)

var (
	ErrInvalidCredentials  = errors.New("auth: invalid email or password")
	ErrEmailTaken          = errors.New("auth: email already registered")
	ErrPasswordMismatch    = errors.New("auth: passwords do not match")
	ErrInvalidRegistration = errors.New("auth: invalid registration")
)

const minPasswordLength = 8

type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidRegistration)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		return fmt.Errorf("%w: email %q is invalid", ErrInvalidRegistration, r.Email)
	}
	if len(r.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRegistration, minPasswordLength)
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// Grant is the result of a successful login or registration.
type Grant struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

type Service struct {
	repo   storage.Repository
	tokens *Tokens

	Now   func() time.Time
	NewID func() string
}

func NewService(repo storage.Repository, tokens *Tokens) *Service {
	return &Service{repo: repo, tokens: tokens, Now: time.Now, NewID: uuid.NewString}
}

func (s *Service) Tokens() *Tokens {
	return s.tokens
}

// Register creates the account and signs the new user in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Grant, error) {
	if err := req.Validate(); err != nil {
		return Grant{}, err
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return Grant{}, err
	}
	user := model.User{
		ID:           s.NewID(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		CreatedAt:    s.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return Grant{}, err
	}
	err = s.repo.CreateUser(ctx, storage.User{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return Grant{}, fmt.Errorf("%w: %q", ErrEmailTaken, user.Email)
		}
		return Grant{}, fmt.Errorf("auth: create user: %w", err)
	}
	return s.grant(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (Grant, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return Grant{}, ErrInvalidCredentials
	}
	row, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			checkAgainstDummy(req.Password)
			return Grant{}, ErrInvalidCredentials
		}
		return Grant{}, fmt.Errorf("auth: lookup user: %w", err)
	}
	if !CheckPassword(row.PasswordHash, req.Password) {
		return Grant{}, ErrInvalidCredentials
	}
	return s.grant(model.User{
		ID:           row.ID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	})
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (model.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return model.User{}, err
	}
	row, err := s.repo.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.User{}, ErrInvalidToken
		}
		return model.User{}, fmt.Errorf("auth: lookup user: %w", err)
	}
	return model.User{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (s *Service) grant(user model.User) (Grant, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return Grant{}, err
	}
	user.PasswordHash = ""
	return Grant{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

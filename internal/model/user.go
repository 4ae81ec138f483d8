package model

import (
	"errors"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return errors.New("model: user id is required")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("model: user email is invalid")
	}
	if u.PasswordHash == "" {
		return errors.New("model: user password hash is required")
	}
	return nil
}

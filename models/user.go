package models

import "errors"

// Identity is the part of a session that is safe to persist next to the token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (i Identity) Validate() error {
	if i.UserID == "" {
		return errors.New("identity has no user_id")
	}
	return nil
}

// DemoIdentity is an onboarding account advertised by GET /auth/users.
type DemoIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User is an account known to the demo gateway.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}

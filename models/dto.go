package models

import "errors"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
}

func (r LoginResponse) Validate() error {
	if r.AccessToken == "" {
		return errors.New("login response has no access_token")
	}
	if r.UserID == "" {
		return errors.New("login response has no user_id")
	}
	return nil
}

func (r LoginResponse) Session() Session {
	return Session{
		UserID:      r.UserID,
		Email:       r.Email,
		DisplayName: r.Name,
		Token:       r.AccessToken,
	}
}

type DemoUsersResponse struct {
	DemoUsers []DemoIdentity `json:"demo_users"`
	Note      string         `json:"note,omitempty"`
}

func (r DemoUsersResponse) Validate() error {
	if r.DemoUsers == nil {
		return errors.New("response has no demo_users")
	}
	return nil
}

type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

type TokenVerification struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (v TokenVerification) Validate() error {
	if v.Valid && v.UserID == "" {
		return errors.New("verification has no user_id")
	}
	return nil
}

type AddToCartRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"omitempty,gt=0"`
}

// ErrorResponse is the gateway's error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

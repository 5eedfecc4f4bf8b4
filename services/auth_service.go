package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"storefront/config"
	"storefront/libs"
	"storefront/models"
	"storefront/utils"
)

// AuthState is where the client stands in the login flow.
type AuthState string

const (
	StateAnonymous      AuthState = "anonymous"
	StateAuthenticating AuthState = "authenticating"
	StateAuthenticated  AuthState = "authenticated"
)

type AuthService struct {
	client   *libs.HTTPClient
	sessions *SessionStore
	logger   *slog.Logger
	inFlight atomic.Int32
}

func NewAuthService(client *libs.HTTPClient, sessions *SessionStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = config.DiscardLogger()
	}
	return &AuthService{client: client, sessions: sessions, logger: logger}
}

// Login exchanges credentials for a session and saves it. On any failure
// nothing is persisted and the previous session, if any, is left alone, so a
// failed re-login drops State back to Authenticated rather than Anonymous.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, utils.NewValidationError("email and password are required")
	}

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	resp, err := libs.Do[models.LoginResponse](ctx, s.client, libs.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   models.LoginRequest{Email: email, Password: password},
	})
	if err != nil {
		s.logger.Info("login failed", "email", email, "error", err)
		return nil, err
	}

	session := resp.Session()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("logged in", "user_id", session.UserID)
	return &session, nil
}

// ListDemoIdentities returns the onboarding accounts. The session is not consulted.
func (s *AuthService) ListDemoIdentities(ctx context.Context) ([]models.DemoIdentity, error) {
	resp, err := libs.Do[models.DemoUsersResponse](ctx, s.client, libs.Request{Path: "/auth/users"})
	if err != nil {
		return nil, err
	}
	return resp.DemoUsers, nil
}

// Verify asks the gateway whether the current token is still accepted.
// A 401 means the token is dead and the session is cleared.
func (s *AuthService) Verify(ctx context.Context) (*models.TokenVerification, error) {
	token, ok := s.sessions.CurrentToken()
	if !ok {
		return nil, utils.NewValidationError("not logged in")
	}

	resp, err := libs.Do[models.TokenVerification](ctx, s.client, libs.Request{
		Method: http.MethodPost,
		Path:   "/auth/verify",
		Body:   models.VerifyRequest{Token: token},
	})
	if err != nil {
		if utils.StatusCode(err) == http.StatusUnauthorized {
			s.logger.Info("token rejected, clearing session")
			if clearErr := s.sessions.Clear(ctx); clearErr != nil {
				s.logger.Warn("rejected token could not be cleared", "error", clearErr)
				return nil, errors.Join(err, clearErr)
			}
		}
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// State is Authenticating while a Login is in flight, otherwise it follows
// the session store. It never reports Anonymous while a session is active.
func (s *AuthService) State(ctx context.Context) AuthState {
	if s.inFlight.Load() > 0 {
		return StateAuthenticating
	}
	if s.sessions.IsActive(ctx) {
		return StateAuthenticated
	}
	return StateAnonymous
}

package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	"storefront/models"
	"storefront/repositories"
	"storefront/utils"
)

// SessionStore is the single owner of "who is logged in". It keeps the
// current session in memory and mirrors token and identity to a
// SessionRepository as one unit.
type SessionStore struct {
	repo   repositories.SessionRepository
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current *models.Session
}

func NewSessionStore(repo repositories.SessionRepository, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = config.DiscardLogger()
	}
	return &SessionStore{repo: repo, logger: logger, now: time.Now}
}

// Restore rebuilds the session from the repository. A missing half, an
// identity that does not parse, or an expired token clears whatever was
// persisted and yields nil.
func (s *SessionStore) Restore(ctx context.Context) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, raw, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("session restore failed", "error", err)
		s.resetLocked(ctx)
		return nil
	}
	if token == "" || len(raw) == 0 {
		if token != "" || len(raw) > 0 {
			s.logger.Info("discarding incomplete session")
		}
		s.resetLocked(ctx)
		return nil
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil || identity.Validate() != nil {
		s.logger.Info("discarding unreadable session identity")
		s.resetLocked(ctx)
		return nil
	}
	if utils.TokenExpired(token, s.now()) {
		s.logger.Info("discarding expired session", "user_id", identity.UserID)
		s.resetLocked(ctx)
		return nil
	}

	session := models.NewSession(identity, token)
	s.current = &session
	s.logger.Debug("session restored", "user_id", identity.UserID)
	return s.copyLocked()
}

// Save persists session and makes it current. Readers never see the token
// without its identity.
func (s *SessionStore) Save(ctx context.Context, session models.Session) error {
	if !session.Active() {
		return utils.NewValidationError("cannot save a session without a token")
	}
	identity := session.Identity()
	if err := identity.Validate(); err != nil {
		return utils.NewValidationError("cannot save a session without a user id")
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return utils.NewValidationError("session identity cannot be encoded")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, session.Token, raw); err != nil {
		s.logger.Error("session save failed", "error", err)
		return utils.NewStorageError("could not store the session", err)
	}
	s.current = &session
	s.logger.Debug("session saved", "user_id", session.UserID)
	return nil
}

// Clear removes the persisted session and forgets the in-memory one.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.repo.Delete(ctx); err != nil {
		s.logger.Error("session clear failed", "error", err)
		return utils.NewStorageError("could not remove the session", err)
	}
	return nil
}

// IsActive reports whether a session is in memory and its token is still
// persisted. A token removed out from under us logs this store out too.
func (s *SessionStore) IsActive(ctx context.Context) bool {
	s.mu.RLock()
	seen := s.current
	s.mu.RUnlock()
	if seen == nil {
		return false
	}

	token, err := s.repo.Token(ctx)
	if err != nil {
		s.logger.Warn("session token lookup failed", "error", err)
		return false
	}
	if token != "" {
		return true
	}

	s.mu.Lock()
	if s.current == seen {
		s.current = nil
	}
	s.mu.Unlock()
	s.logger.Info("persisted token disappeared, session dropped")
	return false
}

// CurrentToken implements libs.TokenSource.
func (s *SessionStore) CurrentToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || !s.current.Active() {
		return "", false
	}
	return s.current.Token, true
}

// Current returns a copy of the in-memory session, or nil.
func (s *SessionStore) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *SessionStore) copyLocked() *models.Session {
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

func (s *SessionStore) resetLocked(ctx context.Context) {
	s.current = nil
	if err := s.repo.Delete(ctx); err != nil {
		s.logger.Warn("session cleanup failed", "error", err)
	}
}

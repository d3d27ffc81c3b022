package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/logger"
	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/repository"
)

// SessionKey is the durable storage key holding the signed-in user.
const SessionKey = "wordcards.user"

// SessionService persists the authenticated user of a browser client
type SessionService interface {
	Save(ctx context.Context, clientID string, user models.User) error
	// Load returns nil when the client has no stored session. A session
	// that loads is touched, so stored sessions age from their last use.
	Load(ctx context.Context, clientID string) (*models.User, error)
	Touch(ctx context.Context, clientID string) error
	Clear(ctx context.Context, clientID string) error
	PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

type sessionService struct {
	storage repository.StorageRepository
}

// NewSessionService creates a new SessionService
func NewSessionService(storage repository.StorageRepository) SessionService {
	return &sessionService{storage: storage}
}

func (s *sessionService) Save(ctx context.Context, clientID string, user models.User) error {
	log := logger.FromContext(ctx)
	log.Debug("saving session: client=%s, user_id=%d", clientID, user.ID)

	raw, err := json.Marshal(user)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if err := s.storage.Set(ctx, clientID, SessionKey, raw); err != nil {
		log.Error("failed to save session: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *sessionService) Load(ctx context.Context, clientID string) (*models.User, error) {
	log := logger.FromContext(ctx)

	entry, err := s.storage.Get(ctx, clientID, SessionKey)
	if err != nil {
		log.Error("failed to load session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if entry == nil {
		log.Debug("no stored session: client=%s", clientID)
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(entry.Value, &user); err != nil {
		// An unreadable session is treated as signed out.
		log.Warn("discarding unreadable session: client=%s: %v", clientID, err)
		return nil, nil
	}
	if err := s.Touch(ctx, clientID); err != nil {
		log.Warn("session loaded but not touched: %v", err)
	}
	log.Debug("restored session: client=%s, user_id=%d", clientID, user.ID)
	return &user, nil
}

func (s *sessionService) Touch(ctx context.Context, clientID string) error {
	if _, err := s.storage.Touch(ctx, clientID, SessionKey); err != nil {
		logger.FromContext(ctx).Error("failed to touch session: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *sessionService) Clear(ctx context.Context, clientID string) error {
	log := logger.FromContext(ctx)
	log.Debug("clearing session: client=%s", clientID)

	if err := s.storage.Delete(ctx, clientID, SessionKey); err != nil {
		log.Error("failed to clear session: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *sessionService) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	log := logger.FromContext(ctx)

	n, err := s.storage.DeleteStale(ctx, time.Now().Add(-maxAge))
	if err != nil {
		log.Error("failed to purge stale sessions: %v", err)
		return 0, errors.NewInternalError(err)
	}
	if n > 0 {
		log.Info("purged %d stale client entries", n)
	}
	return n, nil
}

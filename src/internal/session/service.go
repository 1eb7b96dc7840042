package session

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"kennelhub-session-svc/src/internal/auth"
	"kennelhub-session-svc/src/internal/cache"
	"kennelhub-session-svc/src/internal/config"
	"kennelhub-session-svc/src/internal/models"
)

// EventPublisher publishes session lifecycle events. Implemented by
// clients.EventPublisher; a nil publisher disables events.
type EventPublisher interface {
	PublishSessionEvent(sessionID, action, loginMethod, detail string) error
}

// Service is the session broker: it serves cached sessions and performs a
// fresh login only on a cache miss. Each call is an independent sequential
// unit of work; two concurrent cache-miss callers may both log in, which the
// target site tolerates.
type Service interface {
	Acquire(ctx context.Context) (*models.SessionRecord, error)
	Cleanup(ctx context.Context) (int64, error)
}

type service struct {
	repo          Repository
	authenticator auth.Authenticator
	cacheService  cache.Service
	publisher     EventPublisher
	ttl           time.Duration
}

func NewSessionService(
	repo Repository,
	authenticator auth.Authenticator,
	cacheService cache.Service,
	publisher EventPublisher,
	cfg *config.Configuration,
) Service {
	return &service{
		repo:          repo,
		authenticator: authenticator,
		cacheService:  cacheService,
		publisher:     publisher,
		ttl:           time.Duration(cfg.Cache.SessionTTLMinutes) * time.Minute,
	}
}

func (s *service) Acquire(ctx context.Context) (*models.SessionRecord, error) {
	if record := s.fromCache(ctx); record != nil {
		logrus.WithField("session_id", record.SessionID).Debug("Serving session from cache")
		return record, nil
	}

	record, err := s.repo.FindValid(ctx)
	if err != nil {
		return nil, err
	}

	if record != nil {
		logrus.WithFields(logrus.Fields{
			"session_id": record.SessionID,
			"expires_at": record.ExpiresAt,
		}).Debug("Serving session from store")
		s.cacheBestEffort(ctx, record)
		return record, nil
	}

	result, err := s.authenticator.Login(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Login against target site failed")
		s.publishBestEffort("", models.ActionLoginFailed, "", err.Error())
		return nil, err
	}

	sessionID, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record = &models.SessionRecord{
		SessionID:   sessionID,
		Cookies:     result.Cookies,
		IsActive:    true,
		LoginMethod: result.Method,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		// Authenticated but failed to cache; distinct from a login failure.
		return nil, err
	}

	s.cacheBestEffort(ctx, record)
	s.publishBestEffort(record.SessionID, models.ActionSessionCreated, record.LoginMethod, "")

	logrus.WithFields(logrus.Fields{
		"session_id":   record.SessionID,
		"login_method": record.LoginMethod,
		"expires_at":   record.ExpiresAt,
	}).Info("New session created")

	return record, nil
}

func (s *service) Cleanup(ctx context.Context) (int64, error) {
	invalidated, err := s.repo.InvalidateExpired(ctx)
	if err != nil {
		return 0, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.DropActiveSession(ctx); err != nil {
			logrus.WithError(err).Warn("Failed to drop cached session during cleanup")
		}
	}

	s.publishBestEffort("", models.ActionCleanup, "", "")

	logrus.WithField("invalidated", invalidated).Info("Expired sessions invalidated")
	return invalidated, nil
}

// fromCache returns a still-valid cached record or nil; cache errors degrade
// to a store lookup.
func (s *service) fromCache(ctx context.Context) *models.SessionRecord {
	if s.cacheService == nil {
		return nil
	}

	record, err := s.cacheService.GetActiveSession(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Session cache lookup failed, falling back to store")
		return nil
	}

	if record == nil || !record.Valid(time.Now()) {
		return nil
	}

	return record
}

func (s *service) cacheBestEffort(ctx context.Context, record *models.SessionRecord) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.CacheActiveSession(ctx, record); err != nil {
		logrus.WithError(err).Warn("Failed to cache session")
	}
}

func (s *service) publishBestEffort(sessionID, action, loginMethod, detail string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSessionEvent(sessionID, action, loginMethod, detail); err != nil {
		logrus.WithError(err).Warn("Failed to publish session event")
	}
}

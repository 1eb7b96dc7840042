package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"kennelhub-session-svc/src/internal/config"
	"kennelhub-session-svc/src/internal/models"
)

// Service is a redis fast path in front of the session store. The store
// stays the source of truth; a cache failure degrades to a store lookup.
type Service interface {
	GetActiveSession(ctx context.Context) (*models.SessionRecord, error)
	CacheActiveSession(ctx context.Context, record *models.SessionRecord) error
	DropActiveSession(ctx context.Context) error
}

type cacheService struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func NewCacheService(client *redis.Client, cfg *config.Configuration) Service {
	return &cacheService{
		client: client,
		cfg:    &cfg.Cache,
	}
}

func (c *cacheService) GetActiveSession(ctx context.Context) (*models.SessionRecord, error) {
	data, err := c.client.Get(ctx, c.cfg.SessionCacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.WithField("key", c.cfg.SessionCacheKey).Debug("Session not found in cache")
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).WithField("key", c.cfg.SessionCacheKey).Error("Failed to get session from cache")
		return nil, models.ErrRedisGet
	}

	var record models.SessionRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		logrus.WithError(err).Error("Failed to unmarshal session from cache")
		return nil, models.ErrRedisGet
	}

	logrus.WithField("session_id", record.SessionID).Debug("Session retrieved from cache")
	return &record, nil
}

func (c *cacheService) CacheActiveSession(ctx context.Context, record *models.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		logrus.WithError(err).WithField("session_id", record.SessionID).Error("Failed to marshal session for cache")
		return models.ErrRedisSet
	}

	// Cache entries never outlive the record itself.
	expiration := time.Until(record.ExpiresAt)
	if expiration <= 0 {
		logrus.WithField("session_id", record.SessionID).Warn("Session already expired, not caching")
		return nil
	}

	if err := c.client.Set(ctx, c.cfg.SessionCacheKey, data, expiration).Err(); err != nil {
		logrus.WithError(err).WithField("session_id", record.SessionID).Error("Failed to cache session")
		return models.ErrRedisSet
	}

	logrus.WithField("session_id", record.SessionID).Debug("Session cached successfully")
	return nil
}

func (c *cacheService) DropActiveSession(ctx context.Context) error {
	if err := c.client.Del(ctx, c.cfg.SessionCacheKey).Err(); err != nil {
		logrus.WithError(err).WithField("key", c.cfg.SessionCacheKey).Error("Failed to drop cached session")
		return models.ErrRedisDel
	}
	return nil
}

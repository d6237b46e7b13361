package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"nia-nlu/internal/common/database"
	stderrors "nia-nlu/internal/common/errors"
	"nia-nlu/internal/common/logger"
	"nia-nlu/internal/common/metrics"
	"nia-nlu/internal/nlu"
)

// ResultCache memoizes classification results in Redis, keyed by a hash
// of the utterance. The pipeline is deterministic between retrains, so
// entries only need a short TTL to ride out bursts.
type ResultCache struct {
	redis *database.RedisClient
	ttl   time.Duration
	log   logger.Logger
}

// NewResultCache wraps a connected Redis client.
func NewResultCache(redis *database.RedisClient, ttl time.Duration, log logger.Logger) *ResultCache {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &ResultCache{redis: redis, ttl: ttl, log: log}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "nlu:result:" + hex.EncodeToString(sum[:])
}

// Get returns the cached result for text, if any.
func (c *ResultCache) Get(ctx context.Context, text string) (*nlu.IntentResult, bool) {
	raw, err := c.redis.Get(ctx, cacheKey(text))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheRequests.WithLabelValues("miss").Inc()
		} else {
			c.log.WithError(stderrors.NewCacheUnavailableError(err)).Warn("result cache read failed", nil)
			metrics.CacheRequests.WithLabelValues("error").Inc()
		}
		return nil, false
	}

	var result nlu.IntentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.log.WithError(err).Warn("cached result corrupt, dropping", nil)
		_ = c.redis.Del(ctx, cacheKey(text))
		metrics.CacheRequests.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()
	return &result, true
}

// Put stores result under text's key. Failures are logged, not surfaced;
// the cache is best effort.
func (c *ResultCache) Put(ctx context.Context, text string, result *nlu.IntentResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		c.log.WithError(err).Warn("result not cacheable", nil)
		return
	}
	if err := c.redis.Set(ctx, cacheKey(text), raw, c.ttl); err != nil {
		c.log.WithError(err).Warn("result cache write failed", nil)
	}
}

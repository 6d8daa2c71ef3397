package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"unite-match/internal/domain"
)

const cacheOpTimeout = 500 * time.Millisecond

type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisProfileCache guarda cuentas serializadas en Redis por subject.
type RedisProfileCache struct {
	client redisCmdable
	logger *zap.Logger
	ttl    time.Duration
	prefix string
}

func NewRedisProfileCache(client *redis.Client, logger *zap.Logger, ttl time.Duration) *RedisProfileCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisProfileCache{
		client: client,
		logger: logger,
		ttl:    ttl,
		prefix: "profile:subject:",
	}
}

// Get devuelve la cuenta cacheada para el subject; los fallos de Redis se
// registran y cuentan como cache miss.
func (c *RedisProfileCache) Get(ctx context.Context, subject string) (domain.UserAccount, bool) {
	if c == nil || c.client == nil || subject == "" {
		return domain.UserAccount{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, c.prefix+subject).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && c.logger != nil {
			c.logger.Warn("profile cache get failed", zap.Error(err), zap.String("subject", subject))
		}
		return domain.UserAccount{}, false
	}

	var account domain.UserAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		if c.logger != nil {
			c.logger.Warn("profile cache decode failed", zap.Error(err), zap.String("subject", subject))
		}
		return domain.UserAccount{}, false
	}
	return account, true
}

// Set cachea la cuenta por subject; los fallos nunca se propagan al caller.
func (c *RedisProfileCache) Set(ctx context.Context, account domain.UserAccount) {
	if c == nil || c.client == nil || account.AuthSubject == "" {
		return
	}
	raw, err := json.Marshal(account)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("profile cache encode failed", zap.Error(err))
		}
		return
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, c.prefix+account.AuthSubject, raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Warn("profile cache set failed", zap.Error(err), zap.String("subject", account.AuthSubject))
	}
}

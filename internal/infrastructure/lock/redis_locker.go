// Package lock candado distribuido sobre Redis para que un solo proceso ejecute cada job.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/invoizo-api/pkg/config"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// NewRedisClient conecta y hace Ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// RedisLocker implementa scheduler.JobLocker con bsm/redislock.
type RedisLocker struct {
	client *redislock.Client
	prefix string
	log    *logger.Logger
}

// NewRedisLocker construye el locker; las claves quedan como "<prefix>:<name>".
func NewRedisLocker(rdb redislock.RedisClient, prefix string, log *logger.Logger) *RedisLocker {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisLocker{client: redislock.New(rdb), prefix: prefix, log: log.WithComponent("job-lock")}
}

// TryLock intenta tomar el candado sin esperar. ok=false si otro proceso lo tiene.
func (l *RedisLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	key := l.prefix + ":" + name
	lk, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	release := func() {
		// ctx del job puede estar cancelado; liberar con uno propio.
		rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lk.Release(rctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Str("key", key).Msg("failed to release redis lock")
		}
	}
	return release, true, nil
}

package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/campusorbit/collegelist-backend/internal/logger"
)

// GenerationLock serializes bulk templatization runs per silo. Without it,
// two overlapping runs would both pass candidate selection and race into the
// unique index on (college_id, silo).
type GenerationLock interface {
	Acquire(ctx context.Context, silo string) (bool, error)
	Release(ctx context.Context, silo string) error
	Close() error
}

type generationLock struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewGenerationLock(log *logger.Logger, ttl time.Duration) (GenerationLock, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &generationLock{
		log: log.With("service", "RedisGenerationLock"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func lockKey(silo string) string {
	return "templatization:lock:" + silo
}

func (l *generationLock) Acquire(ctx context.Context, silo string) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, lockKey(silo), "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		l.log.Debug("Generation lock already held", "silo", silo)
	}
	return ok, nil
}

func (l *generationLock) Release(ctx context.Context, silo string) error {
	if err := l.rdb.Del(ctx, lockKey(silo)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (l *generationLock) Close() error {
	return l.rdb.Close()
}

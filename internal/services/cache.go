package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// CacheService is a JSON cache over redis. A nil client disables caching:
// every Get misses and every Set is a no-op. Calls go through a circuit
// breaker so an unhealthy redis degrades to cache misses quickly.
type CacheService struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	log     *logrus.Entry
}

// NewRedisClient parses url and pings the server. An empty url returns a
// nil client, which callers treat as "cache disabled".
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewCacheService(client *redis.Client) *CacheService {
	log := logger.WithComponent("cache")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis-cache",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker":    name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("Cache circuit breaker state changed")
		},
	})

	return &CacheService{
		client:  client,
		breaker: breaker,
		log:     log,
	}
}

func (s *CacheService) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, key, data, expiration).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Get decodes the cached value into dest. Absent keys, a disabled cache and
// an open breaker all report utils.ErrCacheMiss.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if !s.Enabled() {
		return utils.ErrCacheMiss
	}

	raw, err := s.breaker.Execute(func() (interface{}, error) {
		return s.client.Get(ctx, key).Bytes()
	})
	switch {
	case errors.Is(err, redis.Nil):
		return utils.ErrCacheMiss
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %v", utils.ErrCacheMiss, err)
	case err != nil:
		return fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal(raw.([]byte), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

func (s *CacheService) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// BreakerState reports the circuit breaker state for readiness checks.
func (s *CacheService) BreakerState() gobreaker.State {
	return s.breaker.State()
}

// ClassifiedTableKey is the cache key for a table at a data version, scored
// with the weights identified by fingerprint.
func ClassifiedTableKey(version, fingerprint string) string {
	return fmt.Sprintf("players:classified:%s:%s", version, fingerprint)
}

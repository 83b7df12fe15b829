package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/golog"
)

const refreshKeyPrefix = "refresh:"

type RefreshStore interface {
	Allow(ctx context.Context, id string, ttl time.Duration) error
	Consume(ctx context.Context, id string) (bool, error)
}

// RedisRefreshStore keeps refresh token ids in Redis with their TTL.
type RedisRefreshStore struct {
	client *redis.Client
}

// NewRedisClient accepts a redis:// URL or a bare host:port address.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if strings.Contains(redisURL, "://") {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

func NewRedisRefreshStore(client *redis.Client) *RedisRefreshStore {
	return &RedisRefreshStore{client: client}
}

func (s *RedisRefreshStore) Allow(ctx context.Context, id string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKeyPrefix+id, "true", ttl).Err()
}

func (s *RedisRefreshStore) Consume(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Del(ctx, refreshKeyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryRefreshStore is the allow-list used when no Redis is configured.
type MemoryRefreshStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryRefreshStore() *MemoryRefreshStore {
	return &MemoryRefreshStore{expires: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryRefreshStore) Allow(_ context.Context, id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.expires {
		if now.After(exp) {
			delete(s.expires, k)
		}
	}
	s.expires[id] = now.Add(ttl)
	return nil
}

func (s *MemoryRefreshStore) Consume(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.expires[id]
	delete(s.expires, id)
	return ok && !s.now().After(exp), nil
}

// NewRefreshStore picks Redis when redisURL is set, memory otherwise.
func NewRefreshStore(ctx context.Context, redisURL string) (RefreshStore, error) {
	if redisURL == "" {
		golog.Warn("REDIS_URL not set, refresh tokens are kept in memory")
		return NewMemoryRefreshStore(), nil
	}
	client, err := NewRedisClient(redisURL)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	golog.Infof("Redis initialized with address: %s", client.Options().Addr)
	return NewRedisRefreshStore(client), nil
}

//go:generate mockery --name KVStore --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"voca-app-backend/internal/config"
	"voca-app-backend/internal/model"

	"github.com/redis/go-redis/v9"
)

// KVStore はTTLつきの値を保持する軽量ストアです。
// メール検証コードと学習セッションの置き場として使う。
// Get は期限切れ・未登録の場合 model.ErrNotFound を返す。
type KVStore interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewKVStore はRedisが有効ならRedis実装、そうでなければインメモリ実装を返します
func NewKVStore(cfg *config.Config) KVStore {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return &redisKVStore{client: client}
	}
	return NewMemoryKVStore()
}

// --- インメモリ実装 ---

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

type memoryKVStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryKVStore() KVStore {
	return &memoryKVStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *memoryKVStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", model.ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", model.ErrNotFound
	}
	return entry.value, nil
}

func (s *memoryKVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// --- Redis実装 ---

type redisKVStore struct {
	client *redis.Client
}

func NewRedisKVStore(client *redis.Client) KVStore {
	return &redisKVStore{client: client}
}

func (s *redisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisKVStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *redisKVStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

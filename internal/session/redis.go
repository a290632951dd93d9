package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisNamespace = "console:session"

// RedisStorage - хранилище сессий в Redis, общее для нескольких
// экземпляров консоли. TTL сессии поддерживается самим Redis.
type RedisStorage struct {
	client redis.UniversalClient
}

func NewRedisStorage(addr string, password string) *RedisStorage {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &RedisStorage{client: client}
}

func redisKey(id string) string {
	return redisNamespace + ":" + id
}

func (s *RedisStorage) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, redisKey(session.ID), payload, ttl).Err()
}

func (s *RedisStorage) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := s.client.Get(ctx, redisKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *RedisStorage) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKey(id)).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions as JSON values in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store. Sessions expire ttl
// after their last write.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := s.save(ctx, token, &Data{}); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Data, error) {
	raw, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

func (s *RedisStore) SetIdentity(ctx context.Context, token, email string) error {
	return s.update(ctx, token, func(d *Data) { d.Email = email })
}

func (s *RedisStore) ClearIdentity(ctx context.Context, token string) error {
	return s.update(ctx, token, func(d *Data) { d.Email = "" })
}

func (s *RedisStore) AddFlash(ctx context.Context, token, message string) error {
	return s.update(ctx, token, func(d *Data) { d.Flashes = append(d.Flashes, message) })
}

func (s *RedisStore) PopFlashes(ctx context.Context, token string) ([]string, error) {
	data, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	flashes := data.Flashes
	if len(flashes) == 0 {
		return nil, nil
	}
	data.Flashes = nil
	if err := s.save(ctx, token, data); err != nil {
		return nil, err
	}
	return flashes, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}

func (s *RedisStore) update(ctx context.Context, token string, mutate func(*Data)) error {
	data, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	mutate(data)
	return s.save(ctx, token, data)
}

func (s *RedisStore) save(ctx context.Context, token string, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+token, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

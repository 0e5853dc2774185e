package repository

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

type RedisBlobStore struct {
	Client *redis.Client
}

func NewRedisBlobStore(rdb *redis.Client) *RedisBlobStore {
	return &RedisBlobStore{Client: rdb}
}

func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisBlobStore) Put(ctx context.Context, key string, data []byte) error {
	return s.Client.Set(ctx, key, data, 0).Err()
}

func (s *RedisBlobStore) Delete(ctx context.Context, key string) error {
	return s.Client.Del(ctx, key).Err()
}

func (s *RedisBlobStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

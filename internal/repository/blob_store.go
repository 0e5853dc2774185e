package repository

import (
	"bio_olymp_backend/internal/config"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ErrBlobNotFound is returned by Get for a key that was never written.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore keeps whole JSON documents addressed by key. Every Put
// replaces the previous document.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// NewBlobStore builds the backend selected by cfg.Storage.Type. db and rdb
// are only needed by the database and redis backends.
func NewBlobStore(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (BlobStore, error) {
	if cfg.Ephemeral {
		return NewMemoryBlobStore(), nil
	}

	switch cfg.Storage.Type {
	case "local":
		return NewLocalBlobStore(cfg.Storage.LocalPath)
	case "redis":
		if rdb == nil {
			return nil, errors.New("redis storage requires a redis client")
		}
		return NewRedisBlobStore(rdb), nil
	case "database":
		if db == nil {
			return nil, errors.New("database storage requires a database connection")
		}
		return NewDatabaseBlobStore(db), nil
	case "minio":
		return NewMinioBlobStore(&cfg.Storage)
	case "memory":
		return NewMemoryBlobStore(), nil
	}
	return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
}

type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return append([]byte{}, data...), nil
}

func (s *MemoryBlobStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = append([]byte{}, data...)
	return nil
}

func (s *MemoryBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}

func (s *MemoryBlobStore) Ping(ctx context.Context) error {
	return nil
}

package repository

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
)

// LocalBlobStore writes one JSON file per key under a directory.
type LocalBlobStore struct {
	Dir string
}

func NewLocalBlobStore(dir string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalBlobStore{Dir: dir}, nil
}

func (s *LocalBlobStore) path(key string) string {
	return filepath.Join(s.Dir, url.PathEscape(key)+".json")
}

func (s *LocalBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put writes to a temporary file first so a crash never leaves a
// half-written document behind.
func (s *LocalBlobStore) Put(ctx context.Context, key string, data []byte) error {
	dst := s.path(key)
	tmp, err := os.CreateTemp(s.Dir, ".blob-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

func (s *LocalBlobStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *LocalBlobStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.Dir)
	return err
}

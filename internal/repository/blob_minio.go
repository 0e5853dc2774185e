package repository

import (
	"bio_olymp_backend/internal/config"
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioBlobStore keeps every blob as an object of a single bucket.
type MinioBlobStore struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioBlobStore(cfg *config.StorageConfig) (*MinioBlobStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioBlobStore{Config: cfg, Client: client}, nil
}

func (s *MinioBlobStore) objectName(key string) string {
	return key + ".json"
}

func (s *MinioBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.Client.GetObject(ctx, s.Config.MinioBucket, s.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *MinioBlobStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.Client.PutObject(ctx, s.Config.MinioBucket, s.objectName(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

func (s *MinioBlobStore) Delete(ctx context.Context, key string) error {
	return s.Client.RemoveObject(ctx, s.Config.MinioBucket, s.objectName(key), minio.RemoveObjectOptions{})
}

// Ping also creates the bucket on first use.
func (s *MinioBlobStore) Ping(ctx context.Context) error {
	exists, err := s.Client.BucketExists(ctx, s.Config.MinioBucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.Client.MakeBucket(ctx, s.Config.MinioBucket, minio.MakeBucketOptions{})
	}
	return nil
}

package repository

import (
	"bio_olymp_backend/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DatabaseBlobStore struct {
	DB *gorm.DB
}

func NewDatabaseBlobStore(db *gorm.DB) *DatabaseBlobStore {
	return &DatabaseBlobStore{DB: db}
}

func (s *DatabaseBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob model.Blob
	err := s.DB.WithContext(ctx).Where(&model.Blob{Key: key}).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return blob.Data, nil
}

func (s *DatabaseBlobStore) Put(ctx context.Context, key string, data []byte) error {
	blob := model.Blob{Key: key, Data: data}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&blob).Error
}

func (s *DatabaseBlobStore) Delete(ctx context.Context, key string) error {
	return s.DB.WithContext(ctx).Where(&model.Blob{Key: key}).Delete(&model.Blob{}).Error
}

func (s *DatabaseBlobStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

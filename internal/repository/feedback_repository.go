package repository

import (
	"bio_olymp_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// FeedbackRepository keeps the append-only feedback log and the
// per-question stats as two separate blobs.
type FeedbackRepository struct {
	Store    BlobStore
	logKey   string
	statsKey string
}

func NewFeedbackRepository(store BlobStore, prefix string) *FeedbackRepository {
	return &FeedbackRepository{
		Store:    store,
		logKey:   prefix + FeedbackKey,
		statsKey: prefix + QuestionStatsKey,
	}
}

func (r *FeedbackRepository) FindAll(ctx context.Context) ([]model.FeedbackRecord, error) {
	data, err := r.Store.Get(ctx, r.logKey)
	if errors.Is(err, ErrBlobNotFound) {
		return []model.FeedbackRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}

	var records []model.FeedbackRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	if records == nil {
		records = []model.FeedbackRecord{}
	}
	return records, nil
}

func (r *FeedbackRepository) Append(ctx context.Context, record model.FeedbackRecord) error {
	records, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	if err := r.Store.Put(ctx, r.logKey, data); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) LoadStats(ctx context.Context) (map[string]model.QuestionStats, error) {
	data, err := r.Store.Get(ctx, r.statsKey)
	if errors.Is(err, ErrBlobNotFound) {
		return map[string]model.QuestionStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load question stats: %w", err)
	}

	stats := map[string]model.QuestionStats{}
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("decode question stats: %w", err)
	}
	return stats, nil
}

func (r *FeedbackRepository) SaveStats(ctx context.Context, stats map[string]model.QuestionStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode question stats: %w", err)
	}
	if err := r.Store.Put(ctx, r.statsKey, data); err != nil {
		return fmt.Errorf("save question stats: %w", err)
	}
	return nil
}

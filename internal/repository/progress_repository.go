package repository

import (
	"bio_olymp_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	ProgressKey      = "bioOlympProgress"
	UserQuestionsKey = "bio-user-questions"
	FeedbackKey      = "bio-question-feedback"
	QuestionStatsKey = "bio-question-stats"
)

type ProgressRepository struct {
	Store BlobStore
	key   string
}

func NewProgressRepository(store BlobStore, prefix string) *ProgressRepository {
	return &ProgressRepository{Store: store, key: prefix + ProgressKey}
}

// Load returns the default progress when nothing was saved yet.
func (r *ProgressRepository) Load(ctx context.Context) (*model.UserProgress, error) {
	data, err := r.Store.Get(ctx, r.key)
	if errors.Is(err, ErrBlobNotFound) {
		return model.NewUserProgress(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	progress := &model.UserProgress{}
	if err := json.Unmarshal(data, progress); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	if progress.CompletedQuestions == nil {
		progress.CompletedQuestions = []string{}
	}
	if progress.Scores == nil {
		progress.Scores = model.NewUserProgress().Scores
	}
	if progress.Achievements == nil {
		progress.Achievements = []string{}
	}
	return progress, nil
}

func (r *ProgressRepository) Save(ctx context.Context, progress *model.UserProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := r.Store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

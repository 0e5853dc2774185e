package repository

import (
	"bio_olymp_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type UserQuestionRepository struct {
	Store BlobStore
	key   string
}

func NewUserQuestionRepository(store BlobStore, prefix string) *UserQuestionRepository {
	return &UserQuestionRepository{Store: store, key: prefix + UserQuestionsKey}
}

func (r *UserQuestionRepository) FindAll(ctx context.Context) ([]model.UserQuestion, error) {
	data, err := r.Store.Get(ctx, r.key)
	if errors.Is(err, ErrBlobNotFound) {
		return []model.UserQuestion{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user questions: %w", err)
	}

	var questions []model.UserQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode user questions: %w", err)
	}
	if questions == nil {
		questions = []model.UserQuestion{}
	}
	return questions, nil
}

func (r *UserQuestionRepository) SaveAll(ctx context.Context, questions []model.UserQuestion) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("encode user questions: %w", err)
	}
	if err := r.Store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("save user questions: %w", err)
	}
	return nil
}

package service

import (
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/internal/repository"
	"bio_olymp_backend/internal/util"
	"bio_olymp_backend/pkg/logger"
	"bio_olymp_backend/pkg/monitoring"
	"bio_olymp_backend/pkg/tracing"
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	negativeFlagThreshold = 2
	verifiedMinPositive   = 5
	verifiedMaxNegative   = 1
)

type FeedbackService struct {
	Repo *repository.FeedbackRepository

	mu  sync.Mutex
	now func() time.Time
}

func NewFeedbackService(repo *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{Repo: repo, now: time.Now}
}

// applyFeedback counts one submission. flagged follows the latest
// submission: an error report flags, and so do more than two negatives.
func applyFeedback(stats model.QuestionStats, feedbackType model.FeedbackType) model.QuestionStats {
	switch feedbackType {
	case model.FeedbackPositive:
		stats.Positive++
	case model.FeedbackNegative:
		stats.Negative++
	case model.FeedbackError:
		stats.Errors++
	}
	stats.TotalFeedback++
	stats.Flagged = feedbackType == model.FeedbackError || stats.Negative > negativeFlagThreshold
	return stats
}

func VerificationStatusOf(stats model.QuestionStats) model.VerificationStatus {
	if stats.Flagged {
		return model.StatusFlagged
	}
	if stats.Positive > verifiedMinPositive && stats.Negative <= verifiedMaxNegative {
		return model.StatusVerified
	}
	return model.StatusPending
}

// SubmitFeedback appends a record to the log and returns the updated
// statistics of the question.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, questionID, text string, feedbackType model.FeedbackType) (model.QuestionStats, error) {
	ctx, span := tracing.StartSpan(ctx, "FeedbackService.SubmitFeedback",
		attribute.String("question.id", questionID),
		attribute.String("feedback.type", string(feedbackType)),
	)
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return model.QuestionStats{}, util.ErrEmptyFeedback
	}
	if !feedbackType.Valid() {
		return model.QuestionStats{}, util.ErrInvalidFeedbackType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.Repo.LoadStats(ctx)
	if err != nil {
		tracing.Fail(span, err)
		return model.QuestionStats{}, err
	}

	previous, counted := all[questionID]
	stats := applyFeedback(previous, feedbackType)
	all[questionID] = stats
	if err := s.Repo.SaveStats(ctx, all); err != nil {
		tracing.Fail(span, err)
		logger.Log.Error("Failed to persist feedback stats", zap.String("questionId", questionID), zap.Error(err))
		return model.QuestionStats{}, err
	}

	// the log is written last; a failed append puts the stats back
	record := model.FeedbackRecord{
		QuestionID: questionID,
		Feedback:   text,
		Type:       feedbackType,
		Timestamp:  s.now().UnixMilli(),
	}
	if err := s.Repo.Append(ctx, record); err != nil {
		tracing.Fail(span, err)
		logger.Log.Error("Failed to append feedback", zap.String("questionId", questionID), zap.Error(err))

		if counted {
			all[questionID] = previous
		} else {
			delete(all, questionID)
		}
		if rbErr := s.Repo.SaveStats(ctx, all); rbErr != nil {
			logger.Log.Error("Failed to restore feedback stats", zap.String("questionId", questionID), zap.Error(rbErr))
		}
		return model.QuestionStats{}, err
	}

	monitoring.FeedbackSubmitted.WithLabelValues(string(feedbackType)).Inc()
	logger.Log.Info("Feedback submitted",
		zap.String("questionId", questionID),
		zap.String("type", string(feedbackType)),
		zap.Bool("flagged", stats.Flagged))
	return stats, nil
}

// QuestionStats is the zero value for questions without feedback.
func (s *FeedbackService) QuestionStats(ctx context.Context, questionID string) (model.QuestionStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.Repo.LoadStats(ctx)
	if err != nil {
		return model.QuestionStats{}, err
	}
	return all[questionID], nil
}

func (s *FeedbackService) VerificationStatus(ctx context.Context, questionID string) (model.VerificationStatus, error) {
	stats, err := s.QuestionStats(ctx, questionID)
	if err != nil {
		return "", err
	}
	return VerificationStatusOf(stats), nil
}

// FeedbackFor returns the records of one question, oldest first.
func (s *FeedbackService) FeedbackFor(ctx context.Context, questionID string) ([]model.FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := []model.FeedbackRecord{}
	for _, r := range all {
		if r.QuestionID == questionID {
			result = append(result, r)
		}
	}
	return result, nil
}

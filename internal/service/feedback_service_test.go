package service

import (
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/internal/repository"
	"bio_olymp_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedbackService(store repository.BlobStore) *FeedbackService {
	s := NewFeedbackService(repository.NewFeedbackRepository(store, ""))
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func submitN(t *testing.T, s *FeedbackService, qid string, ft model.FeedbackType, n int) model.QuestionStats {
	t.Helper()
	var stats model.QuestionStats
	for i := 0; i < n; i++ {
		var err error
		stats, err = s.SubmitFeedback(context.Background(), qid, "комментарий", ft)
		require.NoError(t, err)
	}
	return stats
}

func TestSingleErrorReportFlags(t *testing.T) {
	ctx := context.Background()
	s := newFeedbackService(repository.NewMemoryBlobStore())

	stats, err := s.SubmitFeedback(ctx, "bot_001", "bad", model.FeedbackError)
	require.NoError(t, err)
	assert.Equal(t, model.QuestionStats{Errors: 1, TotalFeedback: 1, Flagged: true}, stats)

	status, err := s.VerificationStatus(ctx, "bot_001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusFlagged, status)
}

func TestNegativeThreshold(t *testing.T) {
	ctx := context.Background()
	s := newFeedbackService(repository.NewMemoryBlobStore())

	stats := submitN(t, s, "zoo_001", model.FeedbackNegative, 2)
	assert.False(t, stats.Flagged)
	status, err := s.VerificationStatus(ctx, "zoo_001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, status)

	stats = submitN(t, s, "zoo_001", model.FeedbackNegative, 1)
	assert.True(t, stats.Flagged)
	assert.Equal(t, 3, stats.Negative)
	status, err = s.VerificationStatus(ctx, "zoo_001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusFlagged, status)
}

func TestFlagFollowsLatestSubmission(t *testing.T) {
	s := newFeedbackService(repository.NewMemoryBlobStore())

	stats := submitN(t, s, "eco_001", model.FeedbackError, 1)
	assert.True(t, stats.Flagged)

	stats = submitN(t, s, "eco_001", model.FeedbackPositive, 1)
	assert.False(t, stats.Flagged)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 2, stats.TotalFeedback)
}

func TestVerifiedStatus(t *testing.T) {
	ctx := context.Background()
	s := newFeedbackService(repository.NewMemoryBlobStore())

	submitN(t, s, "ana_001", model.FeedbackPositive, 5)
	status, err := s.VerificationStatus(ctx, "ana_001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, status)

	submitN(t, s, "ana_001", model.FeedbackPositive, 1)
	submitN(t, s, "ana_001", model.FeedbackNegative, 1)
	status, err = s.VerificationStatus(ctx, "ana_001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusVerified, status)

	submitN(t, s, "ana_001", model.FeedbackNegative, 1)
	status, err = s.VerificationStatus(ctx, "ana_001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, status)
}

func TestUnknownQuestionIsPending(t *testing.T) {
	ctx := context.Background()
	s := newFeedbackService(repository.NewMemoryBlobStore())

	stats, err := s.QuestionStats(ctx, "nothing")
	require.NoError(t, err)
	assert.Equal(t, model.QuestionStats{}, stats)

	status, err := s.VerificationStatus(ctx, "nothing")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, status)
}

func TestSubmitFeedbackRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryBlobStore()
	s := newFeedbackService(store)

	_, err := s.SubmitFeedback(ctx, "bot_001", "  ", model.FeedbackPositive)
	assert.ErrorIs(t, err, util.ErrEmptyFeedback)

	_, err = s.SubmitFeedback(ctx, "bot_001", "text", "spam")
	assert.ErrorIs(t, err, util.ErrInvalidFeedbackType)

	_, err = store.Get(ctx, repository.FeedbackKey)
	assert.ErrorIs(t, err, repository.ErrBlobNotFound)
	_, err = store.Get(ctx, repository.QuestionStatsKey)
	assert.ErrorIs(t, err, repository.ErrBlobNotFound)
}

func TestFeedbackLogIsPersisted(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryBlobStore()
	s := newFeedbackService(store)

	_, err := s.SubmitFeedback(ctx, "bot_001", " Опечатка в варианте ", model.FeedbackError)
	require.NoError(t, err)
	_, err = s.SubmitFeedback(ctx, "zoo_001", "Отличный вопрос", model.FeedbackPositive)
	require.NoError(t, err)
	_, err = s.SubmitFeedback(ctx, "bot_001", "Спасибо", model.FeedbackPositive)
	require.NoError(t, err)

	reopened := newFeedbackService(store)
	records, err := reopened.FeedbackFor(ctx, "bot_001")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.FeedbackRecord{
		QuestionID: "bot_001",
		Feedback:   "Опечатка в варианте",
		Type:       model.FeedbackError,
		Timestamp:  1700000000000,
	}, records[0])
	assert.Equal(t, "Спасибо", records[1].Feedback)

	stats, err := reopened.QuestionStats(ctx, "bot_001")
	require.NoError(t, err)
	assert.Equal(t, model.QuestionStats{Positive: 1, Errors: 1, TotalFeedback: 2, Flagged: false}, stats)
}

func TestFeedbackStatsWriteFailureLeavesLogUntouched(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{BlobStore: repository.NewMemoryBlobStore(), failKey: repository.QuestionStatsKey}
	s := newFeedbackService(store)

	_, err := s.SubmitFeedback(ctx, "bot_001", "bad", model.FeedbackError)
	require.Error(t, err)

	store.failKey = ""
	records, err := s.FeedbackFor(ctx, "bot_001")
	require.NoError(t, err)
	assert.Empty(t, records)
	stats, err := s.QuestionStats(ctx, "bot_001")
	require.NoError(t, err)
	assert.Equal(t, model.QuestionStats{}, stats)
}

func TestFeedbackLogWriteFailureRestoresStats(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{BlobStore: repository.NewMemoryBlobStore()}
	s := newFeedbackService(store)

	submitN(t, s, "bot_001", model.FeedbackPositive, 1)

	store.failKey = repository.FeedbackKey
	_, err := s.SubmitFeedback(ctx, "bot_001", "bad", model.FeedbackError)
	require.Error(t, err)
	_, err = s.SubmitFeedback(ctx, "zoo_001", "bad", model.FeedbackError)
	require.Error(t, err)

	store.failKey = ""
	stats, err := s.QuestionStats(ctx, "bot_001")
	require.NoError(t, err)
	assert.Equal(t, model.QuestionStats{Positive: 1, TotalFeedback: 1}, stats)
	stats, err = s.QuestionStats(ctx, "zoo_001")
	require.NoError(t, err)
	assert.Equal(t, model.QuestionStats{}, stats)

	records, err := s.FeedbackFor(ctx, "bot_001")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

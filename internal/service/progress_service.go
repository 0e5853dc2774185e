package service

import (
	"bio_olymp_backend/internal/catalog"
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/internal/repository"
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

// UserQuestionSource is implemented by QuestionBankService.
type UserQuestionSource interface {
	UserQuestions(ctx context.Context) ([]model.UserQuestion, error)
}

// ProgressService owns the single learner profile. Every mutation is
// applied to a copy, persisted, and only then made visible.
type ProgressService struct {
	Catalog   *catalog.Catalog
	Repo      *repository.ProgressRepository
	Bank      UserQuestionSource
	Publisher *EventPublisher

	mu       sync.Mutex
	progress *model.UserProgress
	now      func() time.Time
}

func NewProgressService(cat *catalog.Catalog, repo *repository.ProgressRepository, bank UserQuestionSource, publisher *EventPublisher) *ProgressService {
	return &ProgressService{
		Catalog:   cat,
		Repo:      repo,
		Bank:      bank,
		Publisher: publisher,
		now:       time.Now,
	}
}

// load must be called with s.mu held.
func (s *ProgressService) load(ctx context.Context) error {
	if s.progress != nil {
		return nil
	}
	progress, err := s.Repo.Load(ctx)
	if err != nil {
		return err
	}
	s.progress = progress
	return nil
}

func (s *ProgressService) userQuestions(ctx context.Context) ([]model.UserQuestion, error) {
	if s.Bank == nil {
		return nil, nil
	}
	return s.Bank.UserQuestions(ctx)
}

// pool is the catalog followed by the user questions.
func (s *ProgressService) pool(ctx context.Context) ([]model.Answerable, int, error) {
	userQuestions, err := s.userQuestions(ctx)
	if err != nil {
		return nil, 0, err
	}

	pool := make([]model.Answerable, 0, s.Catalog.Len()+len(userQuestions))
	for _, q := range s.Catalog.All() {
		pool = append(pool, model.Answerable{ID: q.ID, Category: q.Category, Points: q.Points})
	}
	for _, q := range userQuestions {
		pool = append(pool, model.Answerable{ID: q.ID, Category: q.Theme, Points: q.Points})
	}
	return pool, len(userQuestions), nil
}

func findAnswerable(pool []model.Answerable, id string) (model.Answerable, bool) {
	for _, q := range pool {
		if q.ID == id {
			return q, true
		}
	}
	return model.Answerable{}, false
}

func (s *ProgressService) GetProgress(ctx context.Context) (*model.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.progress.Clone(), nil
}

// RecordAnswer marks a question as completed. Unknown and already
// completed ids leave the progress untouched and are not errors.
func (s *ProgressService) RecordAnswer(ctx context.Context, questionID string, isCorrect bool) (*model.UserProgress, error) {
	ctx, span := tracing.StartSpan(ctx, "ProgressService.RecordAnswer",
		attribute.String("question.id", questionID),
		attribute.Bool("answer.correct", isCorrect),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	pool, userCount, err := s.pool(ctx)
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	question, ok := findAnswerable(pool, questionID)
	if !ok {
		monitoring.AnswersRecorded.WithLabelValues("unknown").Inc()
		logger.Log.Debug("Answer for unknown question ignored", zap.String("questionId", questionID))
		return s.progress.Clone(), nil
	}
	if s.progress.IsCompleted(questionID) {
		monitoring.AnswersRecorded.WithLabelValues("repeat").Inc()
		return s.progress.Clone(), nil
	}

	next := s.progress.Clone()
	next.CompletedQuestions = append(next.CompletedQuestions, questionID)
	if isCorrect {
		next.TotalPoints += question.Points
		// categories without a preexisting score key earn no category score
		key := strings.ToLower(question.Category)
		if _, tracked := next.Scores[key]; tracked {
			next.Scores[key] += question.Points
		}
	}

	achievements := EvaluateAchievements(next, pool, userCount)
	previous := next.Achievements
	next.Achievements = unlockedIDs(achievements)

	if err := s.Repo.Save(ctx, next); err != nil {
		tracing.Fail(span, err)
		logger.Log.Error("Failed to persist progress", zap.String("questionId", questionID), zap.Error(err))
		return nil, err
	}
	s.progress = next

	result := "incorrect"
	if isCorrect {
		result = "correct"
	}
	monitoring.AnswersRecorded.WithLabelValues(result).Inc()
	logger.Log.Info("Answer recorded",
		zap.String("questionId", questionID),
		zap.Bool("correct", isCorrect),
		zap.Int("totalPoints", next.TotalPoints))

	s.announce(ctx, previous, achievements, next.TotalPoints)
	return next.Clone(), nil
}

// RefreshAchievements re-evaluates the cached achievement ids after the
// question pool changed.
func (s *ProgressService) RefreshAchievements(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}
	pool, userCount, err := s.pool(ctx)
	if err != nil {
		return err
	}

	achievements := EvaluateAchievements(s.progress, pool, userCount)
	ids := unlockedIDs(achievements)
	if equalIDs(ids, s.progress.Achievements) {
		return nil
	}

	next := s.progress.Clone()
	previous := next.Achievements
	next.Achievements = ids
	if err := s.Repo.Save(ctx, next); err != nil {
		return err
	}
	s.progress = next

	s.announce(ctx, previous, achievements, next.TotalPoints)
	return nil
}

func (s *ProgressService) announce(ctx context.Context, previous []string, achievements []model.Achievement, totalPoints int) {
	was := make(map[string]bool, len(previous))
	for _, id := range previous {
		was[id] = true
	}
	for _, a := range achievements {
		if !a.IsUnlocked || was[a.ID] {
			continue
		}
		monitoring.AchievementsUnlocked.WithLabelValues(a.ID).Inc()
		logger.Log.Info("Achievement unlocked", zap.String("achievement", a.ID))
		s.Publisher.AchievementUnlocked(ctx, model.AchievementUnlockedEvent{
			AchievementID: a.ID,
			Title:         a.Title,
			Points:        a.Points,
			TotalPoints:   totalPoints,
			UnlockedAt:    s.now().UnixMilli(),
		})
	}
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *ProgressService) Achievements(ctx context.Context) ([]model.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	pool, userCount, err := s.pool(ctx)
	if err != nil {
		return nil, err
	}
	return EvaluateAchievements(s.progress, pool, userCount), nil
}

func topicProgress(progress *model.UserProgress, pool []model.Answerable, category string) model.TopicProgress {
	completed, total := countCategory(progress, pool, category)
	result := model.TopicProgress{Completed: completed, Total: total}
	if total > 0 {
		result.Percentage = float64(completed) * 100 / float64(total)
	}
	return result
}

// TopicProgress counts catalog and user questions of a category, matched
// case-insensitively.
func (s *ProgressService) TopicProgress(ctx context.Context, category string) (model.TopicProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return model.TopicProgress{}, err
	}
	pool, _, err := s.pool(ctx)
	if err != nil {
		return model.TopicProgress{}, err
	}
	return topicProgress(s.progress, pool, category), nil
}

// overallProgress counts only completed ids still in the pool; ids of
// deleted user questions stay in the profile but no longer count.
func overallProgress(progress *model.UserProgress, pool []model.Answerable) model.OverallProgress {
	completed := 0
	for _, id := range progress.CompletedQuestions {
		if _, ok := findAnswerable(pool, id); ok {
			completed++
		}
	}

	result := model.OverallProgress{
		TotalPoints:        progress.TotalPoints,
		CompletedQuestions: completed,
		TotalQuestions:     len(pool),
	}
	if result.TotalQuestions > 0 {
		result.Percentage = float64(completed) * 100 / float64(result.TotalQuestions)
	}
	return result
}

func (s *ProgressService) OverallProgress(ctx context.Context) (model.OverallProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return model.OverallProgress{}, err
	}
	pool, _, err := s.pool(ctx)
	if err != nil {
		return model.OverallProgress{}, err
	}
	return overallProgress(s.progress, pool), nil
}

func progressChart(progress *model.UserProgress, pool []model.Answerable, categories []model.Category) []model.ProgressChartEntry {
	chart := make([]model.ProgressChartEntry, 0, len(categories))
	for _, cat := range categories {
		tp := topicProgress(progress, pool, cat.Name)
		chart = append(chart, model.ProgressChartEntry{
			Topic:     cat.ID,
			Name:      cat.Name,
			Completed: tp.Completed,
			Total:     tp.Total,
		})
	}
	return chart
}

// ProgressChart has one entry per catalog category, in catalog order.
func (s *ProgressService) ProgressChart(ctx context.Context) ([]model.ProgressChartEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	pool, _, err := s.pool(ctx)
	if err != nil {
		return nil, err
	}
	return progressChart(s.progress, pool, s.Catalog.Categories()), nil
}

// Snapshot is the overall progress, chart and achievements computed from
// one consistent view of the profile.
type Snapshot struct {
	Overall      model.OverallProgress
	Chart        []model.ProgressChartEntry
	Achievements []model.Achievement
}

func (s *ProgressService) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return Snapshot{}, err
	}
	pool, userCount, err := s.pool(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Overall:      overallProgress(s.progress, pool),
		Chart:        progressChart(s.progress, pool, s.Catalog.Categories()),
		Achievements: EvaluateAchievements(s.progress, pool, userCount),
	}, nil
}

// PracticeSet returns the catalog questions of a category, or the whole
// catalog when category is empty.
func (s *ProgressService) PracticeSet(category string) []model.Question {
	if category == "" {
		return s.Catalog.All()
	}
	if cat, ok := s.Catalog.CategoryByID(category); ok {
		category = cat.Name
	}
	result := s.Catalog.ByCategory(category)
	if result == nil {
		return []model.Question{}
	}
	return result
}

func (s *ProgressService) UnansweredSet(ctx context.Context) ([]model.Question, error) {
	progress, err := s.GetProgress(ctx)
	if err != nil {
		return nil, err
	}

	result := []model.Question{}
	for _, q := range s.Catalog.All() {
		if !progress.IsCompleted(q.ID) {
			result = append(result, q)
		}
	}
	return result, nil
}

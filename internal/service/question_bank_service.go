package service

import (
	"bio_olymp_backend/internal/catalog"
	"bio_olymp_backend/internal/config"
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/internal/repository"
	"bio_olymp_backend/internal/util"
	"bio_olymp_backend/pkg/logger"
	"bio_olymp_backend/pkg/monitoring"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionBankService owns the user-contributed questions. The collection
// is read from the store once and rewritten wholesale after each change.
type QuestionBankService struct {
	Repo    *repository.UserQuestionRepository
	Catalog *catalog.Catalog

	mu        sync.Mutex
	questions []model.UserQuestion
	loaded    bool

	patternsMu sync.RWMutex
	matchers   []TypeMatcher

	onChange []func(ctx context.Context) error
	now      func() time.Time
}

func NewQuestionBankService(repo *repository.UserQuestionRepository, cat *catalog.Catalog, patterns []config.TypePattern) (*QuestionBankService, error) {
	matchers, err := CompileTypePatterns(patterns)
	if err != nil {
		return nil, err
	}
	return &QuestionBankService{
		Repo:     repo,
		Catalog:  cat,
		matchers: matchers,
		now:      time.Now,
	}, nil
}

// OnChange registers a hook run after every successful add or delete.
func (s *QuestionBankService) OnChange(hook func(ctx context.Context) error) {
	s.onChange = append(s.onChange, hook)
}

// SetTypePatterns swaps the heuristics used by Analyze; a bad pattern
// leaves the current ones in place.
func (s *QuestionBankService) SetTypePatterns(patterns []config.TypePattern) error {
	matchers, err := CompileTypePatterns(patterns)
	if err != nil {
		return err
	}
	s.patternsMu.Lock()
	s.matchers = matchers
	s.patternsMu.Unlock()
	return nil
}

func (s *QuestionBankService) typeMatchers() []TypeMatcher {
	s.patternsMu.RLock()
	defer s.patternsMu.RUnlock()
	return s.matchers
}

// load must be called with s.mu held.
func (s *QuestionBankService) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	questions, err := s.Repo.FindAll(ctx)
	if err != nil {
		return err
	}
	s.questions = questions
	s.loaded = true
	monitoring.UserQuestions.Set(float64(len(questions)))
	return nil
}

func (s *QuestionBankService) UserQuestions(ctx context.Context) ([]model.UserQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return append([]model.UserQuestion{}, s.questions...), nil
}

func validateUserQuestion(req *model.UserQuestionRequest) error {
	if strings.TrimSpace(req.Question) == "" {
		return util.ErrEmptyQuestion
	}
	if strings.TrimSpace(req.Theme) == "" {
		return util.ErrMissingTheme
	}
	if req.Type == "" {
		req.Type = model.TypeMultipleChoice
	}
	if !req.Type.Valid() {
		return util.ErrInvalidQuestionType
	}
	if req.Type == model.TypeMultipleChoice {
		if len(req.Options) == 0 {
			return util.ErrIncompleteOptions
		}
		for _, opt := range req.Options {
			if strings.TrimSpace(opt) == "" {
				return util.ErrIncompleteOptions
			}
		}
		if req.CorrectIndex != nil && (*req.CorrectIndex < 0 || *req.CorrectIndex >= len(req.Options)) {
			return util.ErrCorrectIndexOutOfRange
		}
	}
	if req.Difficulty == 0 {
		req.Difficulty = 2
	}
	if req.Difficulty < 1 || req.Difficulty > 3 {
		return util.ErrInvalidDifficulty
	}
	return nil
}

func buildUserQuestion(req model.UserQuestionRequest, now time.Time) model.UserQuestion {
	theme := strings.TrimSpace(req.Theme)
	q := model.UserQuestion{
		ID:          "custom_" + uuid.New().String(),
		Type:        req.Type,
		Question:    strings.TrimSpace(req.Question),
		Options:     []string{},
		Theme:       theme,
		Explanation: strings.TrimSpace(req.Explanation),
		Difficulty:  req.Difficulty,
		Source:      model.SourceUserAdded,
		Category:    theme,
		Points:      req.Points,
		CreatedAt:   now,
	}
	if q.Points <= 0 {
		q.Points = req.Difficulty * 10
	}

	answer := "Не указан"
	if req.Type == model.TypeMultipleChoice {
		idx := 0
		if req.CorrectIndex != nil {
			idx = *req.CorrectIndex
		}
		q.Options = append(q.Options, req.Options...)
		q.CorrectIndex = &idx
		answer = q.Options[idx]
	}
	if q.Explanation == "" {
		q.Explanation = fmt.Sprintf("Правильный ответ: %s", answer)
	}
	return q
}

// AddUserQuestion validates and appends a question. Nothing is written
// when validation fails.
func (s *QuestionBankService) AddUserQuestion(ctx context.Context, req model.UserQuestionRequest) (*model.UserQuestion, error) {
	if err := validateUserQuestion(&req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if err := s.load(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	question := buildUserQuestion(req, s.now())
	updated := append(append([]model.UserQuestion{}, s.questions...), question)
	if err := s.Repo.SaveAll(ctx, updated); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.questions = updated
	count := len(updated)
	s.mu.Unlock()

	monitoring.UserQuestions.Set(float64(count))
	logger.Log.Info("User question added",
		zap.String("id", question.ID),
		zap.String("theme", question.Theme),
		zap.Int("points", question.Points))

	s.notify(ctx)
	return &question, nil
}

// DeleteUserQuestion removes a question by id. Progress and feedback that
// reference the id are left as they are. Unknown ids are ignored.
func (s *QuestionBankService) DeleteUserQuestion(ctx context.Context, id string) error {
	s.mu.Lock()
	if err := s.load(ctx); err != nil {
		s.mu.Unlock()
		return err
	}

	updated := make([]model.UserQuestion, 0, len(s.questions))
	for _, q := range s.questions {
		if q.ID != id {
			updated = append(updated, q)
		}
	}
	if len(updated) == len(s.questions) {
		s.mu.Unlock()
		logger.Log.Debug("Delete of unknown user question ignored", zap.String("id", id))
		return nil
	}

	if err := s.Repo.SaveAll(ctx, updated); err != nil {
		s.mu.Unlock()
		return err
	}
	s.questions = updated
	count := len(updated)
	s.mu.Unlock()

	monitoring.UserQuestions.Set(float64(count))
	logger.Log.Info("User question deleted", zap.String("id", id))

	s.notify(ctx)
	return nil
}

func (s *QuestionBankService) notify(ctx context.Context) {
	for _, hook := range s.onChange {
		if err := hook(ctx); err != nil {
			logger.Log.Error("Question bank change hook failed", zap.Error(err))
		}
	}
}

// ListUserQuestions filters by a case-insensitive search over the text and
// theme, and by exact theme unless theme is empty or "all".
func (s *QuestionBankService) ListUserQuestions(ctx context.Context, search, theme string) ([]model.UserQuestion, error) {
	questions, err := s.UserQuestions(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(search)
	result := []model.UserQuestion{}
	for _, q := range questions {
		matchesSearch := strings.Contains(strings.ToLower(q.Question), term) ||
			strings.Contains(strings.ToLower(q.Theme), term)
		matchesTheme := theme == "" || theme == "all" || q.Theme == theme
		if matchesSearch && matchesTheme {
			result = append(result, q)
		}
	}
	return result, nil
}

// Themes lists distinct themes in the order they first appear.
func (s *QuestionBankService) Themes(ctx context.Context) ([]string, error) {
	questions, err := s.UserQuestions(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	themes := []string{}
	for _, q := range questions {
		if !seen[q.Theme] {
			seen[q.Theme] = true
			themes = append(themes, q.Theme)
		}
	}
	return themes, nil
}

func (s *QuestionBankService) Analyze(ctx context.Context) (model.QuestionAnalysis, error) {
	questions, err := s.UserQuestions(ctx)
	if err != nil {
		return model.QuestionAnalysis{}, err
	}

	set := make([]model.AnalyzableQuestion, 0, len(questions))
	for _, q := range questions {
		set = append(set, UserQuestionAnalyzable(q))
	}
	return AnalyzeQuestionSet(set, s.typeMatchers()), nil
}

// Stats covers the catalog and the user bank together.
func (s *QuestionBankService) Stats(ctx context.Context) (model.QuestionSetStats, error) {
	questions, err := s.UserQuestions(ctx)
	if err != nil {
		return model.QuestionSetStats{}, err
	}

	set := make([]model.AnalyzableQuestion, 0, s.Catalog.Len()+len(questions))
	for _, q := range s.Catalog.All() {
		set = append(set, CatalogAnalyzable(q))
	}
	for _, q := range questions {
		set = append(set, UserQuestionAnalyzable(q))
	}
	return QuestionSetStats(set), nil
}

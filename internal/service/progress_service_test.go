package service

import (
	"bio_olymp_backend/internal/catalog"
	"bio_olymp_backend/internal/config"
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroker struct {
	mu       sync.Mutex
	messages map[string][][]byte
	err      error
}

func (b *fakeBroker) Publish(_ context.Context, queue string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	if b.messages == nil {
		b.messages = map[string][][]byte{}
	}
	b.messages[queue] = append(b.messages[queue], body)
	return nil
}

func (b *fakeBroker) events(t *testing.T, queue string) []model.AchievementUnlockedEvent {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var events []model.AchievementUnlockedEvent
	for _, body := range b.messages[queue] {
		var e model.AchievementUnlockedEvent
		require.NoError(t, json.Unmarshal(body, &e))
		events = append(events, e)
	}
	return events
}

// failingStore fails every write once armed, or only writes to keys
// containing failKey when that is set.
type failingStore struct {
	repository.BlobStore
	failPut bool
	failKey string
}

func (s *failingStore) Put(ctx context.Context, key string, data []byte) error {
	if s.failPut || (s.failKey != "" && strings.Contains(key, s.failKey)) {
		return errors.New("disk full")
	}
	return s.BlobStore.Put(ctx, key, data)
}

type fixture struct {
	store    repository.BlobStore
	catalog  *catalog.Catalog
	bank     *QuestionBankService
	progress *ProgressService
	broker   *fakeBroker
}

func newFixture(t *testing.T, store repository.BlobStore) *fixture {
	t.Helper()
	if store == nil {
		store = repository.NewMemoryBlobStore()
	}

	cat := catalog.Default()
	bank, err := NewQuestionBankService(repository.NewUserQuestionRepository(store, ""), cat, config.DefaultTypePatterns)
	require.NoError(t, err)

	broker := &fakeBroker{}
	progress := NewProgressService(cat, repository.NewProgressRepository(store, ""), bank, NewEventPublisher(broker, "achievements"))
	bank.OnChange(progress.RefreshAchievements)

	return &fixture{store: store, catalog: cat, bank: bank, progress: progress, broker: broker}
}

func TestRecordAnswerAwardsPointsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	p, err := f.progress.RecordAnswer(ctx, "bot_001", true)
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalPoints)
	assert.Equal(t, []string{"bot_001"}, p.CompletedQuestions)

	for i := 0; i < 3; i++ {
		p, err = f.progress.RecordAnswer(ctx, "bot_001", true)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, p.TotalPoints)
	assert.Equal(t, []string{"bot_001"}, p.CompletedQuestions)
}

func TestRecordAnswerIncorrectCompletesWithoutPoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	p, err := f.progress.RecordAnswer(ctx, "zoo_001", false)
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalPoints)
	assert.True(t, p.IsCompleted("zoo_001"))

	// a later correct answer does not count
	p, err = f.progress.RecordAnswer(ctx, "zoo_001", true)
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalPoints)
}

func TestRecordAnswerUnknownQuestionIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	p, err := f.progress.RecordAnswer(ctx, "nope", true)
	require.NoError(t, err)
	assert.Empty(t, p.CompletedQuestions)
	assert.Equal(t, 0, p.TotalPoints)

	_, err = f.store.Get(ctx, repository.ProgressKey)
	assert.ErrorIs(t, err, repository.ErrBlobNotFound)
}

func TestRecordAnswerSkipsUntrackedScoreKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	p, err := f.progress.RecordAnswer(ctx, "bot_001", true)
	require.NoError(t, err)

	assert.Equal(t, 2, p.TotalPoints)
	assert.Equal(t, map[string]int{"botany": 0, "zoology": 0, "ecology": 0, "anatomy": 0}, p.Scores)
	assert.NotContains(t, p.Scores, "ботаника")
}

func TestRecordAnswerAddsToExistingScoreKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.bank.AddUserQuestion(ctx, model.UserQuestionRequest{
		Type:     model.TypeTrueFalse,
		Question: "Хлоропласты есть у грибов",
		Theme:    "Botany",
	})
	require.NoError(t, err)
	questions, err := f.bank.UserQuestions(ctx)
	require.NoError(t, err)

	p, err := f.progress.RecordAnswer(ctx, questions[0].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 20, p.TotalPoints)
	assert.Equal(t, 20, p.Scores["botany"])
}

func TestTotalPointsMatchesDistinctCorrectAnswers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	answers := []struct {
		id      string
		correct bool
	}{
		{"bot_001", true}, {"bot_002", false}, {"zoo_001", true}, {"bot_001", true},
		{"ana_002", true}, {"bot_002", true}, {"eco_001", true}, {"zoo_001", false},
	}

	var p *model.UserProgress
	var err error
	prevLen := 0
	for _, a := range answers {
		p, err = f.progress.RecordAnswer(ctx, a.id, a.correct)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(p.CompletedQuestions), prevLen)
		prevLen = len(p.CompletedQuestions)
	}

	// bot_001 2 + zoo_001 2 + ana_002 3 + eco_001 2
	assert.Equal(t, 9, p.TotalPoints)
	assert.Len(t, p.CompletedQuestions, 5)
	assert.LessOrEqual(t, len(p.CompletedQuestions), f.catalog.Len())
}

func TestRecordAnswerPersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{BlobStore: repository.NewMemoryBlobStore()}
	f := newFixture(t, store)

	_, err := f.progress.RecordAnswer(ctx, "bot_001", true)
	require.NoError(t, err)

	store.failPut = true
	_, err = f.progress.RecordAnswer(ctx, "bot_002", true)
	require.Error(t, err)

	p, err := f.progress.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bot_001"}, p.CompletedQuestions)
	assert.Equal(t, 2, p.TotalPoints)
}

func TestProgressSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryBlobStore()

	first := newFixture(t, store)
	_, err := first.progress.RecordAnswer(ctx, "zoo_002", true)
	require.NoError(t, err)
	_, err = first.progress.RecordAnswer(ctx, "eco_002", false)
	require.NoError(t, err)
	before, err := first.progress.GetProgress(ctx)
	require.NoError(t, err)

	second := newFixture(t, store)
	after, err := second.progress.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGetProgressReturnsCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	p, err := f.progress.GetProgress(ctx)
	require.NoError(t, err)
	p.TotalPoints = 1000
	p.Scores["botany"] = 1000

	again, err := f.progress.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.TotalPoints)
	assert.Equal(t, 0, again.Scores["botany"])
}

func TestTopicProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	empty, err := f.progress.TopicProgress(ctx, "Генетика")
	require.NoError(t, err)
	assert.Equal(t, model.TopicProgress{}, empty)

	for _, id := range []string{"eco_001", "eco_002"} {
		_, err := f.progress.RecordAnswer(ctx, id, false)
		require.NoError(t, err)
	}
	full, err := f.progress.TopicProgress(ctx, "ЭКОЛОГИЯ")
	require.NoError(t, err)
	assert.Equal(t, model.TopicProgress{Completed: 2, Total: 2, Percentage: 100}, full)

	_, err = f.bank.AddUserQuestion(ctx, model.UserQuestionRequest{
		Type:     model.TypeOpenAnswer,
		Question: "Что такое сукцессия?",
		Theme:    "Экология",
	})
	require.NoError(t, err)
	partial, err := f.progress.TopicProgress(ctx, "Экология")
	require.NoError(t, err)
	assert.Equal(t, 2, partial.Completed)
	assert.Equal(t, 3, partial.Total)
	assert.InDelta(t, 66.67, partial.Percentage, 0.01)
}

func TestOverallProgressAndChart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.progress.RecordAnswer(ctx, "ana_002", true)
	require.NoError(t, err)

	overall, err := f.progress.OverallProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.OverallProgress{TotalPoints: 3, CompletedQuestions: 1, TotalQuestions: 10, Percentage: 10}, overall)

	chart, err := f.progress.ProgressChart(ctx)
	require.NoError(t, err)
	require.Len(t, chart, 4)
	assert.Equal(t, model.ProgressChartEntry{Topic: "anatomy", Name: "Анатомия", Completed: 1, Total: 2}, chart[3])
	assert.Equal(t, "botany", chart[0].Topic)
	assert.Equal(t, 3, chart[0].Total)
}

func TestPracticeAndUnansweredSets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	assert.Len(t, f.progress.PracticeSet(""), 10)
	assert.Len(t, f.progress.PracticeSet("zoology"), 3)
	assert.Len(t, f.progress.PracticeSet("Зоология"), 3)
	assert.Empty(t, f.progress.PracticeSet("genetics"))

	_, err := f.progress.RecordAnswer(ctx, "bot_003", true)
	require.NoError(t, err)
	unanswered, err := f.progress.UnansweredSet(ctx)
	require.NoError(t, err)
	assert.Len(t, unanswered, 9)
	for _, q := range unanswered {
		assert.NotEqual(t, "bot_003", q.ID)
	}
}

func TestAchievementUnlockIsPublishedOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	for _, id := range []string{"bot_001", "bot_002", "bot_003", "zoo_001"} {
		_, err := f.progress.RecordAnswer(ctx, id, true)
		require.NoError(t, err)
	}
	p, err := f.progress.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"botanist"}, p.Achievements)

	p, err = f.progress.RecordAnswer(ctx, "zoo_002", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first_steps", "botanist"}, p.Achievements)

	_, err = f.progress.RecordAnswer(ctx, "zoo_002", true)
	require.NoError(t, err)

	events := f.broker.events(t, "achievements")
	require.Len(t, events, 2)
	assert.Equal(t, "botanist", events[0].AchievementID)
	assert.Equal(t, "first_steps", events[1].AchievementID)
	assert.Equal(t, 9, events[1].TotalPoints)
}

func TestPublishFailureDoesNotFailAnswer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.broker.err = errors.New("connection refused")

	for _, id := range []string{"bot_001", "bot_002", "bot_003"} {
		_, err := f.progress.RecordAnswer(ctx, id, true)
		require.NoError(t, err)
	}
	p, err := f.progress.GetProgress(ctx)
	require.NoError(t, err)
	assert.Contains(t, p.Achievements, "botanist")
}

func TestUserQuestionsRefreshAchievements(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	for _, id := range []string{"bot_001", "bot_002", "bot_003"} {
		_, err := f.progress.RecordAnswer(ctx, id, true)
		require.NoError(t, err)
	}

	added, err := f.bank.AddUserQuestion(ctx, model.UserQuestionRequest{
		Type:     model.TypeTrueFalse,
		Question: "Мхи относятся к высшим растениям",
		Theme:    "Ботаника",
	})
	require.NoError(t, err)

	p, err := f.progress.GetProgress(ctx)
	require.NoError(t, err)
	assert.NotContains(t, p.Achievements, "botanist")

	require.NoError(t, f.bank.DeleteUserQuestion(ctx, added.ID))
	p, err = f.progress.GetProgress(ctx)
	require.NoError(t, err)
	assert.Contains(t, p.Achievements, "botanist")
}

func TestOverallProgressIgnoresDeletedUserQuestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	added, err := f.bank.AddUserQuestion(ctx, model.UserQuestionRequest{
		Type:     model.TypeOpenAnswer,
		Question: "Назовите органоид фотосинтеза",
		Theme:    "Ботаника",
	})
	require.NoError(t, err)

	for _, q := range f.catalog.All() {
		_, err := f.progress.RecordAnswer(ctx, q.ID, false)
		require.NoError(t, err)
	}
	_, err = f.progress.RecordAnswer(ctx, added.ID, false)
	require.NoError(t, err)

	overall, err := f.progress.OverallProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, overall.CompletedQuestions)
	assert.Equal(t, 11, overall.TotalQuestions)

	require.NoError(t, f.bank.DeleteUserQuestion(ctx, added.ID))

	overall, err = f.progress.OverallProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, overall.CompletedQuestions)
	assert.Equal(t, 10, overall.TotalQuestions)
	assert.Equal(t, float64(100), overall.Percentage)

	// the orphaned id stays in the profile
	p, err := f.progress.GetProgress(ctx)
	require.NoError(t, err)
	assert.Contains(t, p.CompletedQuestions, added.ID)
}

func TestSnapshotMatchesSeparateQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	for _, id := range []string{"zoo_001", "zoo_002", "ana_001"} {
		_, err := f.progress.RecordAnswer(ctx, id, true)
		require.NoError(t, err)
	}

	snapshot, err := f.progress.Snapshot(ctx)
	require.NoError(t, err)

	overall, err := f.progress.OverallProgress(ctx)
	require.NoError(t, err)
	chart, err := f.progress.ProgressChart(ctx)
	require.NoError(t, err)
	achievements, err := f.progress.Achievements(ctx)
	require.NoError(t, err)

	assert.Equal(t, overall, snapshot.Overall)
	assert.Equal(t, chart, snapshot.Chart)
	assert.Equal(t, achievements, snapshot.Achievements)
	assert.Equal(t, 3, snapshot.Overall.CompletedQuestions)
}

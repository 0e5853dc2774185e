package service

import (
	"bio_olymp_backend/internal/model"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func achievementByID(t *testing.T, achievements []model.Achievement, id string) model.Achievement {
	t.Helper()
	for _, a := range achievements {
		if a.ID == id {
			return a
		}
	}
	require.FailNow(t, "achievement not found", id)
	return model.Achievement{}
}

func poolOf(categories ...string) []model.Answerable {
	pool := make([]model.Answerable, 0, len(categories))
	for i, c := range categories {
		pool = append(pool, model.Answerable{ID: fmt.Sprintf("q%d", i), Category: c, Points: 1})
	}
	return pool
}

func TestFirstStepsThreshold(t *testing.T) {
	pool := poolOf("Экология", "Экология", "Экология", "Экология", "Экология", "Экология")

	progress := model.NewUserProgress()
	progress.CompletedQuestions = []string{"q0", "q1", "q2", "q3"}
	a := achievementByID(t, EvaluateAchievements(progress, pool, 0), "first_steps")
	assert.Equal(t, 4, a.CurrentProgress)
	assert.Equal(t, 5, a.Requirement)
	assert.False(t, a.IsUnlocked)

	progress.CompletedQuestions = append(progress.CompletedQuestions, "q4")
	a = achievementByID(t, EvaluateAchievements(progress, pool, 0), "first_steps")
	assert.True(t, a.IsUnlocked)
}

func TestCategoryAchievementNeedsExactCompletion(t *testing.T) {
	progress := model.NewUserProgress()

	// no zoology questions at all
	a := achievementByID(t, EvaluateAchievements(progress, poolOf("Ботаника"), 0), "zoologist")
	assert.Equal(t, 0, a.Requirement)
	assert.False(t, a.IsUnlocked)

	pool := poolOf("Зоология", "зоология", "Ботаника")
	progress.CompletedQuestions = []string{"q0"}
	a = achievementByID(t, EvaluateAchievements(progress, pool, 0), "zoologist")
	assert.Equal(t, 1, a.CurrentProgress)
	assert.Equal(t, 2, a.Requirement)
	assert.False(t, a.IsUnlocked)

	progress.CompletedQuestions = []string{"q0", "q1"}
	a = achievementByID(t, EvaluateAchievements(progress, pool, 0), "zoologist")
	assert.True(t, a.IsUnlocked)

	// a new question in the category locks it again
	pool = append(pool, model.Answerable{ID: "custom_1", Category: "Зоология", Points: 10})
	a = achievementByID(t, EvaluateAchievements(progress, pool, 0), "zoologist")
	assert.False(t, a.IsUnlocked)
}

func TestPointsAndContributorAchievements(t *testing.T) {
	progress := model.NewUserProgress()
	progress.TotalPoints = 499

	achievements := EvaluateAchievements(progress, nil, 2)
	assert.False(t, achievementByID(t, achievements, "points_master").IsUnlocked)
	assert.False(t, achievementByID(t, achievements, "contributor").IsUnlocked)

	progress.TotalPoints = 500
	achievements = EvaluateAchievements(progress, nil, 3)
	assert.True(t, achievementByID(t, achievements, "points_master").IsUnlocked)
	contributor := achievementByID(t, achievements, "contributor")
	assert.True(t, contributor.IsUnlocked)
	assert.Equal(t, 3, contributor.CurrentProgress)

	assert.Equal(t, []string{"points_master", "contributor"}, unlockedIDs(achievements))
}

package service

import (
	"bio_olymp_backend/internal/model"
	"strings"
)

type achievementInput struct {
	progress          *model.UserProgress
	pool              []model.Answerable
	userQuestionCount int
}

type achievementRule struct {
	id          string
	title       string
	description string
	icon        string
	points      int
	// evaluate returns the current progress, the requirement and whether
	// the achievement is unlocked.
	evaluate func(in achievementInput) (int, int, bool)
}

func atLeast(requirement int, metric func(in achievementInput) int) func(in achievementInput) (int, int, bool) {
	return func(in achievementInput) (int, int, bool) {
		current := metric(in)
		return current, requirement, current >= requirement
	}
}

// completedAll unlocks only when every question of the category is
// completed. Category totals move as user questions come and go, so a
// plain >= would unlock too early.
func completedAll(category string) func(in achievementInput) (int, int, bool) {
	return func(in achievementInput) (int, int, bool) {
		completed, total := countCategory(in.progress, in.pool, category)
		return completed, total, total > 0 && completed == total
	}
}

var achievementRules = []achievementRule{
	{
		id:          "first_steps",
		title:       "Первые шаги",
		description: "Решите первые 5 заданий",
		icon:        "🌱",
		points:      10,
		evaluate: atLeast(5, func(in achievementInput) int {
			return len(in.progress.CompletedQuestions)
		}),
	},
	{
		id:          "botanist",
		title:       "Ботаник",
		description: "Изучите все задания по ботанике",
		icon:        "🌿",
		points:      50,
		evaluate:    completedAll("Ботаника"),
	},
	{
		id:          "zoologist",
		title:       "Зоолог",
		description: "Изучите все задания по зоологии",
		icon:        "🦉",
		points:      50,
		evaluate:    completedAll("Зоология"),
	},
	{
		id:          "points_master",
		title:       "Мастер баллов",
		description: "Наберите 500 баллов",
		icon:        "⭐",
		points:      100,
		evaluate: atLeast(500, func(in achievementInput) int {
			return in.progress.TotalPoints
		}),
	},
	{
		id:          "contributor",
		title:       "Составитель",
		description: "Добавьте 3 собственных вопроса",
		icon:        "✍️",
		points:      30,
		evaluate: atLeast(3, func(in achievementInput) int {
			return in.userQuestionCount
		}),
	},
}

// EvaluateAchievements is a pure function of the progress and the question
// pool (catalog plus user questions).
func EvaluateAchievements(progress *model.UserProgress, pool []model.Answerable, userQuestionCount int) []model.Achievement {
	in := achievementInput{progress: progress, pool: pool, userQuestionCount: userQuestionCount}

	result := make([]model.Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		current, requirement, unlocked := rule.evaluate(in)
		result = append(result, model.Achievement{
			ID:              rule.id,
			Title:           rule.title,
			Description:     rule.description,
			Icon:            rule.icon,
			Points:          rule.points,
			CurrentProgress: current,
			Requirement:     requirement,
			IsUnlocked:      unlocked,
		})
	}
	return result
}

func unlockedIDs(achievements []model.Achievement) []string {
	ids := []string{}
	for _, a := range achievements {
		if a.IsUnlocked {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func countCategory(progress *model.UserProgress, pool []model.Answerable, category string) (completed, total int) {
	for _, q := range pool {
		if !strings.EqualFold(q.Category, category) {
			continue
		}
		total++
		if progress.IsCompleted(q.ID) {
			completed++
		}
	}
	return completed, total
}

package service

import (
	"bio_olymp_backend/internal/config"
	"bio_olymp_backend/internal/model"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

const otherQuestionType = "other"

// TypeMatcher guesses a question type from its text.
type TypeMatcher struct {
	Type    string
	Pattern *regexp.Regexp
}

// CompileTypePatterns keeps the configured order; matching is
// case-insensitive.
func CompileTypePatterns(patterns []config.TypePattern) ([]TypeMatcher, error) {
	matchers := make([]TypeMatcher, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("type pattern %q: %w", p.Type, err)
		}
		matchers = append(matchers, TypeMatcher{Type: p.Type, Pattern: re})
	}
	return matchers, nil
}

func detectType(q model.AnalyzableQuestion, matchers []TypeMatcher) string {
	if q.Type != "" {
		return q.Type
	}
	text := strings.ToLower(q.Question)
	for _, m := range matchers {
		if m.Pattern.MatchString(text) {
			return m.Type
		}
	}
	return otherQuestionType
}

func percentOf(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

// AnalyzeQuestionSet returns the five most frequent themes and the share
// of every question type, both in whole percent.
func AnalyzeQuestionSet(questions []model.AnalyzableQuestion, matchers []TypeMatcher) model.QuestionAnalysis {
	total := len(questions)
	if total == 0 {
		return model.QuestionAnalysis{
			TotalQuestions:   0,
			TopThemes:        []model.ThemeShare{},
			TypeDistribution: map[string]int{},
		}
	}

	themeCount := map[string]int{}
	var themeOrder []string
	typeCount := map[string]int{}
	for _, q := range questions {
		if _, seen := themeCount[q.Theme]; !seen {
			themeOrder = append(themeOrder, q.Theme)
		}
		themeCount[q.Theme]++
		typeCount[detectType(q, matchers)]++
	}

	themes := make([]model.ThemeShare, 0, len(themeOrder))
	for _, name := range themeOrder {
		themes = append(themes, model.ThemeShare{
			Name:    name,
			Count:   themeCount[name],
			Percent: percentOf(themeCount[name], total),
		})
	}
	// stable: equal counts keep first-seen order
	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].Count > themes[j].Count
	})
	if len(themes) > 5 {
		themes = themes[:5]
	}

	distribution := make(map[string]int, len(typeCount))
	for t, count := range typeCount {
		distribution[t] = percentOf(count, total)
	}

	return model.QuestionAnalysis{
		TotalQuestions:   total,
		TopThemes:        themes,
		TypeDistribution: distribution,
	}
}

func QuestionSetStats(questions []model.AnalyzableQuestion) model.QuestionSetStats {
	stats := model.QuestionSetStats{
		Total:        len(questions),
		ByDifficulty: map[int]int{1: 0, 2: 0, 3: 0},
		ByTheme:      map[string]int{},
	}
	for _, q := range questions {
		stats.ByDifficulty[q.Difficulty]++
		if q.Source == model.SourceUserAdded {
			stats.BySource.UserAdded++
		} else {
			stats.BySource.Original++
		}
		stats.ByTheme[q.Theme]++
	}
	return stats
}

var catalogDifficulty = map[string]int{"easy": 1, "medium": 2, "hard": 3}

// CatalogAnalyzable exposes a catalog question to the analysis. Catalog
// types do not belong to the user question enumeration, so the type is
// left for the patterns to detect.
func CatalogAnalyzable(q model.Question) model.AnalyzableQuestion {
	return model.AnalyzableQuestion{
		Question:   q.Question,
		Theme:      q.Category,
		Difficulty: catalogDifficulty[q.Difficulty],
	}
}

func UserQuestionAnalyzable(q model.UserQuestion) model.AnalyzableQuestion {
	return model.AnalyzableQuestion{
		Question:   q.Question,
		Theme:      q.Theme,
		Type:       string(q.Type),
		Difficulty: q.Difficulty,
		Source:     q.Source,
	}
}

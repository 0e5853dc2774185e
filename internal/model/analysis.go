package model

type ThemeShare struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

type QuestionAnalysis struct {
	TotalQuestions   int            `json:"totalQuestions"`
	TopThemes        []ThemeShare   `json:"topThemes"`
	TypeDistribution map[string]int `json:"typeDistribution"`
}

type QuestionSetStats struct {
	Total        int            `json:"total"`
	ByDifficulty map[int]int    `json:"byDifficulty"`
	BySource     SourceCounts   `json:"bySource"`
	ByTheme      map[string]int `json:"byTheme"`
}

type SourceCounts struct {
	Original  int `json:"original"`
	UserAdded int `json:"userAdded"`
}

// AnalyzableQuestion is the view of a question used by the analysis;
// Type is empty when the question type is unknown.
type AnalyzableQuestion struct {
	Question   string
	Theme      string
	Type       string
	Difficulty int
	Source     string
}

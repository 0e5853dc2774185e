package model

// UserProgress is the cumulative state of the learner profile.
// CompletedQuestions has set semantics and only grows.
type UserProgress struct {
	CompletedQuestions []string       `json:"completedQuestions"`
	Scores             map[string]int `json:"scores"`
	TotalPoints        int            `json:"totalPoints"`
	Achievements       []string       `json:"achievements"`
}

// DefaultScoreKeys are the only categories whose score is tracked.
var DefaultScoreKeys = []string{"botany", "zoology", "ecology", "anatomy"}

func NewUserProgress() *UserProgress {
	scores := make(map[string]int, len(DefaultScoreKeys))
	for _, key := range DefaultScoreKeys {
		scores[key] = 0
	}
	return &UserProgress{
		CompletedQuestions: []string{},
		Scores:             scores,
		TotalPoints:        0,
		Achievements:       []string{},
	}
}

func (p *UserProgress) IsCompleted(questionID string) bool {
	for _, id := range p.CompletedQuestions {
		if id == questionID {
			return true
		}
	}
	return false
}

func (p *UserProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate tracker state.
func (p *UserProgress) Clone() *UserProgress {
	c := &UserProgress{
		CompletedQuestions: append([]string{}, p.CompletedQuestions...),
		Scores:             make(map[string]int, len(p.Scores)),
		TotalPoints:        p.TotalPoints,
		Achievements:       append([]string{}, p.Achievements...),
	}
	for k, v := range p.Scores {
		c.Scores[k] = v
	}
	return c
}

type TopicProgress struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type OverallProgress struct {
	TotalPoints        int     `json:"totalPoints"`
	CompletedQuestions int     `json:"completedQuestions"`
	TotalQuestions     int     `json:"totalQuestions"`
	Percentage         float64 `json:"percentage"`
}

type ProgressChartEntry struct {
	Topic     string `json:"topic"`
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type AnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	IsCorrect  *bool  `json:"isCorrect" binding:"required"`
}

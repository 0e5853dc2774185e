package model

import "time"

type UserQuestionType string

const (
	TypeMultipleChoice UserQuestionType = "multiple_choice"
	TypeTrueFalse      UserQuestionType = "true_false"
	TypeMatching       UserQuestionType = "matching"
	TypeOpenAnswer     UserQuestionType = "open_answer"
)

const SourceUserAdded = "user-added"

func (t UserQuestionType) Valid() bool {
	switch t {
	case TypeMultipleChoice, TypeTrueFalse, TypeMatching, TypeOpenAnswer:
		return true
	}
	return false
}

// UserQuestion is a question contributed to the local question bank.
// It is never edited after creation.
type UserQuestion struct {
	ID           string           `json:"id"`
	Type         UserQuestionType `json:"type"`
	Question     string           `json:"question"`
	Options      []string         `json:"options"`
	CorrectIndex *int             `json:"correctIndex,omitempty"`
	Theme        string           `json:"theme"`
	Explanation  string           `json:"explanation"`
	Difficulty   int              `json:"difficulty"`
	Source       string           `json:"source,omitempty"`
	Category     string           `json:"category,omitempty"`
	Points       int              `json:"points"`
	CreatedAt    time.Time        `json:"createdAt"`
}

type UserQuestionRequest struct {
	Type         UserQuestionType `json:"type"`
	Question     string           `json:"question"`
	Options      []string         `json:"options"`
	CorrectIndex *int             `json:"correctIndex"`
	Theme        string           `json:"theme"`
	Explanation  string           `json:"explanation"`
	Difficulty   int              `json:"difficulty"`
	Points       int              `json:"points"`
}

package model

type QuestionKind string

const (
	QuestionKindChoice   QuestionKind = "choice"
	QuestionKindMatching QuestionKind = "matching"
	QuestionKindText     QuestionKind = "text"
	QuestionKindImage    QuestionKind = "image"
)

// Question is a record of the static catalog shipped with the trainer.
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionKind `json:"type"`
	Category      string       `json:"category"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer int          `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Points        int          `json:"points"`
	Difficulty    string       `json:"difficulty"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// QuestionSource describes where a catalog question comes from.
type QuestionSource struct {
	Textbook      string   `json:"textbook,omitempty"`
	Olympiad      string   `json:"olympiad,omitempty"`
	Expert        string   `json:"expert,omitempty"`
	Year          int      `json:"year,omitempty"`
	Stage         string   `json:"stage,omitempty"`
	VerifiedBy    string   `json:"verifiedBy,omitempty"`
	RelatedTopics []string `json:"relatedTopics,omitempty"`
}

// Answerable is the part of a question the progress tracker needs.
type Answerable struct {
	ID       string
	Category string
	Points   int
}

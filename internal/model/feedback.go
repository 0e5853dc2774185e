package model

type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
	FeedbackError    FeedbackType = "error"
)

func (t FeedbackType) Valid() bool {
	switch t {
	case FeedbackPositive, FeedbackNegative, FeedbackError:
		return true
	}
	return false
}

// FeedbackRecord is append-only. Timestamp is in Unix milliseconds.
type FeedbackRecord struct {
	QuestionID string       `json:"questionId"`
	Feedback   string       `json:"feedback"`
	Type       FeedbackType `json:"type"`
	Timestamp  int64        `json:"timestamp"`
}

type QuestionStats struct {
	Positive      int  `json:"positive"`
	Negative      int  `json:"negative"`
	Errors        int  `json:"errors"`
	TotalFeedback int  `json:"totalFeedback"`
	Flagged       bool `json:"flagged"`
}

type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusFlagged  VerificationStatus = "flagged"
)

type FeedbackRequest struct {
	QuestionID string       `json:"questionId" binding:"required"`
	Feedback   string       `json:"feedback"`
	Type       FeedbackType `json:"type" binding:"required"`
}

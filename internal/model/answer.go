package model

import "time"

// AnswerType describes the shape of a submitted answer value.
type AnswerType string

// Supported answer types
const (
	AnswerTypeText   AnswerType = "text"
	AnswerTypeNumber AnswerType = "number"
	AnswerTypeChoice AnswerType = "choice"
	AnswerTypeArray  AnswerType = "array"
	AnswerTypeYear   AnswerType = "year"
)

// Valid reports whether t is one of the supported answer types.
func (t AnswerType) Valid() bool {
	switch t {
	case AnswerTypeText, AnswerTypeNumber, AnswerTypeChoice, AnswerTypeArray, AnswerTypeYear:
		return true
	}
	return false
}

// AnswerStatus tracks the processing state of a stored answer.
type AnswerStatus string

// Answer lifecycle states
const (
	AnswerStatusReceived  AnswerStatus = "received"
	AnswerStatusProcessed AnswerStatus = "processed"
	AnswerStatusError     AnswerStatus = "error"
)

// Answer is one supplier's response to one catalog question, plus its
// acknowledgement and processing state. The answer value is a string, a
// number, or a list of choice labels depending on AnswerType.
type Answer struct {
	QuestionID          string               `json:"questionId"`
	Answer              any                  `json:"answer"`
	AnswerType          AnswerType           `json:"answerType"`
	SubmittedAt         time.Time            `json:"submittedAt"`
	AIResponse          string               `json:"aiResponse,omitempty"`
	ResponseGeneratedAt *time.Time           `json:"responseGeneratedAt,omitempty"`
	ConfidenceScore     *ConfidenceScore     `json:"confidenceScore,omitempty"`
	Status              AnswerStatus         `json:"status"`
	Flags               []ContradictionFlag  `json:"flags"`
	ExternalDataSources []string             `json:"externalDataSources,omitempty"`
}

// ConfidenceScore is an enrichment attached to an answer by downstream
// scoring jobs. Nothing in the onboarding flow populates it; it is carried
// for forward compatibility.
type ConfidenceScore struct {
	Score      float64   `json:"score"`
	Reason     string    `json:"reason"`
	DataSource string    `json:"dataSource"`
	Confidence string    `json:"confidence"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ContradictionFlag marks a quality or consistency issue on an answer.
// Structurally defined but never populated by the current flow.
type ContradictionFlag struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Message        string `json:"message"`
	PreviousAnswer any    `json:"previousAnswer,omitempty"`
	CurrentAnswer  any    `json:"currentAnswer,omitempty"`
}

package model

import "time"

// InteractionType classifies a supplier activity event.
type InteractionType string

// Supported interaction types
const (
	InteractionCall    InteractionType = "CALL"
	InteractionEmail   InteractionType = "EMAIL"
	InteractionClose   InteractionType = "CLOSE"
	InteractionMeeting InteractionType = "MEETING"
	InteractionNote    InteractionType = "NOTE"
)

// Valid reports whether t is a known interaction type.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionClose, InteractionMeeting, InteractionNote:
		return true
	}
	return false
}

// Interaction is one free-form activity event appended to a supplier's
// interaction history. Write-only from the API's point of view.
type Interaction struct {
	ActionID      string          `json:"actionId"`
	ActionType    InteractionType `json:"actionType"`
	Timestamp     time.Time       `json:"timestamp"`
	LeadID        string          `json:"leadId,omitempty"`
	CompanyName   string          `json:"companyName,omitempty"`
	ContactPerson string          `json:"contactPerson,omitempty"`
	CallDuration  int             `json:"callDuration,omitempty"`
	CallOutcome   string          `json:"callOutcome,omitempty"`
	EmailSubject  string          `json:"emailSubject,omitempty"`
	DealValue     float64         `json:"dealValue,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Recommendation is a cached per-buyer outreach recommendation payload.
// Cached entries expire 30 days after generation.
type Recommendation struct {
	BuyerID            string  `json:"buyerId"`
	WhyMatter          string  `json:"whyMatter"`
	HowToApproach      string  `json:"howToApproach"`
	PotentialRisks     string  `json:"potentialRisks"`
	SuccessProbability float64 `json:"successProbability"`
	CallScript         string  `json:"callScript,omitempty"`
	EmailTemplate      string  `json:"emailTemplate,omitempty"`
}

// CachedRecommendation wraps a Recommendation with its cache bookkeeping.
type CachedRecommendation struct {
	BuyerID        string         `json:"buyerId"`
	Recommendation Recommendation `json:"recommendation"`
	GeneratedAt    time.Time      `json:"generatedAt"`
	ExpiresAt      time.Time      `json:"expiresAt"`
	LLMModel       string         `json:"llmModel"`
}

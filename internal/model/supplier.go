package model

import "time"

// OnboardingStatus tracks where a supplier is in the questionnaire.
type OnboardingStatus string

// Onboarding lifecycle states. The orchestrator only ever sets in_progress
// and completed; started and paused are driven externally.
const (
	OnboardingNotStarted OnboardingStatus = "not_started"
	OnboardingStarted    OnboardingStatus = "started"
	OnboardingInProgress OnboardingStatus = "in_progress"
	OnboardingCompleted  OnboardingStatus = "completed"
	OnboardingPaused     OnboardingStatus = "paused"
)

// SupplierRecord is the per-supplier identity and profile document.
type SupplierRecord struct {
	SupplierID       string           `json:"supplierId"`
	Email            string           `json:"email"`
	Domain           string           `json:"domain"`
	DisplayName      string           `json:"displayName"`
	EmailVerified    bool             `json:"emailVerified"`
	DomainVerified   bool             `json:"domainVerified"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	OnboardingStatus OnboardingStatus `json:"onboardingStatus"`
	Subscription     *Subscription    `json:"subscription,omitempty"`
	Metadata         SupplierMetadata `json:"metadata"`
}

// SupplierPatch is a partial supplier profile update. Nil fields are left
// untouched by the write.
type SupplierPatch struct {
	Email          *string
	Domain         *string
	DisplayName    *string
	EmailVerified  *bool
	DomainVerified *bool
}

// Subscription describes the supplier's plan, when one exists.
type Subscription struct {
	Tier         string  `json:"tier"`
	MonthlyPrice float64 `json:"monthlyPrice"`
	Status       string  `json:"status"`
	StartDate    string  `json:"startDate"`
}

// SupplierMetadata carries signup provenance and activity tracking.
type SupplierMetadata struct {
	SignupSource string    `json:"signupSource"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

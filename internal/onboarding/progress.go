package onboarding

import (
	"math"

	"github.com/galactly/onboarding-service/internal/model"
)

// Progress summarizes how far a supplier is through the questionnaire.
type Progress struct {
	AnsweredQuestions int                    `json:"answeredQuestions"`
	TotalQuestions    int                    `json:"totalQuestions"`
	PercentComplete   int                    `json:"percentComplete"`
	Status            model.OnboardingStatus `json:"status"`
}

// ComputeProgress derives progress from the stored answer set and the
// supplier record. A missing supplier with zero answers reads as not started.
func ComputeProgress(answers map[string]model.Answer, supplier *model.SupplierRecord) Progress {
	total := TotalQuestions()
	answered := len(answers)
	percent := int(math.Round(float64(answered) / float64(total) * 100))

	status := model.OnboardingNotStarted
	if supplier != nil && supplier.OnboardingStatus != "" {
		status = supplier.OnboardingStatus
	}

	return Progress{
		AnsweredQuestions: answered,
		TotalQuestions:    total,
		PercentComplete:   percent,
		Status:            status,
	}
}

// NextStatus decides the onboarding status transition after an answer is
// saved. Started and paused are driven by the client, never here.
func NextStatus(percent, answered int) (model.OnboardingStatus, bool) {
	switch {
	case percent >= 100:
		return model.OnboardingCompleted, true
	case answered > 0:
		return model.OnboardingInProgress, true
	default:
		return "", false
	}
}

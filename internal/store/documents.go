package store

import (
	"time"

	"github.com/galactly/onboarding-service/internal/model"
)

// answerDocument is the MongoDB schema for one questionnaire answer.
type answerDocument struct {
	SupplierID          string                    `bson:"supplierId"`
	QuestionID          string                    `bson:"questionId"`
	Answer              any                       `bson:"answer"`
	AnswerType          string                    `bson:"answerType"`
	SubmittedAt         time.Time                 `bson:"submittedAt"`
	AIResponse          string                    `bson:"aiResponse,omitempty"`
	ResponseGeneratedAt *time.Time                `bson:"responseGeneratedAt,omitempty"`
	ConfidenceScore     *confidenceScoreDocument  `bson:"confidenceScore,omitempty"`
	Status              string                    `bson:"status"`
	Flags               []contradictionDocument   `bson:"flags"`
	ExternalDataSources []string                  `bson:"externalDataSources,omitempty"`
}

type confidenceScoreDocument struct {
	Score      float64   `bson:"score"`
	Reason     string    `bson:"reason"`
	DataSource string    `bson:"dataSource"`
	Confidence string    `bson:"confidence"`
	ExpiresAt  time.Time `bson:"expiresAt"`
}

type contradictionDocument struct {
	Type           string `bson:"type"`
	Severity       string `bson:"severity"`
	Message        string `bson:"message"`
	PreviousAnswer any    `bson:"previousAnswer,omitempty"`
	CurrentAnswer  any    `bson:"currentAnswer,omitempty"`
}

// supplierDocument is the MongoDB schema for a supplier record.
type supplierDocument struct {
	SupplierID       string                    `bson:"supplierId"`
	Email            string                    `bson:"email,omitempty"`
	Domain           string                    `bson:"domain,omitempty"`
	DisplayName      string                    `bson:"displayName,omitempty"`
	EmailVerified    bool                      `bson:"emailVerified"`
	DomainVerified   bool                      `bson:"domainVerified"`
	CreatedAt        time.Time                 `bson:"createdAt"`
	UpdatedAt        time.Time                 `bson:"updatedAt"`
	OnboardingStatus string                    `bson:"onboardingStatus"`
	Subscription     *subscriptionDocument     `bson:"subscription,omitempty"`
	Metadata         *supplierMetadataDocument `bson:"metadata,omitempty"`
}

type subscriptionDocument struct {
	Tier         string  `bson:"tier"`
	MonthlyPrice float64 `bson:"monthlyPrice"`
	Status       string  `bson:"status"`
	StartDate    string  `bson:"startDate"`
}

type supplierMetadataDocument struct {
	SignupSource string    `bson:"signupSource,omitempty"`
	LastActiveAt time.Time `bson:"lastActiveAt,omitempty"`
}

// interactionDocument is the MongoDB schema for a logged sales interaction.
type interactionDocument struct {
	SupplierID    string    `bson:"supplierId"`
	ActionID      string    `bson:"actionId"`
	ActionType    string    `bson:"actionType"`
	Timestamp     time.Time `bson:"timestamp"`
	LeadID        string    `bson:"leadId,omitempty"`
	CompanyName   string    `bson:"companyName,omitempty"`
	ContactPerson string    `bson:"contactPerson,omitempty"`
	CallDuration  int       `bson:"callDuration,omitempty"`
	CallOutcome   string    `bson:"callOutcome,omitempty"`
	EmailSubject  string    `bson:"emailSubject,omitempty"`
	DealValue     float64   `bson:"dealValue,omitempty"`
	Notes         string    `bson:"notes,omitempty"`
}

// recommendationDocument caches one generated buyer recommendation.
type recommendationDocument struct {
	SupplierID         string    `bson:"supplierId"`
	BuyerID            string    `bson:"buyerId"`
	WhyMatter          string    `bson:"whyMatter"`
	HowToApproach      string    `bson:"howToApproach"`
	PotentialRisks     string    `bson:"potentialRisks"`
	SuccessProbability float64   `bson:"successProbability"`
	CallScript         string    `bson:"callScript,omitempty"`
	EmailTemplate      string    `bson:"emailTemplate,omitempty"`
	GeneratedAt        time.Time `bson:"generatedAt"`
	ExpiresAt          time.Time `bson:"expiresAt"`
	LLMModel           string    `bson:"llmModel,omitempty"`
}

func answerFromDocument(doc answerDocument) model.Answer {
	answer := model.Answer{
		QuestionID:          doc.QuestionID,
		Answer:              doc.Answer,
		AnswerType:          model.AnswerType(doc.AnswerType),
		SubmittedAt:         doc.SubmittedAt,
		AIResponse:          doc.AIResponse,
		ResponseGeneratedAt: doc.ResponseGeneratedAt,
		Status:              model.AnswerStatus(doc.Status),
		ExternalDataSources: doc.ExternalDataSources,
	}
	if doc.ConfidenceScore != nil {
		answer.ConfidenceScore = &model.ConfidenceScore{
			Score:      doc.ConfidenceScore.Score,
			Reason:     doc.ConfidenceScore.Reason,
			DataSource: doc.ConfidenceScore.DataSource,
			Confidence: doc.ConfidenceScore.Confidence,
			ExpiresAt:  doc.ConfidenceScore.ExpiresAt,
		}
	}
	for _, flag := range doc.Flags {
		answer.Flags = append(answer.Flags, model.ContradictionFlag{
			Type:           flag.Type,
			Severity:       flag.Severity,
			Message:        flag.Message,
			PreviousAnswer: flag.PreviousAnswer,
			CurrentAnswer:  flag.CurrentAnswer,
		})
	}
	return answer
}

// supplierPatchToSet builds the $set document for a partial profile write.
// updatedAt is always stamped, matching the merge semantics of the store.
func supplierPatchToSet(patch model.SupplierPatch, now time.Time) map[string]any {
	set := map[string]any{"updatedAt": now}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Domain != nil {
		set["domain"] = *patch.Domain
	}
	if patch.DisplayName != nil {
		set["displayName"] = *patch.DisplayName
	}
	if patch.EmailVerified != nil {
		set["emailVerified"] = *patch.EmailVerified
	}
	if patch.DomainVerified != nil {
		set["domainVerified"] = *patch.DomainVerified
	}
	return set
}

func supplierFromDocument(doc supplierDocument) *model.SupplierRecord {
	record := &model.SupplierRecord{
		SupplierID:       doc.SupplierID,
		Email:            doc.Email,
		Domain:           doc.Domain,
		DisplayName:      doc.DisplayName,
		EmailVerified:    doc.EmailVerified,
		DomainVerified:   doc.DomainVerified,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
		OnboardingStatus: model.OnboardingStatus(doc.OnboardingStatus),
	}
	if doc.Subscription != nil {
		record.Subscription = &model.Subscription{
			Tier:         doc.Subscription.Tier,
			MonthlyPrice: doc.Subscription.MonthlyPrice,
			Status:       doc.Subscription.Status,
			StartDate:    doc.Subscription.StartDate,
		}
	}
	if doc.Metadata != nil {
		record.Metadata = model.SupplierMetadata{
			SignupSource: doc.Metadata.SignupSource,
			LastActiveAt: doc.Metadata.LastActiveAt,
		}
	}
	return record
}

func interactionToDocument(supplierID, actionID string, interaction model.Interaction) interactionDocument {
	return interactionDocument{
		SupplierID:    supplierID,
		ActionID:      actionID,
		ActionType:    string(interaction.ActionType),
		Timestamp:     interaction.Timestamp,
		LeadID:        interaction.LeadID,
		CompanyName:   interaction.CompanyName,
		ContactPerson: interaction.ContactPerson,
		CallDuration:  interaction.CallDuration,
		CallOutcome:   interaction.CallOutcome,
		EmailSubject:  interaction.EmailSubject,
		DealValue:     interaction.DealValue,
		Notes:         interaction.Notes,
	}
}

// expired reports whether the cached entry is past its expiry at now.
func (d recommendationDocument) expired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}

func recommendationFromDocument(doc recommendationDocument) *model.CachedRecommendation {
	return &model.CachedRecommendation{
		BuyerID: doc.BuyerID,
		Recommendation: model.Recommendation{
			BuyerID:            doc.BuyerID,
			WhyMatter:          doc.WhyMatter,
			HowToApproach:      doc.HowToApproach,
			PotentialRisks:     doc.PotentialRisks,
			SuccessProbability: doc.SuccessProbability,
			CallScript:         doc.CallScript,
			EmailTemplate:      doc.EmailTemplate,
		},
		GeneratedAt: doc.GeneratedAt,
		ExpiresAt:   doc.ExpiresAt,
		LLMModel:    doc.LLMModel,
	}
}

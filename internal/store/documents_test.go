package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galactly/onboarding-service/internal/model"
)

func TestAnswerFromDocument(t *testing.T) {
	generatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := answerDocument{
		SupplierID:          "sup-1",
		QuestionID:          "q1",
		Answer:              "boxes",
		AnswerType:          "choice",
		SubmittedAt:         generatedAt.Add(-time.Second),
		AIResponse:          "Noted.",
		ResponseGeneratedAt: &generatedAt,
		Status:              "processed",
		ConfidenceScore: &confidenceScoreDocument{
			Score:      0.9,
			Reason:     "domain age verified",
			DataSource: "enrichment",
			Confidence: "high",
		},
		ExternalDataSources: []string{"clearbit"},
	}

	answer := answerFromDocument(doc)
	assert.Equal(t, "q1", answer.QuestionID)
	assert.Equal(t, "boxes", answer.Answer)
	assert.Equal(t, "Noted.", answer.AIResponse)
	require.NotNil(t, answer.ConfidenceScore)
	assert.InDelta(t, 0.9, answer.ConfidenceScore.Score, 1e-9)
	assert.Equal(t, []string{"clearbit"}, answer.ExternalDataSources)
}

func TestSupplierPatchToSet(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("empty patch only stamps updatedAt", func(t *testing.T) {
		set := supplierPatchToSet(model.SupplierPatch{}, now)
		assert.Equal(t, map[string]any{"updatedAt": now}, set)
	})

	t.Run("set fields are written, absent fields are not", func(t *testing.T) {
		email := "owner@mill.example"
		verified := true
		set := supplierPatchToSet(model.SupplierPatch{
			Email:         &email,
			EmailVerified: &verified,
		}, now)

		assert.Equal(t, "owner@mill.example", set["email"])
		assert.Equal(t, true, set["emailVerified"])
		assert.Equal(t, now, set["updatedAt"])
		assert.NotContains(t, set, "domain")
		assert.NotContains(t, set, "displayName")
		assert.NotContains(t, set, "domainVerified")
	})

	t.Run("zero values are still written when set", func(t *testing.T) {
		name := ""
		verified := false
		set := supplierPatchToSet(model.SupplierPatch{
			DisplayName:    &name,
			DomainVerified: &verified,
		}, now)

		assert.Equal(t, "", set["displayName"])
		assert.Equal(t, false, set["domainVerified"])
	})
}

func TestRecommendationDocument_Expired(t *testing.T) {
	now := time.Now().UTC()
	doc := recommendationDocument{ExpiresAt: now.Add(recommendationTTL)}

	assert.False(t, doc.expired(now), "a fresh entry must be servable")
	assert.False(t, doc.expired(now.Add(recommendationTTL)), "expiry boundary is inclusive")
	assert.True(t, doc.expired(now.Add(recommendationTTL+time.Second)), "a stale entry must read as absent")
}

func TestRecommendationFromDocument(t *testing.T) {
	now := time.Now().UTC()
	doc := recommendationDocument{
		SupplierID:         "sup-1",
		BuyerID:            "buyer-9",
		WhyMatter:          "Expanding into your region",
		SuccessProbability: 0.4,
		GeneratedAt:        now,
		ExpiresAt:          now.Add(recommendationTTL),
		LLMModel:           "gemini-1.5-pro",
	}

	cached := recommendationFromDocument(doc)
	assert.Equal(t, "buyer-9", cached.BuyerID)
	assert.Equal(t, "buyer-9", cached.Recommendation.BuyerID)
	assert.Equal(t, "Expanding into your region", cached.Recommendation.WhyMatter)
	assert.Equal(t, doc.ExpiresAt, cached.ExpiresAt)
}

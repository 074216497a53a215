package onboarding

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResearchAcknowledgement_SegmentBuckets(t *testing.T) {
	tests := []struct {
		name     string
		answer   any
		contains string
	}{
		{"boxes", "boxes", "corrugated or folding box manufacturing"},
		{"film", "film", "flexible packaging"},
		{"laminates", "laminates", "Laminate manufacturing"},
		{"labels", "labels", "Label manufacturing"},
		{"other", "other", "secondary packaging segments"},
		{"unknown value falls back", "widgets", "growth industry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ResearchAcknowledgement("q1", tt.answer)
			assert.Contains(t, r.Response, tt.contains)
			assert.NotEmpty(t, r.Reasoning)
		})
	}
}

func TestResearchAcknowledgement_FoundedYearBuckets(t *testing.T) {
	year := time.Now().Year()

	t.Run("startup under two years", func(t *testing.T) {
		r := ResearchAcknowledgement("q2", float64(year))
		assert.Contains(t, r.Response, "startup")
	})

	t.Run("growth stage", func(t *testing.T) {
		r := ResearchAcknowledgement("q2", float64(year-5))
		assert.Contains(t, r.Response, "growth stage")
	})

	t.Run("established", func(t *testing.T) {
		r := ResearchAcknowledgement("q2", float64(year-20))
		assert.Contains(t, r.Response, "established")
	})

	t.Run("year given as string", func(t *testing.T) {
		r := ResearchAcknowledgement("q2", strconv.Itoa(year-5))
		assert.Contains(t, r.Response, "growth stage")
	})

	t.Run("unparseable year reads as established", func(t *testing.T) {
		r := ResearchAcknowledgement("q2", "a while ago")
		assert.Contains(t, r.Response, "established")
	})

	t.Run("year with trailing text takes the leading number", func(t *testing.T) {
		r := ResearchAcknowledgement("q2", strconv.Itoa(year-5)+" roughly")
		assert.Contains(t, r.Response, "growth stage")
	})
}

func TestResearchAcknowledgement_CustomerVolumeBuckets(t *testing.T) {
	assert.Contains(t, ResearchAcknowledgement("q3", "low_volume").Response, "fewer than 50 customers")
	assert.Contains(t, ResearchAcknowledgement("q3", "medium_volume").Response, "50-150 customers")
	assert.Contains(t, ResearchAcknowledgement("q3", "high_volume").Response, "150+")
	assert.Contains(t, ResearchAcknowledgement("q3", "nonsense").Response, "customer volume")
}

func TestResearchAcknowledgement_PainPointBuckets(t *testing.T) {
	assert.Contains(t, ResearchAcknowledgement("q6", "finding_buyers").Response, "#1 pain")
	assert.Contains(t, ResearchAcknowledgement("q6", "margins").Response, "Margins are tight")
	assert.Contains(t, ResearchAcknowledgement("q6", "operational").Response, "Operational pain")
	assert.Contains(t, ResearchAcknowledgement("q6", "retention").Response, "silent killer")
	assert.Contains(t, ResearchAcknowledgement("q6", "other").Response, "specific pain")
}

func TestResearchAcknowledgement_ChannelMembership(t *testing.T) {
	t.Run("cold calling plus email takes priority", func(t *testing.T) {
		r := ResearchAcknowledgement("q7", []any{"cold_calling", "email", "linkedin"})
		assert.Contains(t, r.Response, "classic approach")
	})

	t.Run("linkedin alone", func(t *testing.T) {
		r := ResearchAcknowledgement("q7", []any{"linkedin"})
		assert.Contains(t, r.Response, "LinkedIn is your highest-leverage channel")
	})

	t.Run("anything else gets generic channel advice", func(t *testing.T) {
		r := ResearchAcknowledgement("q7", []any{"events"})
		assert.Contains(t, r.Response, "pick ONE channel")
	})

	t.Run("scalar answer treated as single membership", func(t *testing.T) {
		r := ResearchAcknowledgement("q7", "linkedin")
		assert.Contains(t, r.Response, "LinkedIn")
	})
}

func TestResearchAcknowledgement_MonthlyClosesBuckets(t *testing.T) {
	assert.Contains(t, ResearchAcknowledgement("q9", float64(1)).Response, "below 2/month")
	assert.Contains(t, ResearchAcknowledgement("q9", float64(3)).Response, "healthy baseline")
	assert.Contains(t, ResearchAcknowledgement("q9", float64(8)).Response, "5+ closes per month")
	assert.Contains(t, ResearchAcknowledgement("q9", "3 per month").Response, "healthy baseline",
		"trailing text after the number must not change the bucket")
}

func TestResearchAcknowledgement_CloseRateBuckets(t *testing.T) {
	tests := []struct {
		name     string
		answer   any
		contains string
	}{
		{"decimal rate below ten percent", 0.05, "below 10%"},
		{"decimal rate mid band", 0.15, "10-25%"},
		{"decimal rate top band", 0.3, "above 25%"},
		{"whole number treated as percentage", float64(15), "10-25%"},
		{"whole number top band", float64(30), "above 25%"},
		{"string rate with decimal point", "0.2", "10-25%"},
		{"decimal rate with trailing text", "0.15 approx", "10-25%"},
		{"whole number with trailing text lands in the final bucket", "15 percent", "above 25%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ResearchAcknowledgement("q10", tt.answer)
			assert.Contains(t, r.Response, tt.contains)
		})
	}
}

func TestResearchAcknowledgement_DefaultForUntabledQuestions(t *testing.T) {
	r := ResearchAcknowledgement("q13", "yes_integrate")
	assert.Equal(t, "Thank you for that answer. We're gathering insights about your business to personalize recommendations.", r.Response)
}

func TestResearchAcknowledgement_NeverEmpty(t *testing.T) {
	// Every response-bearing question must produce text for any input.
	inputs := []any{nil, "", "garbage", float64(-1), []any{}, map[string]any{"k": "v"}}
	for _, q := range Questions() {
		if !q.HasAIResponse {
			continue
		}
		for _, in := range inputs {
			r := ResearchAcknowledgement(q.ID, in)
			require.NotEmpty(t, strings.TrimSpace(r.Response), "question %s input %v", q.ID, in)
		}
	}
}

// Package onboarding implements the supplier questionnaire: the question
// catalog, the research acknowledgement tables, progress calculation, and
// the submit-answer orchestration.
package onboarding

import "github.com/galactly/onboarding-service/internal/model"

// Question is one entry of the onboarding questionnaire.
type Question struct {
	ID            string           `json:"id"`
	Number        int              `json:"number"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	AnswerType    model.AnswerType `json:"answerType"`
	Choices       []string         `json:"choices,omitempty"`
	HasAIResponse bool             `json:"hasAIResponse"`
}

// acknowledgedQuestions is the set of questions that get an acknowledgement
// attached to their answer. Kept as one explicit set so the catalog below
// stays the single source of question definitions.
var acknowledgedQuestions = map[string]bool{
	"q1":  true,
	"q2":  true,
	"q3":  true,
	"q6":  true,
	"q7":  true,
	"q9":  true,
	"q10": true,
	"q13": true,
}

// questions is the canonical ordered catalog. Immutable at run time.
var questions = buildCatalog([]Question{
	{
		ID:          "q1",
		Number:      1,
		Title:       "What is your primary product?",
		Description: "What type of secondary packaging do you manufacture?",
		AnswerType:  model.AnswerTypeChoice,
		Choices:     []string{"boxes", "film", "laminates", "labels", "other"},
	},
	{
		ID:          "q2",
		Number:      2,
		Title:       "When was your business founded?",
		Description: "What year did your company start operations?",
		AnswerType:  model.AnswerTypeYear,
	},
	{
		ID:          "q3",
		Number:      3,
		Title:       "How many active customers do you have?",
		Description: "Approximately how many unique customers do you invoice monthly?",
		AnswerType:  model.AnswerTypeChoice,
		Choices:     []string{"low_volume", "medium_volume", "high_volume"},
	},
	{
		ID:          "q4",
		Number:      4,
		Title:       "What percentage of revenue comes from your top 3 customers?",
		Description: "What is your customer concentration? (0-100%)",
		AnswerType:  model.AnswerTypeNumber,
	},
	{
		ID:          "q5",
		Number:      5,
		Title:       "What is your annual revenue?",
		Description: "Approximate annual revenue?",
		AnswerType:  model.AnswerTypeChoice,
		Choices:     []string{"under_500k", "500k_1m", "1m_3m", "3m_5m", "5m_10m", "over_10m"},
	},
	{
		ID:          "q6",
		Number:      6,
		Title:       "What is your biggest pain point?",
		Description: "What is holding back your growth the most?",
		AnswerType:  model.AnswerTypeChoice,
		Choices:     []string{"finding_buyers", "margins", "operational", "retention"},
	},
	{
		ID:          "q7",
		Number:      7,
		Title:       "What sales methods have you tried?",
		Description: "Select all that apply",
		AnswerType:  model.AnswerTypeArray,
		Choices:     []string{"cold_calling", "email", "linkedin", "events", "referrals", "other"},
	},
	{
		ID:          "q8",
		Number:      8,
		Title:       "How many outreach attempts per month?",
		Description: "How many conversations do you initiate with prospects monthly?",
		AnswerType:  model.AnswerTypeNumber,
	},
	{
		ID:          "q9",
		Number:      9,
		Title:       "How many customers do you close per month?",
		Description: "Average number of new customers per month",
		AnswerType:  model.AnswerTypeNumber,
	},
	{
		ID:          "q10",
		Number:      10,
		Title:       "What is your close rate?",
		Description: "Percentage of conversations that result in a sale (e.g., 0.15 for 15%)",
		AnswerType:  model.AnswerTypeNumber,
	},
	{
		ID:          "q11",
		Number:      11,
		Title:       "How are you addressing your main pain?",
		Description: "What approaches are you trying?",
		AnswerType:  model.AnswerTypeChoice,
		Choices:     []string{"data_driven", "networking", "marketing", "operational", "other"},
	},
	{
		ID:          "q12",
		Number:      12,
		Title:       "What methods have NOT worked?",
		Description: "Select all that have failed",
		AnswerType:  model.AnswerTypeArray,
		Choices:     []string{"cold_calling", "email", "linkedin", "events", "referrals", "marketing"},
	},
	{
		ID:          "q13",
		Number:      13,
		Title:       "What is your operational maturity?",
		Description: "How established is your production and fulfillment?",
		AnswerType:  model.AnswerTypeChoice,
		Choices:     []string{"high", "medium", "lower"},
	},
	{
		ID:          "q14",
		Number:      14,
		Title:       "What is your tech stack?",
		Description: "What systems do you use for operations?",
		AnswerType:  model.AnswerTypeText,
	},
	{
		ID:          "q15",
		Number:      15,
		Title:       "What is your API capability?",
		Description: "Can you integrate with external systems via APIs?",
		AnswerType:  model.AnswerTypeChoice,
		Choices:     []string{"yes_easy", "yes_with_dev", "limited", "no"},
	},
	{
		ID:          "q16",
		Number:      16,
		Title:       "What is your order frequency?",
		Description: "How often do existing customers order?",
		AnswerType:  model.AnswerTypeChoice,
		Choices:     []string{"daily", "weekly", "monthly", "quarterly", "varied"},
	},
	{
		ID:          "q17",
		Number:      17,
		Title:       "What is your lead time flexibility?",
		Description: "How quickly can you fulfill custom orders?",
		AnswerType:  model.AnswerTypeChoice,
		Choices:     []string{"1_week", "2_3_weeks", "1_month", "2_3_months", "varies"},
	},
})

func buildCatalog(qs []Question) []Question {
	for i := range qs {
		qs[i].HasAIResponse = acknowledgedQuestions[qs[i].ID]
	}
	return qs
}

// Questions returns the full catalog in display order.
func Questions() []Question {
	return questions
}

// TotalQuestions is the fixed catalog size.
func TotalQuestions() int {
	return len(questions)
}

// QuestionByID looks up a catalog entry. The second return value is false
// for unknown ids.
func QuestionByID(id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// NextUnanswered scans the catalog in display order and returns the first
// question whose id is absent from answered, or nil when every question
// has an answer.
func NextUnanswered(answered map[string]model.Answer) *Question {
	for i := range questions {
		if _, ok := answered[questions[i].ID]; !ok {
			return &questions[i]
		}
	}
	return nil
}

package onboarding

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/galactly/onboarding-service/internal/llm"
	"github.com/galactly/onboarding-service/internal/model"
)

// ErrUnknownQuestion is returned when a submitted question id is not part of
// the questionnaire. Nothing is persisted in that case.
var ErrUnknownQuestion = errors.New("unknown question id")

// Store persists answers and supplier state. Implemented by the mongo store.
type Store interface {
	SaveAnswer(ctx context.Context, supplierID string, answer model.Answer) error
	AllAnswers(ctx context.Context, supplierID string) (map[string]model.Answer, error)
	Supplier(ctx context.Context, supplierID string) (*model.SupplierRecord, error)
	UpdateOnboardingStatus(ctx context.Context, supplierID string, status model.OnboardingStatus) error
}

// Generator produces a free-form acknowledgement. Nil when the paid tier is
// disabled.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	SourceResearch = "research"
	SourceVertexAI = "vertex_ai"
)

// Acknowledgement is the response text attached to an answer, with its origin.
type Acknowledgement struct {
	Response    string
	GeneratedAt time.Time
	Source      string
}

// SubmitResult is everything the submit endpoint reports back after an
// answer is accepted.
type SubmitResult struct {
	QuestionID         string
	Acknowledgement    *Acknowledgement
	Progress           Progress
	NextQuestion       *Question
	OnboardingComplete bool
	UsedFallback       bool
}

// Service orchestrates answer submission: response selection, persistence,
// progress computation and status transitions.
type Service struct {
	store      Store
	generator  Generator
	guardrails bool
	logger     *zap.Logger
}

func NewService(store Store, generator Generator, guardrails bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      store,
		generator:  generator,
		guardrails: guardrails,
		logger:     logger,
	}
}

// SubmitAnswer validates and persists one answer, picks the acknowledgement
// for it, then recomputes the supplier's progress. The answer and its
// acknowledgement are written in a single store operation.
func (s *Service) SubmitAnswer(ctx context.Context, supplierID, questionID string, answer any, answerType model.AnswerType) (*SubmitResult, error) {
	question, ok := QuestionByID(questionID)
	if !ok {
		return nil, ErrUnknownQuestion
	}
	if answerType == "" {
		answerType = question.AnswerType
	}

	now := time.Now().UTC()
	record := model.Answer{
		QuestionID:  questionID,
		Answer:      answer,
		AnswerType:  answerType,
		SubmittedAt: now,
		Status:      model.AnswerStatusReceived,
	}

	var ack *Acknowledgement
	usedFallback := false
	if question.HasAIResponse {
		text, source, fallback := s.acknowledge(ctx, question, answer, answerType)
		usedFallback = fallback
		generatedAt := time.Now().UTC()
		ack = &Acknowledgement{Response: text, GeneratedAt: generatedAt, Source: source}
		record.AIResponse = text
		record.ResponseGeneratedAt = &generatedAt
		record.Status = model.AnswerStatusProcessed
	}

	if err := s.store.SaveAnswer(ctx, supplierID, record); err != nil {
		return nil, err
	}

	answers, err := s.store.AllAnswers(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	supplier, err := s.store.Supplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	progress := ComputeProgress(answers, supplier)
	if status, transition := NextStatus(progress.PercentComplete, progress.AnsweredQuestions); transition {
		if err := s.store.UpdateOnboardingStatus(ctx, supplierID, status); err != nil {
			return nil, err
		}
		progress.Status = status
	}

	result := &SubmitResult{
		QuestionID:         questionID,
		Acknowledgement:    ack,
		Progress:           progress,
		NextQuestion:       NextUnanswered(answers),
		OnboardingComplete: progress.PercentComplete >= 100,
		UsedFallback:       usedFallback,
	}

	s.logger.Info("answer submitted",
		zap.String("supplier_id", supplierID),
		zap.String("question_id", questionID),
		zap.Int("percent_complete", progress.PercentComplete),
		zap.Bool("onboarding_complete", result.OnboardingComplete))

	return result, nil
}

// acknowledge picks the acknowledgement text for a response-bearing question.
// When the generative tier is unavailable or fails, the answer still goes
// through with a safe static text.
func (s *Service) acknowledge(ctx context.Context, question Question, answer any, answerType model.AnswerType) (text, source string, fallback bool) {
	if s.generator == nil {
		return ResearchAcknowledgement(question.ID, answer).Response, SourceResearch, false
	}

	prompt := llm.BuildAnswerPrompt(question.ID, string(answerType), answer, s.guardrails)
	generated, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("acknowledgement generation failed, using fallback",
			zap.String("question_id", question.ID),
			zap.Error(err))
		return llm.FallbackText, SourceVertexAI, true
	}
	return generated, SourceVertexAI, false
}

// Progress reports a supplier's questionnaire progress alongside the
// supplier record, which may be nil if nothing has been saved yet.
func (s *Service) Progress(ctx context.Context, supplierID string) (Progress, *model.SupplierRecord, error) {
	answers, err := s.store.AllAnswers(ctx, supplierID)
	if err != nil {
		return Progress{}, nil, err
	}
	supplier, err := s.store.Supplier(ctx, supplierID)
	if err != nil {
		return Progress{}, nil, err
	}
	return ComputeProgress(answers, supplier), supplier, nil
}

// AllAnswers returns every stored answer for a supplier keyed by question id.
func (s *Service) AllAnswers(ctx context.Context, supplierID string) (map[string]model.Answer, Progress, error) {
	answers, err := s.store.AllAnswers(ctx, supplierID)
	if err != nil {
		return nil, Progress{}, err
	}
	supplier, err := s.store.Supplier(ctx, supplierID)
	if err != nil {
		return nil, Progress{}, err
	}
	return answers, ComputeProgress(answers, supplier), nil
}

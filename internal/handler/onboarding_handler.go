package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/galactly/onboarding-service/internal/model"
	"github.com/galactly/onboarding-service/internal/onboarding"
	"github.com/galactly/onboarding-service/pkg/logger"
	"github.com/galactly/onboarding-service/prometheus"
)

// SubmitAnswerRequest is the body for answer submissions. Answer stays raw
// so an explicit null or false is distinguishable from an absent field.
type SubmitAnswerRequest struct {
	SupplierID string          `json:"supplierId"`
	QuestionID string          `json:"questionId"`
	Answer     json.RawMessage `json:"answer"`
	AnswerType string          `json:"answerType"`
}

// OnboardingHandler serves the questionnaire endpoints.
type OnboardingHandler struct {
	service *onboarding.Service
}

func NewOnboardingHandler(service *onboarding.Service) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// ListQuestions returns the full questionnaire in order.
func (h *OnboardingHandler) ListQuestions(c echo.Context) error {
	prometheus.RecordOnboardingOperation("list_questions")

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"totalQuestions": onboarding.TotalQuestions(),
		"questions":      onboarding.Questions(),
	})
}

// SubmitAnswer validates and persists one answer and returns the
// acknowledgement plus updated progress.
func (h *OnboardingHandler) SubmitAnswer(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOnboardingOperation("submit_answer")

	var req SubmitAnswerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.ValidationErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid request data",
		})
	}

	if req.SupplierID == "" || req.QuestionID == "" || len(req.Answer) == 0 {
		log.Warn("Missing required fields",
			zap.String("supplier_id", req.SupplierID),
			zap.String("question_id", req.QuestionID))
		prometheus.ValidationErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "supplierId, questionId, and answer are required",
		})
	}

	var answer any
	if err := json.Unmarshal(req.Answer, &answer); err != nil {
		log.Warn("Malformed answer value", zap.Error(err))
		prometheus.ValidationErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "answer is not valid JSON",
		})
	}

	result, err := h.service.SubmitAnswer(c.Request().Context(), req.SupplierID, req.QuestionID, answer, model.AnswerType(req.AnswerType))
	if errors.Is(err, onboarding.ErrUnknownQuestion) {
		log.Warn("Unknown question id", zap.String("question_id", req.QuestionID))
		prometheus.ValidationErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Unknown question id",
			"details": req.QuestionID,
		})
	}
	if err != nil {
		log.Error("Failed to submit answer",
			zap.String("supplier_id", req.SupplierID),
			zap.String("question_id", req.QuestionID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Failed to submit answer",
			"details": err.Error(),
		})
	}

	prometheus.AnswerSubmissionsCounter.WithLabelValues(req.QuestionID).Inc()

	var aiResponse any
	if result.Acknowledgement != nil {
		prometheus.AcknowledgementsCounter.WithLabelValues(result.Acknowledgement.Source).Inc()
		if result.UsedFallback {
			prometheus.LLMFallbacksCounter.Inc()
		}
		aiResponse = echo.Map{
			"response":    result.Acknowledgement.Response,
			"generatedAt": result.Acknowledgement.GeneratedAt,
			"source":      result.Acknowledgement.Source,
		}
	}

	var nextQuestion any
	if result.NextQuestion != nil {
		nextQuestion = echo.Map{
			"id":     result.NextQuestion.ID,
			"number": result.NextQuestion.Number,
			"title":  result.NextQuestion.Title,
		}
	}

	if result.OnboardingComplete {
		prometheus.OnboardingCompletedCounter.Inc()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":            true,
		"questionId":         result.QuestionID,
		"aiResponse":         aiResponse,
		"progress":           result.Progress,
		"nextQuestion":       nextQuestion,
		"onboardingComplete": result.OnboardingComplete,
	})
}

// GetProgress reports questionnaire progress for a supplier.
func (h *OnboardingHandler) GetProgress(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOnboardingOperation("get_progress")

	supplierID := c.Param("supplierId")
	progress, supplier, err := h.service.Progress(c.Request().Context(), supplierID)
	if err != nil {
		log.Error("Failed to load progress",
			zap.String("supplier_id", supplierID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Failed to get progress",
			"details": err.Error(),
		})
	}

	var supplierInfo any
	if supplier != nil {
		supplierInfo = echo.Map{
			"email":       supplier.Email,
			"displayName": supplier.DisplayName,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"supplierId": supplierID,
		"progress":   progress,
		"supplier":   supplierInfo,
	})
}

// GetAllAnswers returns every stored answer for a supplier.
func (h *OnboardingHandler) GetAllAnswers(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOnboardingOperation("get_all_answers")

	supplierID := c.Param("supplierId")
	answers, progress, err := h.service.AllAnswers(c.Request().Context(), supplierID)
	if err != nil {
		log.Error("Failed to load answers",
			zap.String("supplier_id", supplierID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Failed to get answers",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"supplierId":    supplierID,
		"answers":       answers,
		"progress":      progress,
		"totalAnswered": len(answers),
	})
}

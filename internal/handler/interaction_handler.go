package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/galactly/onboarding-service/internal/model"
	"github.com/galactly/onboarding-service/pkg/logger"
	"github.com/galactly/onboarding-service/prometheus"
)

// InteractionStore is the persistence surface for interaction and
// recommendation endpoints.
type InteractionStore interface {
	LogInteraction(ctx context.Context, supplierID string, interaction model.Interaction) (string, error)
	CacheRecommendation(ctx context.Context, supplierID string, rec model.Recommendation, llmModel string) (*model.CachedRecommendation, error)
	Recommendation(ctx context.Context, supplierID, buyerID string) (*model.CachedRecommendation, error)
}

// InteractionHandler serves the supplier activity endpoints.
type InteractionHandler struct {
	store InteractionStore
}

func NewInteractionHandler(store InteractionStore) *InteractionHandler {
	return &InteractionHandler{store: store}
}

// LogInteraction appends one activity event to the supplier's history.
func (h *InteractionHandler) LogInteraction(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOnboardingOperation("log_interaction")

	supplierID := c.Param("supplierId")

	var interaction model.Interaction
	if err := c.Bind(&interaction); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.ValidationErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid request data",
		})
	}
	if !interaction.ActionType.Valid() {
		prometheus.ValidationErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "actionType must be one of CALL, EMAIL, CLOSE, MEETING, NOTE",
		})
	}

	actionID, err := h.store.LogInteraction(c.Request().Context(), supplierID, interaction)
	if err != nil {
		log.Error("Failed to log interaction",
			zap.String("supplier_id", supplierID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Failed to log interaction",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"actionId": actionID,
	})
}

// CacheRecommendationRequest is the body for storing a buyer recommendation.
type CacheRecommendationRequest struct {
	WhyMatter          string  `json:"whyMatter"`
	HowToApproach      string  `json:"howToApproach"`
	PotentialRisks     string  `json:"potentialRisks"`
	SuccessProbability float64 `json:"successProbability"`
	CallScript         string  `json:"callScript"`
	EmailTemplate      string  `json:"emailTemplate"`
	LLMModel           string  `json:"llmModel"`
}

// CacheRecommendation stores a recommendation payload for a buyer.
func (h *InteractionHandler) CacheRecommendation(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOnboardingOperation("cache_recommendation")

	supplierID := c.Param("supplierId")
	buyerID := c.Param("buyerId")

	var req CacheRecommendationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.ValidationErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid request data",
		})
	}

	rec := model.Recommendation{
		BuyerID:            buyerID,
		WhyMatter:          req.WhyMatter,
		HowToApproach:      req.HowToApproach,
		PotentialRisks:     req.PotentialRisks,
		SuccessProbability: req.SuccessProbability,
		CallScript:         req.CallScript,
		EmailTemplate:      req.EmailTemplate,
	}

	cached, err := h.store.CacheRecommendation(c.Request().Context(), supplierID, rec, req.LLMModel)
	if err != nil {
		log.Error("Failed to cache recommendation",
			zap.String("supplier_id", supplierID),
			zap.String("buyer_id", buyerID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Failed to cache recommendation",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"supplierId":     supplierID,
		"recommendation": cached,
	})
}

// GetRecommendation returns the cached recommendation for a buyer, or 404
// when none exists or it has expired.
func (h *InteractionHandler) GetRecommendation(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOnboardingOperation("get_recommendation")

	supplierID := c.Param("supplierId")
	buyerID := c.Param("buyerId")

	cached, err := h.store.Recommendation(c.Request().Context(), supplierID, buyerID)
	if err != nil {
		log.Error("Failed to load recommendation",
			zap.String("supplier_id", supplierID),
			zap.String("buyer_id", buyerID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Failed to get recommendation",
			"details": err.Error(),
		})
	}
	if cached == nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"error":   "No recommendation cached for this buyer",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"supplierId":     supplierID,
		"recommendation": cached,
	})
}

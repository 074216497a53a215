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

// SupplierStore is the persistence surface for supplier profile writes.
type SupplierStore interface {
	SaveSupplier(ctx context.Context, supplierID string, patch model.SupplierPatch) error
}

// SupplierRequest is the body for supplier profile updates. Pointer fields
// keep the write partial: absent fields are not touched.
type SupplierRequest struct {
	Email          *string `json:"email"`
	Domain         *string `json:"domain"`
	DisplayName    *string `json:"displayName"`
	EmailVerified  *bool   `json:"emailVerified"`
	DomainVerified *bool   `json:"domainVerified"`
}

// SupplierHandler serves supplier profile endpoints.
type SupplierHandler struct {
	store SupplierStore
}

func NewSupplierHandler(store SupplierStore) *SupplierHandler {
	return &SupplierHandler{store: store}
}

// UpdateSupplier merge-writes profile fields onto the supplier record,
// creating it when absent.
func (h *SupplierHandler) UpdateSupplier(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOnboardingOperation("update_supplier")

	supplierID := c.Param("supplierId")

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.ValidationErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid request data",
		})
	}

	patch := model.SupplierPatch{
		Email:          req.Email,
		Domain:         req.Domain,
		DisplayName:    req.DisplayName,
		EmailVerified:  req.EmailVerified,
		DomainVerified: req.DomainVerified,
	}

	if err := h.store.SaveSupplier(c.Request().Context(), supplierID, patch); err != nil {
		log.Error("Failed to save supplier",
			zap.String("supplier_id", supplierID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Failed to save supplier",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"supplierId": supplierID,
	})
}

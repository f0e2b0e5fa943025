// Package handlers contains the Gin HTTP handlers for the payments API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MV-Clouds/quickform-payments/internal/application/formpayment/dto"
	"github.com/MV-Clouds/quickform-payments/internal/application/formpayment/usecases"
	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	apperrors "github.com/MV-Clouds/quickform-payments/internal/shared/errors"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
	"github.com/MV-Clouds/quickform-payments/internal/shared/utils"
)

// FormPaymentHandler handles payment field processing for forms
type FormPaymentHandler struct {
	processUseCase  *usecases.ProcessFormPaymentsUseCase
	validateUseCase *usecases.ValidateFormPaymentsUseCase
	listUseCase     *usecases.GetExistingSubscriptionsUseCase
	removeUseCase   *usecases.RemoveSubscriptionUseCase
	logger          logger.Interface
}

// NewFormPaymentHandler creates a new form payment handler
func NewFormPaymentHandler(
	processUC *usecases.ProcessFormPaymentsUseCase,
	validateUC *usecases.ValidateFormPaymentsUseCase,
	listUC *usecases.GetExistingSubscriptionsUseCase,
	removeUC *usecases.RemoveSubscriptionUseCase,
	logger logger.Interface,
) *FormPaymentHandler {
	return &FormPaymentHandler{
		processUseCase:  processUC,
		validateUseCase: validateUC,
		listUseCase:     listUC,
		removeUseCase:   removeUC,
		logger:          logger,
	}
}

// ProcessPaymentsRequest is the save-time payload carrying a form's payment
// fields.
type ProcessPaymentsRequest struct {
	FormVersionID string                  `json:"form_version_id"`
	Fields        []dto.PaymentFieldInput `json:"fields" binding:"required,dive"`
}

// ValidatePaymentsRequest carries payment fields for a dry-run validation.
type ValidatePaymentsRequest struct {
	Fields []dto.PaymentFieldInput `json:"fields" binding:"required,dive"`
}

// ProcessPayments synchronizes the form's payment fields with the provider.
// POST /api/v1/forms/:form_id/payments/process
func (h *FormPaymentHandler) ProcessPayments(c *gin.Context) {
	formID := c.Param("form_id")

	var req ProcessPaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.processUseCase.Execute(c.Request.Context(), usecases.ProcessFormPaymentsCommand{
		FormID:        formID,
		FormVersionID: req.FormVersionID,
		Fields:        dto.ToDomainFields(req.Fields),
	})
	if err != nil {
		h.logger.Errorw("form payment processing failed",
			"form_id", formID,
			"error", err,
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to process form payments")
		return
	}

	// Partial failures still return the per-field breakdown; the editor
	// decides how to surface them.
	status := http.StatusOK
	if !result.Success {
		status = http.StatusMultiStatus
	}
	utils.SuccessResponse(c, status, "Form payments processed", result)
}

// ValidatePayments runs the validation gate without touching the provider.
// POST /api/v1/forms/:form_id/payments/validate
func (h *FormPaymentHandler) ValidatePayments(c *gin.Context) {
	formID := c.Param("form_id")

	var req ValidatePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.validateUseCase.Execute(c.Request.Context(), usecases.ValidateFormPaymentsCommand{
		FormID: formID,
		Fields: dto.ToDomainFields(req.Fields),
	})
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to validate form payments")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Form payments validated", result)
}

// ListSubscriptions returns the merchant's reconciled subscription plans.
// GET /api/v1/merchants/:merchant_id/subscriptions
func (h *FormPaymentHandler) ListSubscriptions(c *gin.Context) {
	merchantID := c.Param("merchant_id")
	pagination := utils.ParsePagination(c)

	entries, total, err := h.listUseCase.Execute(c.Request.Context(), usecases.GetExistingSubscriptionsQuery{
		MerchantID: merchantID,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	})
	if err != nil {
		if errors.Is(err, formpayment.ErrMerchantRequired) {
			utils.ErrorResponseWithError(c, apperrors.NewValidationError("Merchant ID is required"))
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list subscriptions")
		return
	}

	items := dto.SubscriptionLinkMapper.ToDTOList(entries)
	utils.ListSuccessResponse(c, items, int64(total), pagination.Page, pagination.PageSize)
}

// RemoveSubscription unlinks a payment field from its remote plan.
// DELETE /api/v1/merchants/:merchant_id/subscriptions/:field_id
func (h *FormPaymentHandler) RemoveSubscription(c *gin.Context) {
	merchantID := c.Param("merchant_id")
	fieldID := c.Param("field_id")

	removed, err := h.removeUseCase.Execute(c.Request.Context(), usecases.RemoveSubscriptionCommand{
		FieldID:    fieldID,
		MerchantID: merchantID,
	})
	if err != nil {
		if errors.Is(err, formpayment.ErrMerchantRequired) {
			utils.ErrorResponseWithError(c, apperrors.NewValidationError("Merchant ID is required"))
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to remove subscription")
		return
	}

	if !removed {
		utils.ErrorResponseWithError(c, apperrors.NewNotFoundError("Subscription not found"))
		return
	}

	utils.NoContentResponse(c)
}

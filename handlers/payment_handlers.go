package handlers

import (
	"net/http"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/services"
	"github.com/Max-Ratcliff/ShelfMates/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePayment handles POST /payments/create
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	payment, err := h.paymentService.RecordPayment(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// ListPayments handles POST /payments/list
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var req models.ListPaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	payments, err := h.paymentService.ListPayments(req.HouseholdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, payments)
}

package handlers

import (
	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/services"
	"github.com/Max-Ratcliff/ShelfMates/utils"

	"github.com/gin-gonic/gin"
)

// BalanceHandler handles balance computation HTTP requests
type BalanceHandler struct {
	balanceService *services.BalanceService
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(balanceService *services.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// GetBalances handles POST /balances/get
func (h *BalanceHandler) GetBalances(c *gin.Context) {
	var req models.GetBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	result, err := h.balanceService.ComputeBalances(req.HouseholdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, result)
}

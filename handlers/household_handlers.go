package handlers

import (
	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/services"
	"github.com/Max-Ratcliff/ShelfMates/utils"

	"github.com/gin-gonic/gin"
)

// HouseholdHandler exposes the household member data the ledger endpoints rely on
type HouseholdHandler struct {
	householdService *services.HouseholdService
}

// NewHouseholdHandler creates a new household handler
func NewHouseholdHandler(householdService *services.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService}
}

// GetMembers handles POST /households/members
func (h *HouseholdHandler) GetMembers(c *gin.Context) {
	var req models.GetMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	members, err := h.householdService.GetMembers(req.HouseholdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, members)
}

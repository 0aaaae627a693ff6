package handlers

import (
	"net/http"

	"github.com/Max-Ratcliff/ShelfMates/middleware"
	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/services"
	"github.com/Max-Ratcliff/ShelfMates/utils"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpense handles POST /expenses/create
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	createdBy := middleware.GetUserID(c)
	expense, err := h.expenseService.CreateExpense(&req, createdBy)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GetExpense handles POST /expenses/get
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	var req models.GetExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	expense, err := h.expenseService.GetExpense(req.ExpenseID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, expense)
}

// ListExpenses handles POST /expenses/list
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	var req models.ListExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	expenses, err := h.expenseService.ListExpenses(req.HouseholdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, expenses)
}

// CancelExpense handles POST /expenses/cancel
func (h *ExpenseHandler) CancelExpense(c *gin.Context) {
	var req models.CancelExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	expense, err := h.expenseService.CancelExpense(req.ExpenseID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, expense)
}

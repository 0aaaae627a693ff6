package routes

import (
	"github.com/Max-Ratcliff/ShelfMates/auth"
	"github.com/Max-Ratcliff/ShelfMates/handlers"
	"github.com/Max-Ratcliff/ShelfMates/middleware"
	"github.com/Max-Ratcliff/ShelfMates/repository"
	"github.com/Max-Ratcliff/ShelfMates/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, jwtManager *auth.JWTManager) {
	// Repositories
	householdRepo := repository.NewHouseholdRepository()
	expenseRepo := repository.NewExpenseRepository()
	paymentRepo := repository.NewPaymentRepository(repository.GetDB())

	// Services
	splitService := services.NewSplitService()
	settlementService := services.NewSettlementService()
	householdService := services.NewHouseholdService(householdRepo)
	expenseService := services.NewExpenseService(splitService, settlementService, householdService, expenseRepo)
	paymentService := services.NewPaymentService(settlementService, householdService, paymentRepo, expenseRepo)
	balanceService := services.NewBalanceService(expenseService)
	excelService := services.NewExcelService(householdService, expenseService, balanceService, paymentService)

	// Handlers
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	balanceHandler := handlers.NewBalanceHandler(balanceService)
	excelHandler := handlers.NewExcelHandler(excelService)
	householdHandler := handlers.NewHouseholdHandler(householdService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAuth(jwtManager))
	{
		// Expense endpoints
		v1.POST("/expenses/create", expenseHandler.CreateExpense)
		v1.POST("/expenses/get", expenseHandler.GetExpense)
		v1.POST("/expenses/list", expenseHandler.ListExpenses)
		v1.POST("/expenses/cancel", expenseHandler.CancelExpense)

		// Payment endpoints
		v1.POST("/payments/create", paymentHandler.CreatePayment)
		v1.POST("/payments/list", paymentHandler.ListPayments)

		// Balance and export endpoints
		v1.POST("/balances/get", balanceHandler.GetBalances)
		v1.POST("/export", excelHandler.ExportHousehold)

		// Household endpoints
		v1.POST("/households/members", householdHandler.GetMembers)
	}
}

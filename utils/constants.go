package utils

const (
	// Split methods
	MethodEqual  = "equal"
	MethodShares = "shares"
	MethodCustom = "custom"
	MethodPayer  = "payer"

	// Expense statuses
	StatusOpen             = "open"
	StatusPartiallySettled = "partially_settled"
	StatusSettled          = "settled"
	StatusCancelled        = "cancelled"

	// Payment statuses
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"

	// ID and invite code generation
	CodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength  = 6

	// Default currency when a request omits one
	DefaultCurrency = "USD"

	// HTTP status messages
	ErrInvalidRequest    = "Invalid request"
	ErrHouseholdNotFound = "Household not found"
	ErrExpenseNotFound   = "Expense not found"
	ErrPaymentNotFound   = "Payment not found"
	ErrFailedToStore     = "Failed to store data"
	ErrFailedToRetrieve  = "Failed to retrieve data"

	// Fixed-point scale applied to share weights before integer arithmetic
	ShareWeightScale = 1_000_000
)

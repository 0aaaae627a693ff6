package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds distinguish domain failures so callers can react to them
// (the payment service retries conflicts; handlers map kinds to HTTP codes).
const (
	ErrKindValidation             = "validation"
	ErrKindNotFound               = "not_found"
	ErrKindInternal               = "internal"
	ErrKindInvalidSplit           = "invalid_split"
	ErrKindEntryNotFound          = "entry_not_found"
	ErrKindOverSettlement         = "over_settlement"
	ErrKindExpenseCancelled       = "expense_cancelled"
	ErrKindInvalidStateTransition = "invalid_state_transition"
	ErrKindConflict               = "conflict"
)

// AppError represents a custom application error
type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// Common error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    ErrKindValidation,
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    ErrKindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    ErrKindInternal,
		Message: message,
	}
}

// NewInvalidSplitError signals a malformed or inconsistent split request
func NewInvalidSplitError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    ErrKindInvalidSplit,
		Message: message,
	}
}

// NewEntryNotFoundError signals a payment application referencing a user
// with no entry in the targeted expense
func NewEntryNotFoundError(expenseID, userID string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    ErrKindEntryNotFound,
		Message: fmt.Sprintf("no entry for user %s in expense %s", userID, expenseID),
	}
}

// NewOverSettlementError signals an application exceeding an entry's remaining balance
func NewOverSettlementError(expenseID, userID string, amountCents, remainingCents int64) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    ErrKindOverSettlement,
		Message: fmt.Sprintf("application of %d cents exceeds remaining %d cents for user %s in expense %s", amountCents, remainingCents, userID, expenseID),
	}
}

// NewExpenseCancelledError signals a payment targeting a cancelled expense
func NewExpenseCancelledError(expenseID string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    ErrKindExpenseCancelled,
		Message: fmt.Sprintf("expense %s is cancelled", expenseID),
	}
}

// NewInvalidStateTransitionError signals an illegal expense status transition
func NewInvalidStateTransitionError(from, to string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    ErrKindInvalidStateTransition,
		Message: fmt.Sprintf("cannot transition expense from %s to %s", from, to),
	}
}

// NewConflictError signals an optimistic-concurrency revision mismatch.
// Always retryable by re-reading and recomputing.
func NewConflictError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    ErrKindConflict,
		Message: fmt.Sprintf("%s was modified concurrently", resource),
	}
}

// HandleError sends an appropriate HTTP response for an error
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}

	// Default to internal server error
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

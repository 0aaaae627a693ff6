// models/payment_models.go
package models

import (
	"time"
)

// PaymentApply describes how one slice of a payment applies to an expense entry.
// UserID must match an existing entry within the referenced expense.
type PaymentApply struct {
	ExpenseID   string `json:"expenseId" db:"expense_id"`
	UserID      string `json:"userId" db:"user_id"`
	AmountCents int64  `json:"amountCents" db:"amount_cents"`
}

// Payment represents a payment made between household members, applied
// against one or more expense entries. Payments are append-only; after
// creation only the status may transition (pending -> completed | failed).
type Payment struct {
	ID          string         `json:"_id" db:"id"`
	HouseholdID string         `json:"householdId" db:"household_id"`
	FromUser    string         `json:"fromUser" db:"from_user"`
	ToUser      string         `json:"toUser" db:"to_user"`
	TotalCents  int64          `json:"totalCents" db:"total_cents"`
	Currency    string         `json:"currency" db:"currency"`
	AppliesTo   []PaymentApply `json:"appliesTo"`
	Status      string         `json:"status" db:"status"`
	Note        string         `json:"note,omitempty" db:"note"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}

// PaymentRequest represents the request body for recording a payment
type PaymentRequest struct {
	HouseholdID string         `json:"householdId" binding:"required"`
	FromUser    string         `json:"fromUser" binding:"required"`
	ToUser      string         `json:"toUser" binding:"required"`
	TotalCents  int64          `json:"totalCents" binding:"required,gt=0"`
	Currency    string         `json:"currency"`
	AppliesTo   []PaymentApply `json:"appliesTo" binding:"required"`
	Note        string         `json:"note,omitempty"`
}

// ListPaymentsRequest represents the request body for listing household payments
type ListPaymentsRequest struct {
	HouseholdID string `json:"householdId" binding:"required"`
}

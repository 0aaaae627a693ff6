// models/expense_models.go
package models

import "time"

// ExpenseEntry represents one member's owed and settled share within an expense.
// Entries are owned by their parent expense and are never persisted independently.
type ExpenseEntry struct {
	UserID       string `json:"userId" db:"user_id"`
	AmountCents  int64  `json:"amountCents" db:"amount_cents"`
	SettledCents int64  `json:"settledCents" db:"settled_cents"`
}

// RemainingCents returns the unsettled portion of the entry
func (e ExpenseEntry) RemainingCents() int64 {
	return e.AmountCents - e.SettledCents
}

// Expense represents a shared household expense with its canonical per-member breakdown.
// Entries are computed once at creation time and are never recomputed; only
// settled amounts, status and processedAt change afterwards.
type Expense struct {
	ID                      string             `json:"_id" db:"id"`
	HouseholdID             string             `json:"householdId" db:"household_id"`
	CreatedBy               string             `json:"createdBy" db:"created_by"`
	PayerID                 string             `json:"payerId" db:"payer_id"`
	TotalCents              int64              `json:"totalCents" db:"total_cents"`
	Currency                string             `json:"currency" db:"currency"`
	Participants            []string           `json:"participants"`
	Method                  string             `json:"method" db:"method"`
	Shares                  map[string]float64 `json:"shares,omitempty"`
	CustomAmounts           map[string]int64   `json:"customAmounts,omitempty"`
	Entries                 []ExpenseEntry     `json:"entries"`
	RoundingAdjustmentCents int64              `json:"roundingAdjustmentCents" db:"rounding_adjustment_cents"`
	Status                  string             `json:"status" db:"status"`
	Note                    string             `json:"note,omitempty" db:"note"`
	CreatedAt               time.Time          `json:"createdAt" db:"created_at"`
	ProcessedAt             *time.Time         `json:"processedAt,omitempty" db:"processed_at"`
}

// EntryFor returns a pointer to the entry belonging to userID, or nil if absent
func (e *Expense) EntryFor(userID string) *ExpenseEntry {
	for i := range e.Entries {
		if e.Entries[i].UserID == userID {
			return &e.Entries[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the expense so callers can mutate safely
func (e Expense) Clone() Expense {
	clone := e
	clone.Participants = append([]string(nil), e.Participants...)
	clone.Entries = append([]ExpenseEntry(nil), e.Entries...)
	if e.Shares != nil {
		clone.Shares = make(map[string]float64, len(e.Shares))
		for k, v := range e.Shares {
			clone.Shares[k] = v
		}
	}
	if e.CustomAmounts != nil {
		clone.CustomAmounts = make(map[string]int64, len(e.CustomAmounts))
		for k, v := range e.CustomAmounts {
			clone.CustomAmounts[k] = v
		}
	}
	if e.ProcessedAt != nil {
		t := *e.ProcessedAt
		clone.ProcessedAt = &t
	}
	return clone
}

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	HouseholdID   string             `json:"householdId" binding:"required"`
	PayerID       string             `json:"payerId" binding:"required"`
	TotalCents    int64              `json:"totalCents" binding:"required,gt=0"`
	Currency      string             `json:"currency"`
	Participants  []string           `json:"participants" binding:"required"`
	Method        string             `json:"method" binding:"required"`
	Shares        map[string]float64 `json:"shares,omitempty"`
	CustomAmounts map[string]int64   `json:"customAmounts,omitempty"`
	Note          string             `json:"note,omitempty"`
}

// GetExpenseRequest represents the request body for fetching a single expense
type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId" binding:"required"`
}

// ListExpensesRequest represents the request body for listing household expenses
type ListExpensesRequest struct {
	HouseholdID string `json:"householdId" binding:"required"`
}

// CancelExpenseRequest represents the request body for cancelling an expense
type CancelExpenseRequest struct {
	ExpenseID string `json:"expenseId" binding:"required"`
}

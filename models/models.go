// models/models.go
package models

import "time"

// Household represents a group of members sharing expenses
type Household struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"inviteCode"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HouseholdMember represents one member of a household
type HouseholdMember struct {
	HouseholdID string    `json:"householdId"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// MemberBalance represents a member's net position across a household's open ledger
type MemberBalance struct {
	UserID    string `json:"userId"`
	OwedCents int64  `json:"owedCents"` // unsettled amounts others owe this member
	OwesCents int64  `json:"owesCents"` // unsettled amounts this member owes
	NetCents  int64  `json:"netCents"`  // positive = should receive, negative = should pay
}

// Transfer represents a suggested settlement payment between two members
type Transfer struct {
	From        string `json:"from"`
	To          string `json:"to"`
	AmountCents int64  `json:"amountCents"`
}

// BalanceResult represents the result of computing household balances
type BalanceResult struct {
	Balances  map[string]MemberBalance `json:"balances"`
	Transfers []Transfer               `json:"transfers"`
}

// GetMembersRequest represents the request body for listing household members
type GetMembersRequest struct {
	HouseholdID string `json:"householdId" binding:"required"`
}

// GetBalancesRequest represents the request body for computing balances
type GetBalancesRequest struct {
	HouseholdID string `json:"householdId" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

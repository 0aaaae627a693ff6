package services

import (
	"sort"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
)

// BalanceService derives each member's net position from the unsettled
// remainders of a household's live expenses and suggests minimal transfers
// to clear them.
type BalanceService struct {
	expenseService *ExpenseService
}

// NewBalanceService creates a new balance service
func NewBalanceService(expenseService *ExpenseService) *BalanceService {
	return &BalanceService{expenseService: expenseService}
}

// ComputeBalances calculates balances and suggested transfers for a household
func (s *BalanceService) ComputeBalances(householdID string) (*models.BalanceResult, error) {
	expenses, err := s.expenseService.ListExpenses(householdID)
	if err != nil {
		return nil, err
	}

	balances := s.calculateBalances(expenses)
	transfers := s.calculateTransfers(balances)

	return &models.BalanceResult{
		Balances:  balances,
		Transfers: transfers,
	}, nil
}

// calculateBalances accumulates unsettled remainders: each non-payer entry's
// remaining cents are owed by the entry's member to the expense payer.
// Cancelled expenses are excluded.
func (s *BalanceService) calculateBalances(expenses []*models.Expense) map[string]models.MemberBalance {
	balances := make(map[string]models.MemberBalance)

	for _, expense := range expenses {
		if expense.Status == utils.StatusCancelled {
			continue
		}
		for _, entry := range expense.Entries {
			if entry.UserID == expense.PayerID {
				continue
			}
			remaining := entry.RemainingCents()
			if remaining == 0 {
				continue
			}

			debtor := balances[entry.UserID]
			debtor.UserID = entry.UserID
			debtor.OwesCents += remaining
			balances[entry.UserID] = debtor

			creditor := balances[expense.PayerID]
			creditor.UserID = expense.PayerID
			creditor.OwedCents += remaining
			balances[expense.PayerID] = creditor
		}
	}

	for userID, balance := range balances {
		balance.NetCents = balance.OwedCents - balance.OwesCents
		balances[userID] = balance
	}
	return balances
}

// personBalance pairs a member with an outstanding amount during matching
type personBalance struct {
	userID string
	cents  int64
}

// calculateTransfers greedily pairs the largest creditors with the largest
// debtors so the suggested transfer list stays short
func (s *BalanceService) calculateTransfers(balances map[string]models.MemberBalance) []models.Transfer {
	var creditors, debtors []personBalance
	for userID, balance := range balances {
		if balance.NetCents > 0 {
			creditors = append(creditors, personBalance{userID: userID, cents: balance.NetCents})
		} else if balance.NetCents < 0 {
			debtors = append(debtors, personBalance{userID: userID, cents: -balance.NetCents})
		}
	}

	sortByCents(creditors)
	sortByCents(debtors)

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		amount := utils.MinInt64(creditors[i].cents, debtors[j].cents)
		if amount > 0 {
			transfers = append(transfers, models.Transfer{
				From:        debtors[j].userID,
				To:          creditors[i].userID,
				AmountCents: amount,
			})
		}

		creditors[i].cents -= amount
		debtors[j].cents -= amount

		if creditors[i].cents == 0 {
			i++
		}
		if debtors[j].cents == 0 {
			j++
		}
	}
	return transfers
}

// sortByCents sorts balances by amount descending, ties by user id for
// deterministic output
func sortByCents(slice []personBalance) {
	sort.Slice(slice, func(a, b int) bool {
		if slice[a].cents != slice[b].cents {
			return slice[a].cents > slice[b].cents
		}
		return slice[a].userID < slice[b].userID
	})
}

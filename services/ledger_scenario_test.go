package services

import (
	"testing"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full ledger walk-through: a groceries run fronted by one roommate, split
// equally, then settled by the other two over two payments.
func TestLedger_GroceryRunScenario(t *testing.T) {
	splitService := NewSplitService()
	settlementService := NewSettlementService()

	participants := []string{"dana", "kim", "riley"}
	entries, adjustment, err := splitService.Split(2599, "dana", participants, utils.MethodEqual, nil, nil)
	require.NoError(t, err)

	// 25.99 over three people leaves one remainder cent for the first id
	assert.Equal(t, int64(1), adjustment)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(867), entries[0].AmountCents) // dana
	assert.Equal(t, int64(866), entries[1].AmountCents) // kim
	assert.Equal(t, int64(866), entries[2].AmountCents) // riley

	expense := models.Expense{
		ID:          "exp-groceries",
		HouseholdID: "hh-1",
		PayerID:     "dana",
		TotalCents:  2599,
		Currency:    "USD",
		Method:      utils.MethodEqual,
		Entries:     entries,
		Status:      utils.StatusOpen,
	}

	// Kim pays their share in full
	afterKim, err := settlementService.ApplyPayment(expense, []models.PaymentApply{
		{ExpenseID: "exp-groceries", UserID: "kim", AmountCents: 866},
	})
	require.NoError(t, err)
	assert.Equal(t, utils.StatusPartiallySettled, afterKim.Status)

	// Riley pays in two installments; Dana's own entry settles alongside
	afterRiley, err := settlementService.ApplyPayment(afterKim, []models.PaymentApply{
		{ExpenseID: "exp-groceries", UserID: "riley", AmountCents: 400},
	})
	require.NoError(t, err)
	assert.Equal(t, utils.StatusPartiallySettled, afterRiley.Status)

	final, err := settlementService.ApplyPayment(afterRiley, []models.PaymentApply{
		{ExpenseID: "exp-groceries", UserID: "riley", AmountCents: 466},
		{ExpenseID: "exp-groceries", UserID: "dana", AmountCents: 867},
	})
	require.NoError(t, err)
	assert.Equal(t, utils.StatusSettled, final.Status)
	require.NotNil(t, final.ProcessedAt)

	// Nothing outstanding remains on the household balance
	balanceService := NewBalanceService(nil)
	balances := balanceService.calculateBalances([]*models.Expense{&final})
	assert.Empty(t, balanceService.calculateTransfers(balances))
}

// A weighted utility bill settled across two expenses by one payment.
func TestLedger_MultiExpensePaymentScenario(t *testing.T) {
	splitService := NewSplitService()
	settlementService := NewSettlementService()

	rentEntries, _, err := splitService.Split(120000, "", []string{"dana", "kim"}, utils.MethodShares,
		map[string]float64{"dana": 2, "kim": 1}, nil)
	require.NoError(t, err)
	rent := models.Expense{
		ID:      "exp-rent",
		PayerID: "dana",
		Entries: rentEntries,
		Status:  utils.StatusOpen,
	}

	internetEntries, _, err := splitService.Split(5000, "", []string{"dana", "kim"}, utils.MethodEqual, nil, nil)
	require.NoError(t, err)
	internet := models.Expense{
		ID:      "exp-internet",
		PayerID: "dana",
		Entries: internetEntries,
		Status:  utils.StatusOpen,
	}

	// One payment from Kim clears their share of both expenses
	applications := map[string][]models.PaymentApply{
		"exp-rent":     {{ExpenseID: "exp-rent", UserID: "kim", AmountCents: 40000}},
		"exp-internet": {{ExpenseID: "exp-internet", UserID: "kim", AmountCents: 2500}},
	}

	updatedRent, err := settlementService.ApplyPayment(rent, applications["exp-rent"])
	require.NoError(t, err)
	assert.Equal(t, utils.StatusPartiallySettled, updatedRent.Status)
	assert.Equal(t, int64(0), updatedRent.EntryFor("kim").RemainingCents())

	updatedInternet, err := settlementService.ApplyPayment(internet, applications["exp-internet"])
	require.NoError(t, err)
	assert.Equal(t, int64(0), updatedInternet.EntryFor("kim").RemainingCents())
}

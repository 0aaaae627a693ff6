package services

import (
	"testing"
	"time"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExpense() models.Expense {
	return models.Expense{
		ID:          "exp-1",
		HouseholdID: "hh-1",
		PayerID:     "A",
		TotalCents:  100,
		Currency:    "USD",
		Method:      utils.MethodEqual,
		Status:      utils.StatusOpen,
		Entries: []models.ExpenseEntry{
			{UserID: "A", AmountCents: 50},
			{UserID: "B", AmountCents: 50},
		},
	}
}

func apply(expenseID, userID string, cents int64) models.PaymentApply {
	return models.PaymentApply{ExpenseID: expenseID, UserID: userID, AmountCents: cents}
}

func TestSettlementService_PartialThenFullSettlement(t *testing.T) {
	service := NewSettlementService()
	expense := testExpense()

	updated, err := service.ApplyPayment(expense, []models.PaymentApply{apply("exp-1", "A", 50)})
	require.NoError(t, err)

	assert.Equal(t, int64(50), updated.EntryFor("A").SettledCents)
	assert.Equal(t, utils.StatusPartiallySettled, updated.Status)
	assert.Nil(t, updated.ProcessedAt)

	settled, err := service.ApplyPayment(updated, []models.PaymentApply{apply("exp-1", "B", 50)})
	require.NoError(t, err)

	assert.Equal(t, utils.StatusSettled, settled.Status)
	require.NotNil(t, settled.ProcessedAt)
}

func TestSettlementService_ProcessedAtUsesClock(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	service := &SettlementService{now: func() time.Time { return fixed }}
	expense := testExpense()

	settled, err := service.ApplyPayment(expense, []models.PaymentApply{
		apply("exp-1", "A", 50),
		apply("exp-1", "B", 50),
	})
	require.NoError(t, err)
	require.NotNil(t, settled.ProcessedAt)
	assert.Equal(t, fixed, *settled.ProcessedAt)
}

func TestSettlementService_OverSettlementRejectedWithoutMutation(t *testing.T) {
	service := NewSettlementService()
	expense := testExpense()
	expense.Entries[1].SettledCents = 30 // remaining 20

	_, err := service.ApplyPayment(expense, []models.PaymentApply{apply("exp-1", "B", 21)})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindOverSettlement))

	// Input expense untouched
	assert.Equal(t, int64(30), expense.EntryFor("B").SettledCents)
	assert.Equal(t, utils.StatusOpen, expense.Status)
}

func TestSettlementService_BatchIsAllOrNothing(t *testing.T) {
	service := NewSettlementService()
	expense := testExpense()

	// First application is valid, second overshoots; nothing may land
	_, err := service.ApplyPayment(expense, []models.PaymentApply{
		apply("exp-1", "A", 50),
		apply("exp-1", "B", 51),
	})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindOverSettlement))
	assert.Equal(t, int64(0), expense.EntryFor("A").SettledCents)
	assert.Equal(t, int64(0), expense.EntryFor("B").SettledCents)
}

func TestSettlementService_RepeatedApplicationsAccumulateWithinBatch(t *testing.T) {
	service := NewSettlementService()
	expense := testExpense()

	updated, err := service.ApplyPayment(expense, []models.PaymentApply{
		apply("exp-1", "B", 20),
		apply("exp-1", "B", 30),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), updated.EntryFor("B").SettledCents)

	// The same pair exceeding the entry is rejected as a whole
	_, err = service.ApplyPayment(expense, []models.PaymentApply{
		apply("exp-1", "B", 30),
		apply("exp-1", "B", 30),
	})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindOverSettlement))
}

func TestSettlementService_EntryNotFound(t *testing.T) {
	service := NewSettlementService()
	expense := testExpense()

	_, err := service.ApplyPayment(expense, []models.PaymentApply{apply("exp-1", "Z", 10)})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindEntryNotFound))

	// An application addressed to a different expense never matches
	_, err = service.ApplyPayment(expense, []models.PaymentApply{apply("exp-2", "A", 10)})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindEntryNotFound))
}

func TestSettlementService_CancelledExpenseRejectsPayments(t *testing.T) {
	service := NewSettlementService()
	expense := testExpense()

	cancelled, err := service.CancelExpense(expense)
	require.NoError(t, err)
	assert.Equal(t, utils.StatusCancelled, cancelled.Status)

	_, err = service.ApplyPayment(cancelled, []models.PaymentApply{apply("exp-1", "A", 10)})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindExpenseCancelled))
}

func TestSettlementService_CancelPreservesAuditTrail(t *testing.T) {
	service := NewSettlementService()
	expense := testExpense()

	partial, err := service.ApplyPayment(expense, []models.PaymentApply{apply("exp-1", "A", 25)})
	require.NoError(t, err)

	cancelled, err := service.CancelExpense(partial)
	require.NoError(t, err)
	assert.Equal(t, utils.StatusCancelled, cancelled.Status)
	assert.Equal(t, int64(25), cancelled.EntryFor("A").SettledCents)
}

func TestSettlementService_CancelIllegalTransitions(t *testing.T) {
	service := NewSettlementService()
	expense := testExpense()

	settled, err := service.ApplyPayment(expense, []models.PaymentApply{
		apply("exp-1", "A", 50),
		apply("exp-1", "B", 50),
	})
	require.NoError(t, err)

	_, err = service.CancelExpense(settled)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindInvalidStateTransition))

	cancelled, err := service.CancelExpense(testExpense())
	require.NoError(t, err)
	_, err = service.CancelExpense(cancelled)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindInvalidStateTransition))
}

func TestDeriveStatus_Idempotent(t *testing.T) {
	entries := []models.ExpenseEntry{
		{UserID: "A", AmountCents: 40, SettledCents: 40},
		{UserID: "B", AmountCents: 60, SettledCents: 10},
	}

	first := DeriveStatus(entries)
	second := DeriveStatus(entries)
	assert.Equal(t, first, second)
	assert.Equal(t, utils.StatusPartiallySettled, first)
}

func TestDeriveStatus_AllStates(t *testing.T) {
	assert.Equal(t, utils.StatusOpen, DeriveStatus([]models.ExpenseEntry{
		{UserID: "A", AmountCents: 10},
		{UserID: "B", AmountCents: 10},
	}))
	assert.Equal(t, utils.StatusPartiallySettled, DeriveStatus([]models.ExpenseEntry{
		{UserID: "A", AmountCents: 10, SettledCents: 1},
		{UserID: "B", AmountCents: 10},
	}))
	assert.Equal(t, utils.StatusSettled, DeriveStatus([]models.ExpenseEntry{
		{UserID: "A", AmountCents: 10, SettledCents: 10},
		{UserID: "B", AmountCents: 10, SettledCents: 10},
	}))
	// A zero-amount entry (payer method) counts as settled
	assert.Equal(t, utils.StatusSettled, DeriveStatus([]models.ExpenseEntry{
		{UserID: "A", AmountCents: 0},
		{UserID: "B", AmountCents: 10, SettledCents: 10},
	}))
}

func TestSettlementService_SettledCentsNeverDecrease(t *testing.T) {
	service := NewSettlementService()
	expense := testExpense()

	steps := [][]models.PaymentApply{
		{apply("exp-1", "A", 10)},
		{apply("exp-1", "B", 5)},
		{apply("exp-1", "A", 40)},
		{apply("exp-1", "B", 45)},
	}

	previous := map[string]int64{"A": 0, "B": 0}
	current := expense
	for _, step := range steps {
		next, err := service.ApplyPayment(current, step)
		require.NoError(t, err)
		for userID, before := range previous {
			after := next.EntryFor(userID).SettledCents
			assert.GreaterOrEqual(t, after, before)
			previous[userID] = after
		}
		current = next
	}
	assert.Equal(t, utils.StatusSettled, current.Status)
}

package services

import (
	"time"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
)

// SettlementService applies payments against an expense's entries and keeps
// the expense status derived from entry state. All methods are pure
// computation over value copies; persistence happens at the caller under an
// optimistic-concurrency write.
type SettlementService struct {
	now func() time.Time
}

// NewSettlementService creates a new settlement service
func NewSettlementService() *SettlementService {
	return &SettlementService{now: time.Now}
}

// ApplyPayment applies a batch of payment applications to the expense and
// returns the updated copy. The batch is all-or-nothing: every application is
// validated against the running entry state before anything is committed, so
// a failing application leaves the input expense untouched.
func (s *SettlementService) ApplyPayment(expense models.Expense, applications []models.PaymentApply) (models.Expense, error) {
	if expense.Status == utils.StatusCancelled {
		return expense, utils.NewExpenseCancelledError(expense.ID)
	}
	if len(applications) == 0 {
		return expense, utils.NewValidationError("payment has no applications for this expense")
	}

	updated := expense.Clone()
	for _, app := range applications {
		if app.ExpenseID != expense.ID {
			return expense, utils.NewEntryNotFoundError(app.ExpenseID, app.UserID)
		}
		if app.AmountCents <= 0 {
			return expense, utils.NewValidationError("application amount must be positive")
		}
		entry := updated.EntryFor(app.UserID)
		if entry == nil {
			return expense, utils.NewEntryNotFoundError(expense.ID, app.UserID)
		}
		remaining := entry.RemainingCents()
		if app.AmountCents > remaining {
			return expense, utils.NewOverSettlementError(expense.ID, app.UserID, app.AmountCents, remaining)
		}
		entry.SettledCents += app.AmountCents
	}

	updated.Status = DeriveStatus(updated.Entries)
	if updated.Status == utils.StatusSettled && updated.ProcessedAt == nil {
		now := s.now()
		updated.ProcessedAt = &now
	}
	return updated, nil
}

// CancelExpense transitions an expense to the terminal cancelled status.
// Only open and partially settled expenses may be cancelled; entries and
// their settled amounts are left intact as an audit trail.
func (s *SettlementService) CancelExpense(expense models.Expense) (models.Expense, error) {
	switch expense.Status {
	case utils.StatusOpen, utils.StatusPartiallySettled:
		updated := expense.Clone()
		updated.Status = utils.StatusCancelled
		return updated, nil
	default:
		return expense, utils.NewInvalidStateTransitionError(expense.Status, utils.StatusCancelled)
	}
}

// DeriveStatus computes an expense's status purely from its entries.
// It is idempotent and depends on nothing beyond the current settled sums;
// the terminal cancelled override is handled by CancelExpense, not here.
func DeriveStatus(entries []models.ExpenseEntry) string {
	allSettled := true
	anySettled := false
	for _, e := range entries {
		if e.SettledCents < e.AmountCents {
			allSettled = false
		}
		if e.SettledCents > 0 {
			anySettled = true
		}
	}
	if len(entries) > 0 && allSettled {
		return utils.StatusSettled
	}
	if anySettled {
		return utils.StatusPartiallySettled
	}
	return utils.StatusOpen
}

package services

import (
	"strings"
	"time"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/repository"
	"github.com/Max-Ratcliff/ShelfMates/utils"
)

// maxConflictRetries bounds how many times a read-compute-write cycle is
// repeated after an optimistic-concurrency conflict before surfacing it.
const maxConflictRetries = 3

// ExpenseService orchestrates expense creation and lifecycle: it validates
// membership, runs the splitter once, and persists the result. Entries are
// never recomputed after creation.
type ExpenseService struct {
	splitService      *SplitService
	settlementService *SettlementService
	householdService  *HouseholdService
	expenseRepo       *repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(splitService *SplitService, settlementService *SettlementService, householdService *HouseholdService, expenseRepo *repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{
		splitService:      splitService,
		settlementService: settlementService,
		householdService:  householdService,
		expenseRepo:       expenseRepo,
	}
}

// CreateExpense validates the request, splits the total into canonical
// entries and stores the expense as open
func (s *ExpenseService) CreateExpense(req *models.CreateExpenseRequest, createdBy string) (*models.Expense, error) {
	if err := utils.ValidateRequired(createdBy, "createdBy"); err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	if err := utils.ValidateCurrency(currency); err != nil {
		return nil, err
	}
	if req.Method != utils.MethodShares && len(req.Shares) > 0 {
		return nil, utils.NewInvalidSplitError("shares are only valid with the shares method")
	}
	if req.Method != utils.MethodCustom && len(req.CustomAmounts) > 0 {
		return nil, utils.NewInvalidSplitError("custom amounts are only valid with the custom method")
	}

	if _, err := s.householdService.GetHousehold(req.HouseholdID); err != nil {
		return nil, err
	}
	memberCheck := append([]string{req.PayerID, createdBy}, req.Participants...)
	if err := s.householdService.RequireMembers(req.HouseholdID, memberCheck...); err != nil {
		return nil, err
	}

	entries, roundingAdjustment, err := s.splitService.Split(
		req.TotalCents, req.PayerID, req.Participants, req.Method, req.Shares, req.CustomAmounts,
	)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:                      utils.GenerateID(),
		HouseholdID:             req.HouseholdID,
		CreatedBy:               createdBy,
		PayerID:                 req.PayerID,
		TotalCents:              req.TotalCents,
		Currency:                currency,
		Participants:            participantsOf(entries),
		Method:                  req.Method,
		Shares:                  req.Shares,
		CustomAmounts:           req.CustomAmounts,
		Entries:                 entries,
		RoundingAdjustmentCents: roundingAdjustment,
		Status:                  utils.StatusOpen,
		Note:                    strings.TrimSpace(req.Note),
		CreatedAt:               time.Now().UTC(),
	}

	if err := s.expenseRepo.StoreExpense(expense); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return expense, nil
}

// GetExpense returns a single expense by ID
func (s *ExpenseService) GetExpense(expenseID string) (*models.Expense, error) {
	expense, _, err := s.expenseRepo.GetExpense(expenseID)
	return expense, err
}

// ListExpenses returns all expenses of a household, newest first
func (s *ExpenseService) ListExpenses(householdID string) ([]*models.Expense, error) {
	if _, err := s.householdService.GetHousehold(householdID); err != nil {
		return nil, err
	}
	return s.expenseRepo.GetExpensesByHousehold(householdID)
}

// CancelExpense transitions an expense to cancelled under the same
// read-compute-write cycle payments use. Entries stay intact for audit.
func (s *ExpenseService) CancelExpense(expenseID string) (*models.Expense, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		expense, revision, err := s.expenseRepo.GetExpense(expenseID)
		if err != nil {
			return nil, err
		}

		updated, err := s.settlementService.CancelExpense(*expense)
		if err != nil {
			return nil, err
		}

		err = s.expenseRepo.UpdateStatus(&updated, revision)
		if err == nil {
			return &updated, nil
		}
		if !utils.IsKind(err, utils.ErrKindConflict) {
			return nil, err
		}
	}
	return nil, utils.NewConflictError("expense")
}

// participantsOf extracts the entry user ids in canonical order
func participantsOf(entries []models.ExpenseEntry) []string {
	participants := make([]string, len(entries))
	for i, entry := range entries {
		participants[i] = entry.UserID
	}
	return participants
}

package services

import (
	"strings"
	"time"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/repository"
	"github.com/Max-Ratcliff/ShelfMates/utils"
)

// PaymentService records payments and drives the settlement ledger.
// Each payment is applied through a read-compute-write cycle per touched
// expense: the expense is loaded with its revision, the ledger computes the
// new state, and the write is conditioned on the revision being unchanged.
// Conflicts retry the whole cycle a bounded number of times.
type PaymentService struct {
	settlementService *SettlementService
	householdService  *HouseholdService
	paymentRepo       *repository.PaymentRepository
	expenseRepo       *repository.ExpenseRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(settlementService *SettlementService, householdService *HouseholdService, paymentRepo *repository.PaymentRepository, expenseRepo *repository.ExpenseRepository) *PaymentService {
	return &PaymentService{
		settlementService: settlementService,
		householdService:  householdService,
		paymentRepo:       paymentRepo,
		expenseRepo:       expenseRepo,
	}
}

// RecordPayment validates and applies a payment across every expense it
// references. The whole batch commits or none of it does.
func (s *PaymentService) RecordPayment(req *models.PaymentRequest) (*models.Payment, error) {
	payment, err := s.buildPayment(req)
	if err != nil {
		return nil, err
	}

	groups, order := groupApplications(payment.AppliesTo)

	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		payment.Status = utils.PaymentPending
		applied, err := s.applyOnce(payment, groups, order)
		if err == nil {
			return applied, nil
		}
		if !utils.IsKind(err, utils.ErrKindConflict) {
			s.recordFailure(payment)
			return nil, err
		}
		lastErr = err
	}
	s.recordFailure(payment)
	return nil, lastErr
}

// applyOnce runs a single read-compute-write cycle over all touched expenses
// inside one transaction
func (s *PaymentService) applyOnce(payment *models.Payment, groups map[string][]models.PaymentApply, order []string) (*models.Payment, error) {
	tx, err := s.paymentRepo.BeginTx()
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	defer tx.Rollback()

	if err := s.paymentRepo.CreatePaymentTx(tx, payment); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	for _, expenseID := range order {
		expense, revision, err := s.expenseRepo.GetExpenseTx(tx, expenseID)
		if err != nil {
			return nil, err
		}
		if expense.HouseholdID != payment.HouseholdID {
			return nil, utils.NewValidationError("expense does not belong to the payment's household")
		}
		if expense.Currency != payment.Currency {
			return nil, utils.NewValidationError("payment currency does not match the expense currency")
		}

		updated, err := s.settlementService.ApplyPayment(*expense, groups[expenseID])
		if err != nil {
			return nil, err
		}

		if err := s.expenseRepo.UpdateSettlementTx(tx, &updated, revision); err != nil {
			return nil, err
		}
	}

	if err := s.paymentRepo.UpdatePaymentStatusTx(tx, payment.ID, utils.PaymentCompleted); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	if err := tx.Commit(); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	payment.Status = utils.PaymentCompleted
	return payment, nil
}

// buildPayment validates the request and constructs the pending payment record
func (s *PaymentService) buildPayment(req *models.PaymentRequest) (*models.Payment, error) {
	if err := utils.ValidateRequired(req.FromUser, "fromUser"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.ToUser, "toUser"); err != nil {
		return nil, err
	}
	if req.FromUser == req.ToUser {
		return nil, utils.NewValidationError("cannot pay to yourself")
	}
	if err := utils.ValidatePositiveCents(req.TotalCents, "totalCents"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNotEmpty(req.AppliesTo, "appliesTo"); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	if err := utils.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	var sum int64
	users := []string{req.FromUser, req.ToUser}
	for _, apply := range req.AppliesTo {
		if err := utils.ValidateRequired(apply.ExpenseID, "application expenseId"); err != nil {
			return nil, err
		}
		if err := utils.ValidateRequired(apply.UserID, "application userId"); err != nil {
			return nil, err
		}
		if err := utils.ValidatePositiveCents(apply.AmountCents, "application amountCents"); err != nil {
			return nil, err
		}
		sum += apply.AmountCents
		users = append(users, apply.UserID)
	}
	if sum != req.TotalCents {
		return nil, utils.NewValidationError("application amounts must sum to the payment total")
	}

	if _, err := s.householdService.GetHousehold(req.HouseholdID); err != nil {
		return nil, err
	}
	if err := s.householdService.RequireMembers(req.HouseholdID, users...); err != nil {
		return nil, err
	}

	return &models.Payment{
		ID:          utils.GenerateID(),
		HouseholdID: req.HouseholdID,
		FromUser:    req.FromUser,
		ToUser:      req.ToUser,
		TotalCents:  req.TotalCents,
		Currency:    currency,
		AppliesTo:   append([]models.PaymentApply(nil), req.AppliesTo...),
		Status:      utils.PaymentPending,
		Note:        strings.TrimSpace(req.Note),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// recordFailure persists a failed payment record for the audit trail.
// Ledger state is untouched at this point, so a best-effort write is enough.
func (s *PaymentService) recordFailure(payment *models.Payment) {
	failed := *payment
	failed.Status = utils.PaymentFailed
	_ = s.paymentRepo.CreatePayment(&failed)
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(paymentID string) (*models.Payment, error) {
	return s.paymentRepo.GetPaymentByID(paymentID)
}

// ListPayments retrieves all payments for a household
func (s *PaymentService) ListPayments(householdID string) ([]models.Payment, error) {
	if _, err := s.householdService.GetHousehold(householdID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetPaymentsByHousehold(householdID)
}

// groupApplications buckets applications by expense id, preserving the order
// expenses first appear in the payment
func groupApplications(applies []models.PaymentApply) (map[string][]models.PaymentApply, []string) {
	groups := make(map[string][]models.PaymentApply)
	var order []string
	for _, apply := range applies {
		if _, seen := groups[apply.ExpenseID]; !seen {
			order = append(order, apply.ExpenseID)
		}
		groups[apply.ExpenseID] = append(groups[apply.ExpenseID], apply)
	}
	return groups, order
}

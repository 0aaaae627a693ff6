// repository/payment_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
)

// PaymentRepository handles payment data operations
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePaymentTx inserts a payment and its applications inside a transaction.
// Payments are append-only; only the status changes afterwards.
func (r *PaymentRepository) CreatePaymentTx(tx *sql.Tx, payment *models.Payment) error {
	_, err := tx.Exec(
		`INSERT INTO payments (id, household_id, from_user, to_user, total_cents, currency, status, note, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		payment.ID, payment.HouseholdID, payment.FromUser, payment.ToUser,
		payment.TotalCents, payment.Currency, payment.Status, payment.Note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}

	for i, apply := range payment.AppliesTo {
		_, err := tx.Exec(
			`INSERT INTO payment_applications (payment_id, expense_id, user_id, amount_cents, position)
             VALUES ($1, $2, $3, $4, $5)`,
			payment.ID, apply.ExpenseID, apply.UserID, apply.AmountCents, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment application: %v", err)
		}
	}
	return nil
}

// CreatePayment inserts a payment and its applications in its own transaction
func (r *PaymentRepository) CreatePayment(payment *models.Payment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if err := r.CreatePaymentTx(tx, payment); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdatePaymentStatusTx transitions a payment's status inside a transaction
func (r *PaymentRepository) UpdatePaymentStatusTx(tx *sql.Tx, paymentID, status string) error {
	_, err := tx.Exec("UPDATE payments SET status = $1 WHERE id = $2", status, paymentID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %v", err)
	}
	return nil
}

// GetPaymentByID retrieves a payment with its applications
func (r *PaymentRepository) GetPaymentByID(paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.QueryRow(
		`SELECT id, household_id, from_user, to_user, total_cents, currency, status, note, created_at
         FROM payments WHERE id = $1`,
		paymentID,
	).Scan(
		&payment.ID, &payment.HouseholdID, &payment.FromUser, &payment.ToUser,
		&payment.TotalCents, &payment.Currency, &payment.Status, &payment.Note, &payment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, utils.NewNotFoundError("Payment")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %v", err)
	}

	if err := r.loadApplications(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPaymentsByHousehold retrieves all payments for a household, newest first
func (r *PaymentRepository) GetPaymentsByHousehold(householdID string) ([]models.Payment, error) {
	rows, err := r.db.Query(
		`SELECT id, household_id, from_user, to_user, total_cents, currency, status, note, created_at
         FROM payments WHERE household_id = $1 ORDER BY created_at DESC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %v", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(
			&payment.ID, &payment.HouseholdID, &payment.FromUser, &payment.ToUser,
			&payment.TotalCents, &payment.Currency, &payment.Status, &payment.Note, &payment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %v", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %v", err)
	}

	for i := range payments {
		if err := r.loadApplications(&payments[i]); err != nil {
			return nil, err
		}
	}
	return payments, nil
}

// loadApplications fills a payment's application lines in order
func (r *PaymentRepository) loadApplications(payment *models.Payment) error {
	rows, err := r.db.Query(
		`SELECT expense_id, user_id, amount_cents
         FROM payment_applications WHERE payment_id = $1 ORDER BY position`,
		payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query payment applications: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var apply models.PaymentApply
		if err := rows.Scan(&apply.ExpenseID, &apply.UserID, &apply.AmountCents); err != nil {
			return fmt.Errorf("failed to scan payment application: %v", err)
		}
		payment.AppliesTo = append(payment.AppliesTo, apply)
	}
	return rows.Err()
}

// BeginTx starts a transaction on the underlying database
func (r *PaymentRepository) BeginTx() (*sql.Tx, error) {
	return r.db.Begin()
}

// repository/expense_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
)

// querier is satisfied by both *sql.DB and *sql.Tx so reads can run inside
// or outside a transaction.
type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// ExpenseRepository handles database operations for expenses
type ExpenseRepository struct {
	DB *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{
		DB: GetDB(),
	}
}

// StoreExpense saves a freshly split expense to the database at revision 0
func (r *ExpenseRepository) StoreExpense(expense *models.Expense) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO expenses
         (id, household_id, created_by, payer_id, total_cents, currency, method,
          rounding_adjustment_cents, status, note, revision, created_at, processed_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12)`,
		expense.ID, expense.HouseholdID, expense.CreatedBy, expense.PayerID,
		expense.TotalCents, expense.Currency, expense.Method,
		expense.RoundingAdjustmentCents, expense.Status, expense.Note,
		expense.CreatedAt, expense.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %v", err)
	}

	for _, participant := range expense.Participants {
		_, err = tx.Exec(
			"INSERT INTO expense_participants (expense_id, user_id) VALUES ($1, $2)",
			expense.ID, participant,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %v", err)
		}
	}

	for i, entry := range expense.Entries {
		_, err = tx.Exec(
			`INSERT INTO expense_entries (expense_id, user_id, amount_cents, settled_cents, position)
             VALUES ($1, $2, $3, $4, $5)`,
			expense.ID, entry.UserID, entry.AmountCents, entry.SettledCents, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense entry: %v", err)
		}
	}

	for userID, weight := range expense.Shares {
		_, err = tx.Exec(
			"INSERT INTO expense_shares (expense_id, user_id, weight) VALUES ($1, $2, $3)",
			expense.ID, userID, weight,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %v", err)
		}
	}

	for userID, amount := range expense.CustomAmounts {
		_, err = tx.Exec(
			"INSERT INTO expense_custom_amounts (expense_id, user_id, amount_cents) VALUES ($1, $2, $3)",
			expense.ID, userID, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense custom amount: %v", err)
		}
	}

	return tx.Commit()
}

// GetExpense loads an expense and its revision token
func (r *ExpenseRepository) GetExpense(expenseID string) (*models.Expense, int64, error) {
	return getExpense(r.DB, expenseID)
}

// GetExpenseTx loads an expense and its revision token inside a transaction
func (r *ExpenseRepository) GetExpenseTx(tx *sql.Tx, expenseID string) (*models.Expense, int64, error) {
	return getExpense(tx, expenseID)
}

func getExpense(q querier, expenseID string) (*models.Expense, int64, error) {
	var expense models.Expense
	var revision int64
	err := q.QueryRow(
		`SELECT id, household_id, created_by, payer_id, total_cents, currency, method,
                rounding_adjustment_cents, status, note, revision, created_at, processed_at
         FROM expenses WHERE id = $1`,
		expenseID,
	).Scan(
		&expense.ID, &expense.HouseholdID, &expense.CreatedBy, &expense.PayerID,
		&expense.TotalCents, &expense.Currency, &expense.Method,
		&expense.RoundingAdjustmentCents, &expense.Status, &expense.Note,
		&revision, &expense.CreatedAt, &expense.ProcessedAt,
	)
	if err == sql.ErrNoRows {
		return nil, 0, utils.NewNotFoundError("Expense")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load expense: %v", err)
	}

	if err := loadExpenseDetails(q, &expense); err != nil {
		return nil, 0, err
	}
	return &expense, revision, nil
}

// GetExpensesByHousehold retrieves all expenses for a household, newest first
func (r *ExpenseRepository) GetExpensesByHousehold(householdID string) ([]*models.Expense, error) {
	rows, err := r.DB.Query(
		`SELECT id, household_id, created_by, payer_id, total_cents, currency, method,
                rounding_adjustment_cents, status, note, created_at, processed_at
         FROM expenses WHERE household_id = $1 ORDER BY created_at DESC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %v", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var expense models.Expense
		err := rows.Scan(
			&expense.ID, &expense.HouseholdID, &expense.CreatedBy, &expense.PayerID,
			&expense.TotalCents, &expense.Currency, &expense.Method,
			&expense.RoundingAdjustmentCents, &expense.Status, &expense.Note,
			&expense.CreatedAt, &expense.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		expenses = append(expenses, &expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %v", err)
	}

	for _, expense := range expenses {
		if err := loadExpenseDetails(r.DB, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// loadExpenseDetails fills participants, entries and split inputs for an expense
func loadExpenseDetails(q querier, expense *models.Expense) error {
	rows, err := q.Query(
		"SELECT user_id FROM expense_participants WHERE expense_id = $1 ORDER BY user_id",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query participants: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan participant: %v", err)
		}
		expense.Participants = append(expense.Participants, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %v", err)
	}

	entryRows, err := q.Query(
		`SELECT user_id, amount_cents, settled_cents
         FROM expense_entries WHERE expense_id = $1 ORDER BY position`,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query entries: %v", err)
	}
	defer entryRows.Close()
	for entryRows.Next() {
		var entry models.ExpenseEntry
		if err := entryRows.Scan(&entry.UserID, &entry.AmountCents, &entry.SettledCents); err != nil {
			return fmt.Errorf("failed to scan entry: %v", err)
		}
		expense.Entries = append(expense.Entries, entry)
	}
	if err := entryRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate entries: %v", err)
	}

	if expense.Method == utils.MethodShares {
		shareRows, err := q.Query(
			"SELECT user_id, weight FROM expense_shares WHERE expense_id = $1",
			expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to query shares: %v", err)
		}
		defer shareRows.Close()
		expense.Shares = make(map[string]float64)
		for shareRows.Next() {
			var userID string
			var weight float64
			if err := shareRows.Scan(&userID, &weight); err != nil {
				return fmt.Errorf("failed to scan share: %v", err)
			}
			expense.Shares[userID] = weight
		}
		if err := shareRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate shares: %v", err)
		}
	}

	if expense.Method == utils.MethodCustom {
		customRows, err := q.Query(
			"SELECT user_id, amount_cents FROM expense_custom_amounts WHERE expense_id = $1",
			expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to query custom amounts: %v", err)
		}
		defer customRows.Close()
		expense.CustomAmounts = make(map[string]int64)
		for customRows.Next() {
			var userID string
			var amount int64
			if err := customRows.Scan(&userID, &amount); err != nil {
				return fmt.Errorf("failed to scan custom amount: %v", err)
			}
			expense.CustomAmounts[userID] = amount
		}
		if err := customRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate custom amounts: %v", err)
		}
	}

	return nil
}

// UpdateSettlementTx writes back an expense's settlement state conditioned on
// the revision read earlier. A stale revision returns a ConflictError and
// writes nothing; the caller re-reads and recomputes.
func (r *ExpenseRepository) UpdateSettlementTx(tx *sql.Tx, expense *models.Expense, revision int64) error {
	result, err := tx.Exec(
		`UPDATE expenses SET status = $1, processed_at = $2, revision = revision + 1
         WHERE id = $3 AND revision = $4`,
		expense.Status, expense.ProcessedAt, expense.ID, revision,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %v", err)
	}
	if affected == 0 {
		return utils.NewConflictError("expense")
	}

	for _, entry := range expense.Entries {
		_, err := tx.Exec(
			"UPDATE expense_entries SET settled_cents = $1 WHERE expense_id = $2 AND user_id = $3",
			entry.SettledCents, expense.ID, entry.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update entry: %v", err)
		}
	}
	return nil
}

// UpdateStatus writes back a status-only change (cancellation) conditioned on
// the revision read earlier
func (r *ExpenseRepository) UpdateStatus(expense *models.Expense, revision int64) error {
	result, err := r.DB.Exec(
		`UPDATE expenses SET status = $1, revision = revision + 1
         WHERE id = $2 AND revision = $3`,
		expense.Status, expense.ID, revision,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense status: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %v", err)
	}
	if affected == 0 {
		return utils.NewConflictError("expense")
	}
	return nil
}

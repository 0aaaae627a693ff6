// repository/household_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
)

// HouseholdRepository exposes the household data the ledger needs:
// existence checks and the member-id set used for participant validation.
// Household CRUD itself lives outside this service.
type HouseholdRepository struct {
	db *sql.DB
}

// NewHouseholdRepository creates a new household repository
func NewHouseholdRepository() *HouseholdRepository {
	return &HouseholdRepository{db: GetDB()}
}

// GetHouseholdByID retrieves a household by its ID
func (r *HouseholdRepository) GetHouseholdByID(householdID string) (*models.Household, error) {
	var household models.Household
	err := r.db.QueryRow(
		"SELECT id, name, invite_code, created_at FROM households WHERE id = $1",
		householdID,
	).Scan(&household.ID, &household.Name, &household.InviteCode, &household.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, utils.NewNotFoundError("Household")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load household: %v", err)
	}
	return &household, nil
}

// GetMembers retrieves all members of a household
func (r *HouseholdRepository) GetMembers(householdID string) ([]models.HouseholdMember, error) {
	rows, err := r.db.Query(
		`SELECT household_id, user_id, display_name, role, joined_at
         FROM household_members WHERE household_id = $1 ORDER BY user_id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %v", err)
	}
	defer rows.Close()

	var members []models.HouseholdMember
	for rows.Next() {
		var member models.HouseholdMember
		err := rows.Scan(&member.HouseholdID, &member.UserID, &member.DisplayName, &member.Role, &member.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %v", err)
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// GetMemberIDs retrieves the set of member user ids for a household
func (r *HouseholdRepository) GetMemberIDs(householdID string) (map[string]bool, error) {
	members, err := r.GetMembers(householdID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(members))
	for _, member := range members {
		ids[member.UserID] = true
	}
	return ids, nil
}

package services

import (
	"fmt"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/repository"
	"github.com/Max-Ratcliff/ShelfMates/utils"
)

// HouseholdService is the ledger's view of households: it answers which
// user ids are members so split and payment requests can be validated.
// Full household management happens elsewhere.
type HouseholdService struct {
	householdRepo *repository.HouseholdRepository
}

// NewHouseholdService creates a new household service
func NewHouseholdService(householdRepo *repository.HouseholdRepository) *HouseholdService {
	return &HouseholdService{householdRepo: householdRepo}
}

// GetHousehold retrieves a household by ID
func (s *HouseholdService) GetHousehold(householdID string) (*models.Household, error) {
	return s.householdRepo.GetHouseholdByID(householdID)
}

// GetMembers retrieves all members of a household
func (s *HouseholdService) GetMembers(householdID string) ([]models.HouseholdMember, error) {
	if _, err := s.householdRepo.GetHouseholdByID(householdID); err != nil {
		return nil, err
	}
	return s.householdRepo.GetMembers(householdID)
}

// RequireMembers verifies that every given user id belongs to the household
func (s *HouseholdService) RequireMembers(householdID string, userIDs ...string) error {
	memberIDs, err := s.householdRepo.GetMemberIDs(householdID)
	if err != nil {
		return err
	}
	for _, userID := range userIDs {
		if !memberIDs[userID] {
			return utils.NewValidationError(fmt.Sprintf("user %s is not a member of the household", userID))
		}
	}
	return nil
}

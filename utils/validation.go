package utils

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositiveCents checks if an amount in cents is positive
func ValidatePositiveCents(cents int64, fieldName string) error {
	if cents <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateCurrency checks that a currency is a three-letter uppercase code
func ValidateCurrency(currency string) error {
	if len(currency) != 3 {
		return NewValidationError("currency must be a three-letter code")
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return NewValidationError("currency must be a three-letter code")
		}
	}
	return nil
}

// ValidateUserIDs validates that all user ids in a slice are not empty
func ValidateUserIDs(userIDs []string) error {
	for i, id := range userIDs {
		if strings.TrimSpace(id) == "" {
			return NewValidationError(fmt.Sprintf("participant %d id cannot be empty", i+1))
		}
	}
	return nil
}

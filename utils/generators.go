package utils

import (
	"math/rand"

	"github.com/google/uuid"
)

// GenerateID generates a unique identifier for entities
func GenerateID() string {
	return uuid.NewString()
}

// GenerateInviteCode generates a random household invite code
func GenerateInviteCode() string {
	result := make([]byte, CodeLength)
	for i := range result {
		result[i] = CodeCharset[rand.Intn(len(CodeCharset))]
	}
	return string(result)
}

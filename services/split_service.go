package services

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
)

// SplitService translates an expense request into the canonical per-member
// breakdown. All arithmetic is integer minor-units; the returned entries
// always sum exactly to the requested total.
type SplitService struct{}

// NewSplitService creates a new split service
func NewSplitService() *SplitService {
	return &SplitService{}
}

// Split computes the ordered per-member entries for an expense.
// Entries are returned sorted by user id ascending. The second return value
// is the number of remainder cents the rounding rule had to assign.
// Split is pure: it runs once at expense creation and the result is persisted.
func (s *SplitService) Split(totalCents int64, payerID string, participants []string, method string, shares map[string]float64, customAmounts map[string]int64) ([]models.ExpenseEntry, int64, error) {
	if totalCents <= 0 {
		return nil, 0, utils.NewInvalidSplitError("total must be positive")
	}
	if len(participants) == 0 {
		return nil, 0, utils.NewInvalidSplitError("participants cannot be empty")
	}
	if err := utils.ValidateUserIDs(participants); err != nil {
		return nil, 0, utils.NewInvalidSplitError(err.Error())
	}

	sorted := sortedUnique(participants)
	if len(sorted) != len(participants) {
		return nil, 0, utils.NewInvalidSplitError("participants contain duplicates")
	}

	switch method {
	case utils.MethodEqual:
		return splitEqual(totalCents, sorted)
	case utils.MethodShares:
		return splitShares(totalCents, sorted, shares)
	case utils.MethodCustom:
		return splitCustom(totalCents, sorted, customAmounts)
	case utils.MethodPayer:
		return splitPayer(totalCents, payerID, sorted)
	default:
		return nil, 0, utils.NewInvalidSplitError(fmt.Sprintf("unknown split method %q", method))
	}
}

// splitEqual assigns floor(total/n) to everyone and one extra cent each to
// the first remainder participants in ascending user id order.
func splitEqual(totalCents int64, participants []string) ([]models.ExpenseEntry, int64, error) {
	n := int64(len(participants))
	base := totalCents / n
	remainder := totalCents - base*n

	entries := make([]models.ExpenseEntry, len(participants))
	for i, userID := range participants {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		entries[i] = models.ExpenseEntry{UserID: userID, AmountCents: amount}
	}
	return entries, remainder, nil
}

// splitShares distributes the total proportionally to per-member weights.
// Weights are converted to fixed-point scaled integers and the products are
// computed with big integers, so the cents-sum invariant holds exactly.
// Leftover cents go to the largest fractional remainders first (ties broken
// by ascending user id).
func splitShares(totalCents int64, participants []string, shares map[string]float64) ([]models.ExpenseEntry, int64, error) {
	if len(shares) == 0 {
		return nil, 0, utils.NewInvalidSplitError("shares are required for the shares method")
	}

	participantSet := make(map[string]bool, len(participants))
	for _, p := range participants {
		participantSet[p] = true
	}
	for userID := range shares {
		if !participantSet[userID] {
			return nil, 0, utils.NewInvalidSplitError(fmt.Sprintf("share weight for %s who is not a participant", userID))
		}
	}

	// Fixed-point conversion, half-up on the scaled value.
	weights := make(map[string]int64, len(shares))
	var sumWeights int64
	for userID, weight := range shares {
		if weight <= 0 {
			return nil, 0, utils.NewInvalidSplitError(fmt.Sprintf("share weight for %s must be positive", userID))
		}
		scaled := int64(weight*utils.ShareWeightScale + 0.5)
		if scaled <= 0 {
			return nil, 0, utils.NewInvalidSplitError(fmt.Sprintf("share weight for %s is too small", userID))
		}
		weights[userID] = scaled
		sumWeights += scaled
	}
	if sumWeights <= 0 {
		return nil, 0, utils.NewInvalidSplitError("share weights must sum to a positive value")
	}

	type pending struct {
		index     int
		remainder *big.Int
	}

	total := big.NewInt(totalCents)
	denom := big.NewInt(sumWeights)
	entries := make([]models.ExpenseEntry, len(participants))
	remainders := make([]pending, 0, len(participants))
	var assigned int64

	for i, userID := range participants {
		entries[i] = models.ExpenseEntry{UserID: userID}
		w, ok := weights[userID]
		if !ok {
			continue
		}
		num := new(big.Int).Mul(total, big.NewInt(w))
		quo, rem := new(big.Int).QuoRem(num, denom, new(big.Int))
		entries[i].AmountCents = quo.Int64()
		assigned += entries[i].AmountCents
		remainders = append(remainders, pending{index: i, remainder: rem})
	}

	leftover := totalCents - assigned
	sort.SliceStable(remainders, func(a, b int) bool {
		cmp := remainders[a].remainder.Cmp(remainders[b].remainder)
		if cmp != 0 {
			return cmp > 0
		}
		return entries[remainders[a].index].UserID < entries[remainders[b].index].UserID
	})
	for i := int64(0); i < leftover; i++ {
		entries[remainders[i].index].AmountCents++
	}

	return entries, leftover, nil
}

// splitCustom takes the caller's per-member amounts verbatim after checking
// they cover exactly the participant set and sum exactly to the total.
func splitCustom(totalCents int64, participants []string, customAmounts map[string]int64) ([]models.ExpenseEntry, int64, error) {
	if len(customAmounts) == 0 {
		return nil, 0, utils.NewInvalidSplitError("custom amounts are required for the custom method")
	}
	if len(customAmounts) != len(participants) {
		return nil, 0, utils.NewInvalidSplitError("custom amounts must cover exactly the participants")
	}

	entries := make([]models.ExpenseEntry, len(participants))
	var sum int64
	for i, userID := range participants {
		amount, ok := customAmounts[userID]
		if !ok {
			return nil, 0, utils.NewInvalidSplitError(fmt.Sprintf("missing custom amount for participant %s", userID))
		}
		if amount < 0 {
			return nil, 0, utils.NewInvalidSplitError(fmt.Sprintf("custom amount for %s cannot be negative", userID))
		}
		entries[i] = models.ExpenseEntry{UserID: userID, AmountCents: amount}
		sum += amount
	}
	if sum != totalCents {
		return nil, 0, utils.NewInvalidSplitError(fmt.Sprintf("custom amounts sum to %d cents, expected %d", sum, totalCents))
	}
	return entries, 0, nil
}

// splitPayer fronts the whole expense to the payer: the payer's entry is zero
// and the total is owed equally by the remaining participants.
func splitPayer(totalCents int64, payerID string, participants []string) ([]models.ExpenseEntry, int64, error) {
	if payerID == "" {
		return nil, 0, utils.NewInvalidSplitError("payer is required for the payer method")
	}

	nonPayers := make([]string, 0, len(participants))
	payerListed := false
	for _, userID := range participants {
		if userID == payerID {
			payerListed = true
			continue
		}
		nonPayers = append(nonPayers, userID)
	}
	if len(nonPayers) == 0 {
		return nil, 0, utils.NewInvalidSplitError("payer method requires at least one non-payer participant")
	}

	owed, remainder, err := splitEqual(totalCents, nonPayers)
	if err != nil {
		return nil, 0, err
	}
	if !payerListed {
		return owed, remainder, nil
	}

	entries := make([]models.ExpenseEntry, 0, len(participants))
	for _, userID := range participants {
		if userID == payerID {
			entries = append(entries, models.ExpenseEntry{UserID: userID, AmountCents: 0})
			continue
		}
		for _, e := range owed {
			if e.UserID == userID {
				entries = append(entries, e)
				break
			}
		}
	}
	return entries, remainder, nil
}

// sortedUnique returns a sorted copy of ids with duplicates collapsed
func sortedUnique(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	dedup := out[:0]
	for i, id := range out {
		if i == 0 || id != out[i-1] {
			dedup = append(dedup, id)
		}
	}
	return dedup
}

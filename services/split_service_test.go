package services

import (
	"testing"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAmounts(entries []models.ExpenseEntry) map[string]int64 {
	amounts := make(map[string]int64, len(entries))
	for _, e := range entries {
		amounts[e.UserID] = e.AmountCents
	}
	return amounts
}

func sumAmounts(entries []models.ExpenseEntry) int64 {
	var sum int64
	for _, e := range entries {
		sum += e.AmountCents
	}
	return sum
}

func TestSplitService_Equal_RemainderToFirstParticipants(t *testing.T) {
	service := NewSplitService()

	entries, adjustment, err := service.Split(100, "", []string{"C", "A", "B"}, utils.MethodEqual, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), adjustment)
	assert.Equal(t, map[string]int64{"A": 34, "B": 33, "C": 33}, entryAmounts(entries))
	assert.Equal(t, int64(100), sumAmounts(entries))

	// Entries come back ordered by user id
	assert.Equal(t, "A", entries[0].UserID)
	assert.Equal(t, "B", entries[1].UserID)
	assert.Equal(t, "C", entries[2].UserID)
}

func TestSplitService_Equal_SumAndSpreadInvariants(t *testing.T) {
	service := NewSplitService()

	cases := []struct {
		total        int64
		participants []string
	}{
		{1, []string{"a", "b", "c"}},
		{7, []string{"a", "b"}},
		{999, []string{"a", "b", "c", "d", "e", "f", "g"}},
		{100000001, []string{"u1", "u2", "u3"}},
	}

	for _, tc := range cases {
		entries, _, err := service.Split(tc.total, "", tc.participants, utils.MethodEqual, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.total, sumAmounts(entries), "total %d", tc.total)

		min, max := entries[0].AmountCents, entries[0].AmountCents
		for _, e := range entries {
			if e.AmountCents < min {
				min = e.AmountCents
			}
			if e.AmountCents > max {
				max = e.AmountCents
			}
		}
		assert.LessOrEqual(t, max-min, int64(1), "total %d", tc.total)
	}
}

func TestSplitService_Shares_ExactProportions(t *testing.T) {
	service := NewSplitService()

	entries, adjustment, err := service.Split(100, "", []string{"A", "B"}, utils.MethodShares,
		map[string]float64{"A": 1, "B": 3}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), adjustment)
	assert.Equal(t, map[string]int64{"A": 25, "B": 75}, entryAmounts(entries))
}

func TestSplitService_Shares_LargestRemainderDistribution(t *testing.T) {
	service := NewSplitService()

	// Ideal shares: A=33.33, B=33.33, C=33.33; ties broken by ascending id
	entries, adjustment, err := service.Split(100, "", []string{"B", "C", "A"}, utils.MethodShares,
		map[string]float64{"A": 1, "B": 1, "C": 1}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), adjustment)
	assert.Equal(t, map[string]int64{"A": 34, "B": 33, "C": 33}, entryAmounts(entries))
}

func TestSplitService_Shares_FractionalWeights(t *testing.T) {
	service := NewSplitService()

	// 0.1 : 0.2 is the same proportion as 1 : 2
	entries, _, err := service.Split(300, "", []string{"A", "B"}, utils.MethodShares,
		map[string]float64{"A": 0.1, "B": 0.2}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"A": 100, "B": 200}, entryAmounts(entries))
}

func TestSplitService_Shares_SumInvariantNeverDrifts(t *testing.T) {
	service := NewSplitService()

	// Weights that do not divide the total evenly
	totals := []int64{1, 10, 33, 101, 9999, 123456789}
	shares := map[string]float64{"a": 1.5, "b": 2.25, "c": 7.1}

	for _, total := range totals {
		entries, _, err := service.Split(total, "", []string{"a", "b", "c"}, utils.MethodShares, shares, nil)
		require.NoError(t, err)
		assert.Equal(t, total, sumAmounts(entries), "total %d", total)
	}
}

func TestSplitService_Custom_Identity(t *testing.T) {
	service := NewSplitService()

	custom := map[string]int64{"A": 10, "B": 60, "C": 30}
	entries, adjustment, err := service.Split(100, "", []string{"A", "B", "C"}, utils.MethodCustom, nil, custom)
	require.NoError(t, err)

	assert.Equal(t, int64(0), adjustment)
	assert.Equal(t, custom, entryAmounts(entries))
}

func TestSplitService_Custom_SumMismatchFails(t *testing.T) {
	service := NewSplitService()

	_, _, err := service.Split(100, "", []string{"A", "B"}, utils.MethodCustom, nil,
		map[string]int64{"A": 10, "B": 60})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindInvalidSplit))
}

func TestSplitService_Custom_MissingParticipantFails(t *testing.T) {
	service := NewSplitService()

	_, _, err := service.Split(100, "", []string{"A", "B", "C"}, utils.MethodCustom, nil,
		map[string]int64{"A": 40, "B": 60})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindInvalidSplit))
}

func TestSplitService_Payer_ZeroEntryForPayer(t *testing.T) {
	service := NewSplitService()

	entries, adjustment, err := service.Split(90, "A", []string{"A", "B", "C"}, utils.MethodPayer, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), adjustment)
	assert.Equal(t, map[string]int64{"A": 0, "B": 45, "C": 45}, entryAmounts(entries))
	assert.Equal(t, int64(90), sumAmounts(entries))
}

func TestSplitService_Payer_RequiresNonPayerParticipant(t *testing.T) {
	service := NewSplitService()

	_, _, err := service.Split(90, "A", []string{"A"}, utils.MethodPayer, nil, nil)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindInvalidSplit))
}

func TestSplitService_InvalidRequests(t *testing.T) {
	service := NewSplitService()

	cases := []struct {
		name         string
		total        int64
		participants []string
		method       string
		shares       map[string]float64
		custom       map[string]int64
	}{
		{"zero total", 0, []string{"A"}, utils.MethodEqual, nil, nil},
		{"negative total", -5, []string{"A"}, utils.MethodEqual, nil, nil},
		{"no participants", 100, nil, utils.MethodEqual, nil, nil},
		{"duplicate participants", 100, []string{"A", "A"}, utils.MethodEqual, nil, nil},
		{"unknown method", 100, []string{"A"}, "percentage", nil, nil},
		{"shares without weights", 100, []string{"A"}, utils.MethodShares, nil, nil},
		{"nonpositive weight", 100, []string{"A", "B"}, utils.MethodShares, map[string]float64{"A": 1, "B": 0}, nil},
		{"weight for outsider", 100, []string{"A"}, utils.MethodShares, map[string]float64{"A": 1, "Z": 2}, nil},
		{"custom without amounts", 100, []string{"A"}, utils.MethodCustom, nil, nil},
		{"negative custom amount", 100, []string{"A", "B"}, utils.MethodCustom, nil, map[string]int64{"A": -10, "B": 110}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := service.Split(tc.total, "", tc.participants, tc.method, tc.shares, tc.custom)
			require.Error(t, err)
			assert.True(t, utils.IsKind(err, utils.ErrKindInvalidSplit))
		})
	}
}

func TestSplitService_Deterministic(t *testing.T) {
	service := NewSplitService()

	first, adj1, err := service.Split(1003, "", []string{"x", "m", "a", "q"}, utils.MethodShares,
		map[string]float64{"x": 1.7, "m": 2.2, "a": 0.4, "q": 3.3}, nil)
	require.NoError(t, err)

	second, adj2, err := service.Split(1003, "", []string{"q", "a", "m", "x"}, utils.MethodShares,
		map[string]float64{"x": 1.7, "m": 2.2, "a": 0.4, "q": 3.3}, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, adj1, adj2)
}

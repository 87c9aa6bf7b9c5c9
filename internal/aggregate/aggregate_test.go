package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brubeckscan/internal/brubeck"
	"brubeckscan/internal/domain"
)

const testAddress = domain.Address("0x4a2A3501e50759250828ACd85E7450fb55A10a69")

var fetchedAt = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

func successResults() [domain.NumCategories]domain.FetchResult {
	return [domain.NumCategories]domain.FetchResult{
		{
			Category: domain.CategoryStatus,
			Status:   &domain.NodeStatus{Online: true, IdenticonURL: "https://identicons.example/node.png"},
		},
		{
			Category: domain.CategoryRewards,
			Rewards: &domain.RewardSummary{
				Staked:             decimal.NewFromInt(20000),
				ToBeReceived:       decimal.NewFromFloat(310.5),
				Rewards:            decimal.NewFromFloat(10520.25),
				ClaimCount:         3,
				TotalOpportunities: 10,
			},
		},
		{
			Category: domain.CategoryPayouts,
			Payouts: []domain.Payout{
				{Timestamp: time.Unix(1686700800, 0).UTC(), Value: decimal.NewFromFloat(4999.01)},
				{Timestamp: time.Unix(1686787200, 0).UTC(), Value: decimal.NewFromInt(5000)},
			},
		},
		{
			Category: domain.CategoryClaimCodes,
			Claims: []domain.ClaimCode{
				{ID: "code-a", ClaimTime: time.Date(2023, 6, 14, 22, 59, 59, 0, time.UTC)},
				{ID: "code-b", ClaimTime: time.Date(2023, 6, 15, 2, 30, 0, 0, time.UTC)},
			},
		},
	}
}

func failed(category domain.Category, kind brubeck.ErrorKind, code int) domain.FetchResult {
	return domain.FetchResult{
		Category: category,
		Err:      &brubeck.FetchError{Category: category, Kind: kind, StatusCode: code},
	}
}

func TestAggregate_AllSuccess(t *testing.T) {
	record := Aggregate(testAddress, successResults(), fetchedAt)

	assert.Equal(t, testAddress, record.Address)
	assert.Equal(t, domain.StateOnline, record.State)
	assert.Equal(t, "https://identicons.example/node.png", record.IdenticonURL)
	assert.True(t, record.Staked.Equal(decimal.NewFromInt(20000)))
	assert.True(t, record.ToBeReceived.Equal(decimal.NewFromFloat(310.5)))
	assert.True(t, record.Rewards.Equal(decimal.NewFromFloat(10520.25)))
	assert.Equal(t, 3, record.ClaimCount)
	assert.Equal(t, 10, record.TotalOpportunities)
	assert.InDelta(t, 30.0, record.ClaimPercentage, 1e-9)
	assert.Len(t, record.Payouts, 2)
	assert.Len(t, record.ClaimCodes, 2)
	assert.Empty(t, record.Failures)
	assert.Equal(t, fetchedAt, record.FetchedAt)
}

func TestAggregate_OfflineNode(t *testing.T) {
	results := successResults()
	results[0].Status = &domain.NodeStatus{Online: false}

	record := Aggregate(testAddress, results, fetchedAt)
	assert.Equal(t, domain.StateOffline, record.State)
}

func TestAggregate_StatusFailure(t *testing.T) {
	results := successResults()
	results[0] = failed(domain.CategoryStatus, brubeck.ErrorTimeout, 0)

	record := Aggregate(testAddress, results, fetchedAt)

	assert.Equal(t, domain.StateUnknown, record.State)
	assert.Empty(t, record.IdenticonURL)
	// Siblings stay populated.
	assert.Equal(t, 3, record.ClaimCount)
	assert.Len(t, record.Payouts, 2)
	assert.Len(t, record.ClaimCodes, 2)

	require.Len(t, record.Failures, 1)
	assert.Equal(t, domain.CategoryStatus, record.Failures[0].Category)
	assert.Equal(t, "timeout", record.Failures[0].Reason)
}

func TestAggregate_RewardsFailure(t *testing.T) {
	results := successResults()
	results[1] = failed(domain.CategoryRewards, brubeck.ErrorHTTPStatus, 500)

	record := Aggregate(testAddress, results, fetchedAt)

	assert.True(t, record.Staked.IsZero())
	assert.True(t, record.ToBeReceived.IsZero())
	assert.True(t, record.Rewards.IsZero())
	assert.Zero(t, record.ClaimCount)
	assert.Zero(t, record.TotalOpportunities)
	assert.Zero(t, record.ClaimPercentage)

	require.Len(t, record.Failures, 1)
	assert.Equal(t, "http_status:500", record.Failures[0].Reason)
}

func TestAggregate_TotalOverAllCombinations(t *testing.T) {
	// Every subset of the four categories may fail; aggregation must produce
	// a complete record for each of the 16 combinations.
	for mask := 0; mask < 1<<domain.NumCategories; mask++ {
		results := successResults()
		wantFailures := 0
		for i, category := range domain.Categories() {
			if mask&(1<<i) != 0 {
				results[i] = failed(category, brubeck.ErrorNetworkUnreachable, 0)
				wantFailures++
			}
		}

		record := Aggregate(testAddress, results, fetchedAt)

		require.NotNil(t, record, "mask %04b", mask)
		assert.Len(t, record.Failures, wantFailures, "mask %04b", mask)

		// Every field is defined: placeholders, never unset values.
		assert.NotEmpty(t, record.State, "mask %04b", mask)
		assert.NotNil(t, record.Payouts, "mask %04b", mask)
		assert.NotNil(t, record.ClaimCodes, "mask %04b", mask)
		assert.False(t, record.FetchedAt.IsZero(), "mask %04b", mask)
	}
}

func TestAggregate_ClaimPercentage(t *testing.T) {
	cases := []struct {
		name          string
		claims, total int
		want          float64
	}{
		{"three of ten", 3, 10, 30.0},
		{"all claimed", 10, 10, 100.0},
		{"none claimed", 0, 10, 0.0},
		{"zero opportunities", 5, 0, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results := successResults()
			results[1].Rewards.ClaimCount = tc.claims
			results[1].Rewards.TotalOpportunities = tc.total

			record := Aggregate(testAddress, results, fetchedAt)
			assert.InDelta(t, tc.want, record.ClaimPercentage, 1e-9)
		})
	}
}

func TestAggregate_PreservesListOrder(t *testing.T) {
	record := Aggregate(testAddress, successResults(), fetchedAt)

	require.Len(t, record.Payouts, 2)
	assert.True(t, record.Payouts[0].Timestamp.Before(record.Payouts[1].Timestamp),
		"payout payload order must be carried over untouched")

	require.Len(t, record.ClaimCodes, 2)
	assert.Equal(t, "code-a", record.ClaimCodes[0].ID)
	assert.Equal(t, "code-b", record.ClaimCodes[1].ID)
}

func TestAggregate_NilListsBecomeEmpty(t *testing.T) {
	results := successResults()
	results[2].Payouts = nil
	results[3].Claims = nil

	record := Aggregate(testAddress, results, fetchedAt)

	assert.NotNil(t, record.Payouts)
	assert.Empty(t, record.Payouts)
	assert.NotNil(t, record.ClaimCodes)
	assert.Empty(t, record.ClaimCodes)
}

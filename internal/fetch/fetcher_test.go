package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brubeckscan/internal/brubeck"
	"brubeckscan/internal/brubeck/stub"
	"brubeckscan/internal/domain"
)

const testAddress = domain.Address("0x4a2A3501e50759250828ACd85E7450fb55A10a69")

func seededClient() *stub.Client {
	client := stub.New()
	client.AddNode(testAddress,
		&domain.NodeStatus{Online: true, IdenticonURL: "https://identicons.example/node.png"},
		&domain.RewardSummary{
			Staked:             decimal.NewFromInt(20000),
			ToBeReceived:       decimal.NewFromFloat(310.5),
			Rewards:            decimal.NewFromInt(10520),
			ClaimCount:         3,
			TotalOpportunities: 10,
		},
		[]domain.Payout{
			{Timestamp: time.Unix(1686700800, 0).UTC(), Value: decimal.NewFromInt(5000)},
			{Timestamp: time.Unix(1686787200, 0).UTC(), Value: decimal.NewFromFloat(4999.01)},
		},
		[]domain.ClaimCode{
			{ID: "code-a", ClaimTime: time.Date(2023, 6, 14, 22, 59, 59, 0, time.UTC)},
			{ID: "code-b", ClaimTime: time.Date(2023, 6, 15, 2, 30, 0, 0, time.UTC)},
		},
	)
	return client
}

func newFetcher(client brubeck.Client) *Fetcher {
	return New(Options{Client: client, Logger: zerolog.Nop()})
}

func TestFetchAll_AllCategoriesSucceed(t *testing.T) {
	fetcher := newFetcher(seededClient())

	results := fetcher.FetchAll(context.Background(), testAddress)

	// Results are slotted in category order regardless of completion order.
	for i, category := range domain.Categories() {
		assert.Equal(t, category, results[i].Category)
		assert.NoError(t, results[i].Err)
	}

	require.NotNil(t, results[0].Status)
	assert.True(t, results[0].Status.Online)

	require.NotNil(t, results[1].Rewards)
	assert.Equal(t, 3, results[1].Rewards.ClaimCount)

	require.Len(t, results[2].Payouts, 2)
	assert.Equal(t, time.Unix(1686700800, 0).UTC(), results[2].Payouts[0].Timestamp)

	require.Len(t, results[3].Claims, 2)
	assert.Equal(t, "code-a", results[3].Claims[0].ID)
}

func TestFetchAll_OneFailureLeavesSiblingsPopulated(t *testing.T) {
	client := seededClient()
	client.FailCategory(domain.CategoryRewards, &brubeck.FetchError{
		Category:   domain.CategoryRewards,
		Kind:       brubeck.ErrorHTTPStatus,
		StatusCode: 500,
	})

	fetcher := newFetcher(client)
	results := fetcher.FetchAll(context.Background(), testAddress)

	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Status)

	require.Error(t, results[1].Err)
	assert.Equal(t, brubeck.ErrorHTTPStatus, brubeck.Kind(results[1].Err))
	assert.Nil(t, results[1].Rewards)

	assert.NoError(t, results[2].Err)
	assert.Len(t, results[2].Payouts, 2)

	assert.NoError(t, results[3].Err)
	assert.Len(t, results[3].Claims, 2)
}

func TestFetchAll_TimeoutDoesNotCancelSiblings(t *testing.T) {
	client := seededClient()
	client.FailCategory(domain.CategoryPayouts, &brubeck.FetchError{
		Category: domain.CategoryPayouts,
		Kind:     brubeck.ErrorTimeout,
	})

	fetcher := newFetcher(client)
	results := fetcher.FetchAll(context.Background(), testAddress)

	assert.Equal(t, brubeck.ErrorTimeout, brubeck.Kind(results[2].Err))
	for _, i := range []int{0, 1, 3} {
		assert.NoError(t, results[i].Err, "category %s should settle normally", results[i].Category)
	}
}

func TestFetchAll_AllCategoriesFail(t *testing.T) {
	client := stub.New() // empty: every category answers 404

	fetcher := newFetcher(client)
	results := fetcher.FetchAll(context.Background(), testAddress)

	for i, category := range domain.Categories() {
		assert.Equal(t, category, results[i].Category)
		require.Error(t, results[i].Err)
		assert.Equal(t, brubeck.ErrorHTTPStatus, brubeck.Kind(results[i].Err))
	}
}

func TestFetchAll_AlwaysReturnsFourSettledResults(t *testing.T) {
	client := seededClient()
	client.FailCategory(domain.CategoryStatus, &brubeck.FetchError{Category: domain.CategoryStatus, Kind: brubeck.ErrorNetworkUnreachable})
	client.FailCategory(domain.CategoryClaimCodes, &brubeck.FetchError{Category: domain.CategoryClaimCodes, Kind: brubeck.ErrorTimeout})

	fetcher := New(Options{Client: client, Workers: 1, Logger: zerolog.Nop()})
	results := fetcher.FetchAll(context.Background(), testAddress)

	settled := 0
	for _, result := range results {
		if result.Failed() || result.Status != nil || result.Rewards != nil || result.Payouts != nil || result.Claims != nil {
			settled++
		}
	}
	assert.Equal(t, domain.NumCategories, settled)
}

func TestNew_RaisesUndersizedPool(t *testing.T) {
	fetcher := New(Options{Client: stub.New(), Workers: 1, Logger: zerolog.Nop()})
	assert.Equal(t, DefaultWorkers, fetcher.workers)
}

// Package stub provides an in-memory brubeck.Client for tests and offline runs.
package stub

import (
	"context"
	"net/http"

	"brubeckscan/internal/brubeck"
	"brubeckscan/internal/domain"
)

// Client implements brubeck.Client from in-memory maps. Per-category errors
// take precedence over stored payloads; unknown addresses answer 404.
type Client struct {
	Statuses    map[domain.Address]*domain.NodeStatus
	Summaries   map[domain.Address]*domain.RewardSummary
	PayoutLists map[domain.Address][]domain.Payout
	ClaimLists  map[domain.Address][]domain.ClaimCode
	Errs        map[domain.Category]error
}

// New creates an empty stub client.
func New() *Client {
	return &Client{
		Statuses:    make(map[domain.Address]*domain.NodeStatus),
		Summaries:   make(map[domain.Address]*domain.RewardSummary),
		PayoutLists: make(map[domain.Address][]domain.Payout),
		ClaimLists:  make(map[domain.Address][]domain.ClaimCode),
		Errs:        make(map[domain.Category]error),
	}
}

// AddNode seeds all four categories for an address.
func (c *Client) AddNode(address domain.Address, status *domain.NodeStatus, summary *domain.RewardSummary, payouts []domain.Payout, claims []domain.ClaimCode) {
	c.Statuses[address] = status
	c.Summaries[address] = summary
	c.PayoutLists[address] = payouts
	c.ClaimLists[address] = claims
}

// FailCategory makes every request for the category settle with err.
func (c *Client) FailCategory(category domain.Category, err error) {
	c.Errs[category] = err
}

// NodeStatus returns the seeded status payload for the address.
func (c *Client) NodeStatus(_ context.Context, address domain.Address) (*domain.NodeStatus, error) {
	if err := c.Errs[domain.CategoryStatus]; err != nil {
		return nil, err
	}
	status, ok := c.Statuses[address]
	if !ok {
		return nil, notFound(domain.CategoryStatus)
	}
	return status, nil
}

// Rewards returns the seeded reward summary for the address.
func (c *Client) Rewards(_ context.Context, address domain.Address) (*domain.RewardSummary, error) {
	if err := c.Errs[domain.CategoryRewards]; err != nil {
		return nil, err
	}
	summary, ok := c.Summaries[address]
	if !ok {
		return nil, notFound(domain.CategoryRewards)
	}
	return summary, nil
}

// Payouts returns the seeded payout list for the address.
func (c *Client) Payouts(_ context.Context, address domain.Address) ([]domain.Payout, error) {
	if err := c.Errs[domain.CategoryPayouts]; err != nil {
		return nil, err
	}
	payouts, ok := c.PayoutLists[address]
	if !ok {
		return nil, notFound(domain.CategoryPayouts)
	}
	return payouts, nil
}

// ClaimCodes returns the seeded claim code list for the address.
func (c *Client) ClaimCodes(_ context.Context, address domain.Address) ([]domain.ClaimCode, error) {
	if err := c.Errs[domain.CategoryClaimCodes]; err != nil {
		return nil, err
	}
	claims, ok := c.ClaimLists[address]
	if !ok {
		return nil, notFound(domain.CategoryClaimCodes)
	}
	return claims, nil
}

func notFound(category domain.Category) *brubeck.FetchError {
	return &brubeck.FetchError{Category: category, Kind: brubeck.ErrorHTTPStatus, StatusCode: http.StatusNotFound}
}

// Verify interface compliance at compile time.
var _ brubeck.Client = (*Client)(nil)

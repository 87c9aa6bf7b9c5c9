// Package brubeck implements the client for the BrubeckScan node monitoring
// API. Each node exposes four read-only categories, fetched as
// GET <base_url>/<category>/<address> with a JSON body wrapped in a
// {"data": ...} envelope. Raw payloads are decoded once here; only domain
// types travel past this package.
package brubeck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"brubeckscan/internal/domain"
)

// Default configuration values.
const (
	// DefaultBaseURL is the public BrubeckScan monitoring API.
	DefaultBaseURL = "https://brubeck1.streamr.network:3013"
	// DefaultTimeout bounds each endpoint request. Requests are never retried.
	DefaultTimeout = 10 * time.Second
)

// Client fetches per-category node data from the monitoring API.
type Client interface {
	NodeStatus(ctx context.Context, address domain.Address) (*domain.NodeStatus, error)
	Rewards(ctx context.Context, address domain.Address) (*domain.RewardSummary, error)
	Payouts(ctx context.Context, address domain.Address) ([]domain.Payout, error)
	ClaimCodes(ctx context.Context, address domain.Address) ([]domain.ClaimCode, error)
}

// HTTPClient implements Client over the REST monitoring API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// ClientOption configures HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// NewHTTPClient creates a monitoring API client for the given base URL.
// An empty baseURL selects DefaultBaseURL.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope wraps every monitoring API response body.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// get performs a single GET <baseURL>/<category>/<address> and decodes the
// enveloped payload into result. Exactly one attempt per request; failures
// are classified into FetchError.
func (c *HTTPClient) get(ctx context.Context, category domain.Category, address domain.Address, result interface{}) error {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, category, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return classify(category, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(category, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Category: category, Kind: ErrorHTTPStatus, StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &FetchError{Category: category, Kind: ErrorBadPayload, Cause: fmt.Errorf("unmarshal envelope: %w", err)}
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return &FetchError{Category: category, Kind: ErrorBadPayload, Cause: fmt.Errorf("unmarshal %s payload: %w", category, err)}
	}
	return nil
}

// statusPayload is the raw status endpoint payload.
type statusPayload struct {
	Status       bool   `json:"status"`
	IdenticonURL string `json:"identiconURL"`
}

// NodeStatus retrieves the node's reported liveness and identicon.
func (c *HTTPClient) NodeStatus(ctx context.Context, address domain.Address) (*domain.NodeStatus, error) {
	var raw statusPayload
	if err := c.get(ctx, domain.CategoryStatus, address, &raw); err != nil {
		return nil, err
	}

	return &domain.NodeStatus{
		Online:       raw.Status,
		IdenticonURL: raw.IdenticonURL,
	}, nil
}

// rewardsPayload is the raw rewards endpoint payload. Amount fields arrive as
// decimal strings or numbers; decimal.Decimal accepts both.
type rewardsPayload struct {
	Staked             decimal.Decimal `json:"staked"`
	ToBeReceived       decimal.Decimal `json:"toBeReceived"`
	Rewards            decimal.Decimal `json:"rewards"`
	ClaimCount         int             `json:"claimCount"`
	TotalOpportunities int             `json:"totalOpportunities"`
}

// Rewards retrieves the node's staking and reward summary.
func (c *HTTPClient) Rewards(ctx context.Context, address domain.Address) (*domain.RewardSummary, error) {
	var raw rewardsPayload
	if err := c.get(ctx, domain.CategoryRewards, address, &raw); err != nil {
		return nil, err
	}

	return &domain.RewardSummary{
		Staked:             raw.Staked,
		ToBeReceived:       raw.ToBeReceived,
		Rewards:            raw.Rewards,
		ClaimCount:         raw.ClaimCount,
		TotalOpportunities: raw.TotalOpportunities,
	}, nil
}

// payoutEntry is one raw payout list item. Timestamp is unix seconds
// serialized as a string.
type payoutEntry struct {
	Timestamp string          `json:"timestamp"`
	Value     decimal.Decimal `json:"value"`
}

// Payouts retrieves the node's payout history in payload order.
func (c *HTTPClient) Payouts(ctx context.Context, address domain.Address) ([]domain.Payout, error) {
	var raw []payoutEntry
	if err := c.get(ctx, domain.CategoryPayouts, address, &raw); err != nil {
		return nil, err
	}

	payouts := make([]domain.Payout, len(raw))
	for i, entry := range raw {
		sec, err := strconv.ParseInt(entry.Timestamp, 10, 64)
		if err != nil {
			return nil, &FetchError{
				Category: domain.CategoryPayouts,
				Kind:     ErrorBadPayload,
				Cause:    fmt.Errorf("parse payout timestamp %q: %w", entry.Timestamp, err),
			}
		}
		payouts[i] = domain.Payout{
			Timestamp: time.Unix(sec, 0).UTC(),
			Value:     entry.Value,
		}
	}

	return payouts, nil
}

// claimEntry is one raw claimed reward code. ClaimTime is RFC 3339 with
// fractional seconds in UTC.
type claimEntry struct {
	ID        string `json:"id"`
	ClaimTime string `json:"claimTime"`
}

// ClaimCodes retrieves the node's claimed reward codes in payload order.
func (c *HTTPClient) ClaimCodes(ctx context.Context, address domain.Address) ([]domain.ClaimCode, error) {
	var raw []claimEntry
	if err := c.get(ctx, domain.CategoryClaimCodes, address, &raw); err != nil {
		return nil, err
	}

	codes := make([]domain.ClaimCode, len(raw))
	for i, entry := range raw {
		claimedAt, err := time.Parse(time.RFC3339Nano, entry.ClaimTime)
		if err != nil {
			return nil, &FetchError{
				Category: domain.CategoryClaimCodes,
				Kind:     ErrorBadPayload,
				Cause:    fmt.Errorf("parse claim time %q: %w", entry.ClaimTime, err),
			}
		}
		codes[i] = domain.ClaimCode{
			ID:        entry.ID,
			ClaimTime: claimedAt.UTC(),
		}
	}

	return codes, nil
}

// Verify interface compliance at compile time.
var _ Client = (*HTTPClient)(nil)

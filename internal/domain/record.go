package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NodeState describes the reported liveness of a node.
type NodeState string

const (
	StateOnline  NodeState = "online"
	StateOffline NodeState = "offline"
	// StateUnknown marks records whose status endpoint did not respond.
	StateUnknown NodeState = "unknown"
)

// NodeStatus is the decoded payload of the status endpoint.
type NodeStatus struct {
	Online       bool
	IdenticonURL string
}

// RewardSummary is the decoded payload of the rewards endpoint.
// Amounts are denominated in $DATA tokens.
type RewardSummary struct {
	Staked             decimal.Decimal
	ToBeReceived       decimal.Decimal
	Rewards            decimal.Decimal
	ClaimCount         int
	TotalOpportunities int
}

// Payout is a single reward payout to a node. Timestamp is UTC.
type Payout struct {
	Timestamp time.Time
	Value     decimal.Decimal
}

// ClaimCode is a reward code claimed by a node. ClaimTime is UTC.
type ClaimCode struct {
	ID        string
	ClaimTime time.Time
}

// CategoryFailure records one endpoint that failed during a load cycle.
type CategoryFailure struct {
	Category Category
	Reason   string
}

// NodeRecord is the unified result of one load cycle. Every field carries a
// defined value after aggregation: categories that failed are filled with
// placeholders and listed in Failures. Records are not mutated once built.
type NodeRecord struct {
	Address            Address
	State              NodeState
	IdenticonURL       string
	Staked             decimal.Decimal
	ToBeReceived       decimal.Decimal
	Rewards            decimal.Decimal
	ClaimCount         int
	TotalOpportunities int
	ClaimPercentage    float64 // received claims as a percentage of opportunities
	Payouts            []Payout
	ClaimCodes         []ClaimCode
	Failures           []CategoryFailure
	FetchedAt          time.Time
}

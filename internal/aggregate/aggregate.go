// Package aggregate merges settled per-category fetch results into complete
// node records.
package aggregate

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"brubeckscan/internal/brubeck"
	"brubeckscan/internal/domain"
)

// Aggregate merges the four settled category results into a NodeRecord. It is
// total: it succeeds for every combination of successes and failures. Failed
// categories keep their placeholders (unknown state, zero amounts, empty
// lists) and are listed in Failures. Payout and claim code ordering is
// carried over from the payloads untouched.
func Aggregate(address domain.Address, results [domain.NumCategories]domain.FetchResult, fetchedAt time.Time) *domain.NodeRecord {
	record := &domain.NodeRecord{
		Address:      address,
		State:        domain.StateUnknown,
		Staked:       decimal.Zero,
		ToBeReceived: decimal.Zero,
		Rewards:      decimal.Zero,
		Payouts:      []domain.Payout{},
		ClaimCodes:   []domain.ClaimCode{},
		FetchedAt:    fetchedAt.UTC(),
	}

	for _, result := range results {
		if result.Failed() {
			record.Failures = append(record.Failures, domain.CategoryFailure{
				Category: result.Category,
				Reason:   failureReason(result.Err),
			})
			continue
		}

		switch result.Category {
		case domain.CategoryStatus:
			record.State = domain.StateOffline
			if result.Status.Online {
				record.State = domain.StateOnline
			}
			record.IdenticonURL = result.Status.IdenticonURL

		case domain.CategoryRewards:
			record.Staked = result.Rewards.Staked
			record.ToBeReceived = result.Rewards.ToBeReceived
			record.Rewards = result.Rewards.Rewards
			record.ClaimCount = result.Rewards.ClaimCount
			record.TotalOpportunities = result.Rewards.TotalOpportunities
			record.ClaimPercentage = claimPercentage(result.Rewards.ClaimCount, result.Rewards.TotalOpportunities)

		case domain.CategoryPayouts:
			if result.Payouts != nil {
				record.Payouts = result.Payouts
			}

		case domain.CategoryClaimCodes:
			if result.Claims != nil {
				record.ClaimCodes = result.Claims
			}
		}
	}

	return record
}

// claimPercentage is the share of claim opportunities the node converted, in
// percent. Zero opportunities yield 0 rather than dividing by zero.
func claimPercentage(claimCount, totalOpportunities int) float64 {
	if totalOpportunities <= 0 {
		return 0
	}
	return float64(claimCount) / float64(totalOpportunities) * 100
}

// failureReason renders a short machine-readable reason for a failed category.
func failureReason(err error) string {
	var fe *brubeck.FetchError
	if errors.As(err, &fe) {
		if fe.Kind == brubeck.ErrorHTTPStatus {
			return fmt.Sprintf("%s:%d", fe.Kind, fe.StatusCode)
		}
		return string(fe.Kind)
	}
	return err.Error()
}

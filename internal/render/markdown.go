// Package render turns aggregated node records into Markdown and CSV text.
// Display formatting lives here; records themselves stay raw and UTC.
package render

import (
	"fmt"
	"strings"
	"time"

	"brubeckscan/internal/domain"
	"brubeckscan/internal/timefmt"
)

// RenderMarkdown renders a node record as Markdown in the given zone.
// Payout values are rounded up to whole tokens; exact values are kept for
// the CSV export.
func RenderMarkdown(record *domain.NodeRecord, loc *time.Location) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Streamr Node %s\n\n", record.Address.Short()))
	sb.WriteString(fmt.Sprintf("Fetched: %s\n\n", timefmt.Stamp(record.FetchedAt, loc)))
	if record.IdenticonURL != "" {
		sb.WriteString(fmt.Sprintf("Identicon: %s\n\n", record.IdenticonURL))
	}

	// Node metrics
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Status | %s |\n", statusBadge(record.State)))
	sb.WriteString(fmt.Sprintf("| Staked $DATA | %s |\n", record.Staked.String()))
	sb.WriteString(fmt.Sprintf("| To Be Received | %s |\n", record.ToBeReceived.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("| Total Rewards | %s |\n", record.Rewards.String()))
	sb.WriteString(fmt.Sprintf("| Claim Count | %d of %d |\n", record.ClaimCount, record.TotalOpportunities))
	sb.WriteString(fmt.Sprintf("| Received Claims %% | %.2f |\n", record.ClaimPercentage))
	sb.WriteString("\n")

	// Payouts, newest first
	sb.WriteString("## Payouts\n\n")
	if len(record.Payouts) > 0 {
		sb.WriteString("| Time | $DATA |\n")
		sb.WriteString("|------|-------|\n")
		for i := len(record.Payouts) - 1; i >= 0; i-- {
			payout := record.Payouts[i]
			sb.WriteString(fmt.Sprintf("| %s | %s |\n",
				timefmt.Stamp(payout.Timestamp, loc), payout.Value.Ceil().String()))
		}
	} else {
		sb.WriteString("No payouts recorded.\n")
	}
	sb.WriteString("\n")

	// Claimed reward codes
	sb.WriteString("## Latest Codes\n\n")
	if len(record.ClaimCodes) > 0 {
		for _, code := range record.ClaimCodes {
			sb.WriteString(fmt.Sprintf("- %s → %s\n", code.ID, timefmt.Clock(code.ClaimTime, loc)))
		}
	} else {
		sb.WriteString("No claimed codes.\n")
	}
	sb.WriteString("\n")

	// Failures, only when present
	if len(record.Failures) > 0 {
		sb.WriteString("## Failed Categories\n\n")
		for _, failure := range record.Failures {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", failure.Category, failure.Reason))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// statusBadge maps a node state onto its display badge.
func statusBadge(state domain.NodeState) string {
	switch state {
	case domain.StateOnline:
		return "OK"
	case domain.StateOffline:
		return "NO"
	default:
		return "unknown"
	}
}

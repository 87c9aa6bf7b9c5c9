package render

import (
	"fmt"
	"strings"
	"time"

	"brubeckscan/internal/domain"
)

// RenderPayoutsCSV renders the payout table as CSV. Timestamps are RFC3339
// UTC and values keep their full precision; the export is for machines, not
// for display.
func RenderPayoutsCSV(record *domain.NodeRecord) string {
	var sb strings.Builder

	// Header
	sb.WriteString("timestamp,value\n")

	// Rows, payload order
	for _, payout := range record.Payouts {
		sb.WriteString(fmt.Sprintf("%s,%s\n",
			payout.Timestamp.UTC().Format(time.RFC3339), payout.Value.String()))
	}

	return sb.String()
}

// RenderClaimCodesCSV renders the claimed reward codes as CSV.
func RenderClaimCodesCSV(record *domain.NodeRecord) string {
	var sb strings.Builder

	// Header
	sb.WriteString("id,claim_time\n")

	// Rows, payload order
	for _, code := range record.ClaimCodes {
		sb.WriteString(fmt.Sprintf("%s,%s\n",
			code.ID, code.ClaimTime.UTC().Format(time.RFC3339Nano)))
	}

	return sb.String()
}

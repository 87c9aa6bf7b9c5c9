// Package timefmt renders record timestamps in a caller-selected timezone.
//
// Zone resolution is total for callers that need it to be: the OrUTC variant
// silently falls back to UTC for unknown zone names, so display paths never
// fail on a bad selection.
package timefmt

import (
	"errors"
	"fmt"
	"time"

	// Embed the IANA database so zone lookups work on hosts without one.
	_ "time/tzdata"
)

const (
	// ClockLayout renders a bare time of day, used for claim code times.
	ClockLayout = "03:04:05 PM"

	// StampLayout renders a full timestamp with zone abbreviation, used for
	// payout times.
	StampLayout = "Mon, 02 Jan 2006 15:04:05 MST"
)

// ErrUnknownZone is returned when a zone name is not in the IANA database.
var ErrUnknownZone = errors.New("unknown timezone")

// Resolve maps a zone name onto its location. Empty names resolve to UTC.
func Resolve(zone string) (*time.Location, error) {
	if zone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownZone, zone, err)
	}
	return loc, nil
}

// ResolveOrUTC maps a zone name onto its location, falling back to UTC when
// the name is unknown.
func ResolveOrUTC(zone string) *time.Location {
	loc, err := Resolve(zone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock renders the time of day in the given location.
func Clock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(ClockLayout)
}

// Stamp renders the full timestamp in the given location.
func Stamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(StampLayout)
}

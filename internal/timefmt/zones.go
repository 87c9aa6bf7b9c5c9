package timefmt

// DefaultZone is the initial display selection.
const DefaultZone = "US/Eastern"

// catalogue is the fixed set of zones offered for display selection. Any
// IANA name is accepted by Resolve; this list only feeds selection controls.
var catalogue = []string{
	"UTC",
	"US/Eastern",
	"US/Central",
	"US/Mountain",
	"US/Pacific",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/Toronto",
	"America/Mexico_City",
	"America/Sao_Paulo",
	"America/Argentina/Buenos_Aires",
	"Europe/London",
	"Europe/Dublin",
	"Europe/Paris",
	"Europe/Berlin",
	"Europe/Madrid",
	"Europe/Amsterdam",
	"Europe/Helsinki",
	"Europe/Moscow",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Singapore",
	"Asia/Hong_Kong",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Asia/Seoul",
	"Australia/Sydney",
	"Pacific/Auckland",
}

// Zones returns the curated zone names offered for display selection.
func Zones() []string {
	out := make([]string, len(catalogue))
	copy(out, catalogue)
	return out
}

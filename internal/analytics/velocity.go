package analytics

import (
	"sort"
	"time"
)

// SnapshotPoint is one (date, units sold) measurement from the history log.
type SnapshotPoint struct {
	Date      time.Time `json:"date"`
	UnitsSold int       `json:"units_sold"`
}

// VelocityWindows are the trailing windows shown on the trends page, in days.
var VelocityWindows = []int{7, 30, 90, 365}

// VelocityDelta computes the change in units sold over a trailing window
// ending at asOf. Both endpoints use the most recent snapshot at or before
// the target date; snapshot cadence is irregular, so no interpolation between
// snapshots is attempted. With no snapshot at or before asOf, or no baseline
// at or before asOf-window, the delta is 0 (no signal rather than a guess).
// Negative deltas (cancellations) are reported as-is.
func VelocityDelta(history []SnapshotPoint, asOf time.Time, windowDays int) int {
	pts := make([]SnapshotPoint, 0, len(history))
	for _, p := range history {
		if !p.Date.After(asOf) {
			pts = append(pts, p)
		}
	}
	if len(pts) == 0 {
		return 0
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Date.After(pts[j].Date) })

	current := pts[0].UnitsSold
	target := asOf.AddDate(0, 0, -windowDays)
	for _, p := range pts {
		if !p.Date.After(target) {
			return current - p.UnitsSold
		}
	}
	return 0
}

// Velocities computes the delta for each standard window.
func Velocities(history []SnapshotPoint, asOf time.Time) map[int]int {
	out := make(map[int]int, len(VelocityWindows))
	for _, w := range VelocityWindows {
		out[w] = VelocityDelta(history, asOf, w)
	}
	return out
}

// LastSync returns the latest non-zero timestamp across datasets, or the zero
// time when nothing has been scraped yet.
func LastSync(times []time.Time) time.Time {
	var latest time.Time
	for _, t := range times {
		if t.After(latest) {
			latest = t
		}
	}
	return latest
}

package parse

import (
	"strconv"
	"strings"
)

// ParseAmount converts a currency string like "RM 1,200.00" to a float.
// Empty or unparsable input yields 0.0; the scrape data is too dirty to
// treat bad amounts as errors.
func ParseAmount(text string) float64 {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, "RM", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// IsSold reports whether a raw status string marks the unit as sold.
// The portal emits "Telah Dijual"; some exports carry the English "Sold".
func IsSold(status string) bool {
	s := strings.ToLower(status)
	if strings.Contains(s, "telah dijual") {
		return true
	}
	// "unsold" contains "sold"; keep the two predicates disjoint.
	return strings.Contains(s, "sold") && !strings.Contains(s, "unsold")
}

// IsUnsold reports whether a raw status string marks the unit as unsold.
// A status matching neither IsSold nor IsUnsold is valid; such units count
// toward the total only.
func IsUnsold(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "belum dijual") || strings.Contains(s, "unsold")
}

// IsBumiQuota reports whether the bumi-quota flag is affirmative ("Ya").
func IsBumiQuota(flag string) bool {
	return strings.EqualFold(strings.TrimSpace(flag), "ya")
}

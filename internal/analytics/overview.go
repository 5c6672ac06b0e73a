package analytics

import (
	"math"
	"sort"

	"devintel-backend/internal/pkg/parse"
	"devintel-backend/internal/schema"
)

// ProjectOverviewRow is the canonical project-level aggregate. The JSON keys
// form the stable column contract dashboard consumers depend on; the CSV
// export reproduces the same set in the same order.
type ProjectOverviewRow struct {
	No            int     `json:"No."`
	Developer     string  `json:"Pemaju"`
	ProjectLabel  string  `json:"Kod Projek & Nama Projek"`
	ProjectStatus string  `json:"Status Projek"`
	TotalUnits    int     `json:"Total Unit"`
	UnitsSold     int     `json:"Unit Terjual"`
	UnitsUnsold   int     `json:"Unit Belum Jual"`
	TakeUpPct     float64 `json:"Take-Up %"`
	SalesValueRM  float64 `json:"Jumlah Jualan (RM)"`
	UnitsBumi     int     `json:"Unit Bumi"`
	UnitsNonBumi  int     `json:"Unit Non Bumi"`
	District      string  `json:"Daerah"`
	State         string  `json:"Negeri"`
}

// OverviewColumns is the fixed header set, in display order. Consumers never
// see a schema-less result: an empty aggregation still carries these columns.
var OverviewColumns = []string{
	"No.", "Pemaju", "Kod Projek & Nama Projek", "Status Projek",
	"Total Unit", "Unit Terjual", "Unit Belum Jual", "Take-Up %",
	"Jumlah Jualan (RM)", "Unit Bumi", "Unit Non Bumi", "Daerah", "Negeri",
}

type groupKey struct {
	developer string
	label     string
}

// BuildProjectOverview aggregates unit rows into one row per
// (developer, project label) and left-merges master metadata.
// The result is fully recomputed on every call, sorted by (developer, label)
// with missing keys last, and numbered 1-based for display.
func BuildProjectOverview(units []schema.UnitRecord, masters []schema.ProjectMasterRecord) []ProjectOverviewRow {
	groups := make(map[groupKey]*ProjectOverviewRow)
	for _, u := range units {
		key := groupKey{developer: u.DeveloperName, label: u.Label()}
		row, ok := groups[key]
		if !ok {
			row = &ProjectOverviewRow{Developer: key.developer, ProjectLabel: key.label}
			groups[key] = row
		}
		sold := parse.IsSold(u.Status)
		row.TotalUnits++
		if sold {
			row.UnitsSold++
			row.SalesValueRM += parse.ParseAmount(u.PriceSales)
		}
		if parse.IsUnsold(u.Status) {
			row.UnitsUnsold++
		}
		if parse.IsBumiQuota(u.BumiQuota) {
			row.UnitsBumi++
		}
	}

	// Dedup masters by label before the merge, first occurrence wins, so a
	// duplicated master row can never fan out an aggregate row.
	meta := make(map[string]schema.ProjectMasterRecord, len(masters))
	for _, m := range masters {
		label := m.Label()
		if _, ok := meta[label]; !ok {
			meta[label] = m
		}
	}

	rows := make([]ProjectOverviewRow, 0, len(groups))
	for _, row := range groups {
		row.UnitsNonBumi = row.TotalUnits - row.UnitsBumi
		row.TakeUpPct = TakeUpRate(row.UnitsSold, row.TotalUnits)
		if m, ok := meta[row.ProjectLabel]; ok {
			row.District = m.LocationDistrict
			row.State = m.LocationState
			row.ProjectStatus = m.StatusOverall
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		// Empty keys sort last so unresolved rows trail the directory.
		if (a.Developer == "") != (b.Developer == "") {
			return b.Developer == ""
		}
		if a.Developer != b.Developer {
			return a.Developer < b.Developer
		}
		if (a.ProjectLabel == "") != (b.ProjectLabel == "") {
			return b.ProjectLabel == ""
		}
		return a.ProjectLabel < b.ProjectLabel
	})
	for i := range rows {
		rows[i].No = i + 1
	}
	return rows
}

// TakeUpRate is the pooled sold/total percentage rounded to one decimal,
// 0.0 when total is zero.
func TakeUpRate(sold, total int) float64 {
	if total <= 0 {
		return 0.0
	}
	return math.Round(float64(sold)/float64(total)*1000) / 10
}

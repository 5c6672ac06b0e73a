package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"devintel-backend/internal/analytics"
)

// ExportCSV renders the (optionally filtered) overview table as CSV bytes:
// UTF-8 with a leading BOM for spreadsheet compatibility, one header row,
// display-formatted RM and take-up values. The fixed column set is emitted
// even when there are no rows.
func (s *Service) ExportCSV(ctx context.Context, pemaju, query string) ([]byte, error) {
	ds := s.Load(ctx)
	rows := analytics.BuildProjectOverview(ds.Units, ds.Masters)
	if pemaju != "" && pemaju != AllDevelopers {
		rows = filterByDeveloper(rows, pemaju)
	}
	rows = SearchRows(rows, query)

	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)

	if err := w.Write(analytics.OverviewColumns); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(rowCells(r)); err != nil {
			return nil, fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rowCells renders a row in OverviewColumns order with display formatting.
// The same cells feed the directory search.
func rowCells(r analytics.ProjectOverviewRow) []string {
	return []string{
		strconv.Itoa(r.No),
		r.Developer,
		r.ProjectLabel,
		r.ProjectStatus,
		strconv.Itoa(r.TotalUnits),
		strconv.Itoa(r.UnitsSold),
		strconv.Itoa(r.UnitsUnsold),
		fmt.Sprintf("%.1f%%", r.TakeUpPct),
		FormatRM(r.SalesValueRM),
		strconv.Itoa(r.UnitsBumi),
		strconv.Itoa(r.UnitsNonBumi),
		r.District,
		r.State,
	}
}

// FormatRM renders a sales value as "RM 1,234,567" (whole ringgit, comma
// thousands separators).
func FormatRM(v float64) string {
	n := int64(v + 0.5)
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	out := "RM " + strings.Join(parts, ",")
	if neg {
		out = "RM -" + strings.Join(parts, ",")
	}
	return out
}

package analytics

// KPIBundle summarizes a set of overview rows for the headline cards.
type KPIBundle struct {
	Projects   int     `json:"projects"`
	Units      int     `json:"units"`
	Sold       int     `json:"sold"`
	Unsold     int     `json:"unsold"`
	SalesRM    float64 `json:"sales_rm"`
	Bumi       int     `json:"bumi"`
	NonBumi    int     `json:"non_bumi"`
	TakeUpRate float64 `json:"take_up"`
}

// Summarize reduces overview rows to a KPI bundle. The aggregate take-up rate
// pools sold/total across all rows rather than averaging per-project rates,
// so small projects cannot skew the headline number. Empty input yields an
// all-zero bundle, never an error.
func Summarize(rows []ProjectOverviewRow) KPIBundle {
	var k KPIBundle
	for _, r := range rows {
		k.Projects++
		k.Units += r.TotalUnits
		k.Sold += r.UnitsSold
		k.Unsold += r.UnitsUnsold
		k.SalesRM += r.SalesValueRM
		k.Bumi += r.UnitsBumi
		k.NonBumi += r.UnitsNonBumi
	}
	if k.Units > 0 {
		k.TakeUpRate = float64(k.Sold) / float64(k.Units) * 100
	}
	return k
}

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	rows := []ProjectOverviewRow{
		{TotalUnits: 10, UnitsSold: 9, UnitsUnsold: 1, SalesValueRM: 900000, UnitsBumi: 3, UnitsNonBumi: 7, TakeUpPct: 90.0},
		{TotalUnits: 90, UnitsSold: 9, UnitsUnsold: 81, SalesValueRM: 450000, UnitsBumi: 30, UnitsNonBumi: 60, TakeUpPct: 10.0},
	}
	k := Summarize(rows)
	assert.Equal(t, 2, k.Projects)
	assert.Equal(t, 100, k.Units)
	assert.Equal(t, 18, k.Sold)
	assert.Equal(t, 82, k.Unsold)
	assert.Equal(t, 1350000.0, k.SalesRM)
	assert.Equal(t, 33, k.Bumi)
	assert.Equal(t, 67, k.NonBumi)
	// Pooled 18/100, not the 50.0 mean of per-row rates.
	assert.Equal(t, 18.0, k.TakeUpRate)
}

func TestSummarizeEmpty(t *testing.T) {
	k := Summarize(nil)
	assert.Equal(t, KPIBundle{}, k)
	assert.Equal(t, 0.0, k.TakeUpRate)
}

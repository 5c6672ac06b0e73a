package analytics

import (
	"math/rand"
	"testing"

	"devintel-backend/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(dev, code, name, unitNo, price, status, bumi string) schema.UnitRecord {
	return schema.UnitRecord{
		DeveloperName: dev,
		ProjectCode:   code,
		ProjectName:   name,
		UnitNo:        unitNo,
		PriceSales:    price,
		Status:        status,
		BumiQuota:     bumi,
	}
}

func sampleUnits() []schema.UnitRecord {
	return []schema.UnitRecord{
		unit("Pemaju A", "MP1", "Taman Satu", "1", "RM 100,000.00", "Telah Dijual", "Ya"),
		unit("Pemaju A", "MP1", "Taman Satu", "2", "RM 110,000.00", "Telah Dijual", "Tidak"),
		unit("Pemaju A", "MP1", "Taman Satu", "3", "RM 120,000.00", "Belum Dijual", "Tidak"),
		unit("Pemaju A", "MP1", "Taman Satu", "4", "", "Tempahan", "Ya"),
		unit("Pemaju B", "MP2", "Taman Dua", "1", "RM 200,000.00", "Sold", "Tidak"),
		unit("Pemaju B", "MP2", "Taman Dua", "2", "RM 210,000.00", "Unsold", "Tidak"),
	}
}

func sampleMasters() []schema.ProjectMasterRecord {
	return []schema.ProjectMasterRecord{
		{DeveloperName: "Pemaju A", ProjectCode: "MP1", ProjectName: "Taman Satu",
			StatusOverall: "Dalam Pembinaan", LocationDistrict: "Melaka Tengah", LocationState: "Melaka"},
		// Duplicate master for MP1: the first occurrence must win.
		{DeveloperName: "Pemaju A", ProjectCode: "MP1", ProjectName: "Taman Satu",
			StatusOverall: "Siap", LocationDistrict: "Jasin", LocationState: "Melaka"},
	}
}

func TestBuildProjectOverview(t *testing.T) {
	rows := BuildProjectOverview(sampleUnits(), sampleMasters())
	require.Len(t, rows, 2)

	a := rows[0]
	assert.Equal(t, 1, a.No)
	assert.Equal(t, "Pemaju A", a.Developer)
	assert.Equal(t, "MP1 Taman Satu", a.ProjectLabel)
	assert.Equal(t, 4, a.TotalUnits)
	assert.Equal(t, 2, a.UnitsSold)
	assert.Equal(t, 1, a.UnitsUnsold)
	assert.Equal(t, 210000.0, a.SalesValueRM) // sold units only
	assert.Equal(t, 2, a.UnitsBumi)
	assert.Equal(t, 2, a.UnitsNonBumi)
	assert.Equal(t, 50.0, a.TakeUpPct)
	assert.Equal(t, "Dalam Pembinaan", a.ProjectStatus)
	assert.Equal(t, "Melaka Tengah", a.District)
	assert.Equal(t, "Melaka", a.State)

	b := rows[1]
	assert.Equal(t, 2, b.No)
	assert.Equal(t, "MP2 Taman Dua", b.ProjectLabel)
	assert.Equal(t, 2, b.TotalUnits)
	assert.Equal(t, 1, b.UnitsSold)
	assert.Equal(t, 1, b.UnitsUnsold)
	// No master row for MP2: metadata stays empty after the left merge.
	assert.Equal(t, "", b.District)
	assert.Equal(t, "", b.ProjectStatus)
}

// Shuffling the input order must not change the sorted output.
func TestBuildProjectOverviewDeterministic(t *testing.T) {
	base := BuildProjectOverview(sampleUnits(), sampleMasters())
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		units := sampleUnits()
		rng.Shuffle(len(units), func(a, b int) { units[a], units[b] = units[b], units[a] })
		assert.Equal(t, base, BuildProjectOverview(units, sampleMasters()))
	}
}

// Aggregating the same input twice yields identical output.
func TestBuildProjectOverviewIdempotent(t *testing.T) {
	first := BuildProjectOverview(sampleUnits(), sampleMasters())
	second := BuildProjectOverview(sampleUnits(), sampleMasters())
	assert.Equal(t, first, second)
}

func TestBuildProjectOverviewConservation(t *testing.T) {
	for _, r := range BuildProjectOverview(sampleUnits(), sampleMasters()) {
		assert.Equal(t, r.TotalUnits, r.UnitsBumi+r.UnitsNonBumi)
		assert.LessOrEqual(t, r.UnitsSold+r.UnitsUnsold, r.TotalUnits)
		assert.GreaterOrEqual(t, r.TakeUpPct, 0.0)
		assert.LessOrEqual(t, r.TakeUpPct, 100.0)
	}
}

func TestBuildProjectOverviewEmptyInput(t *testing.T) {
	rows := BuildProjectOverview(nil, nil)
	assert.NotNil(t, rows)
	assert.Len(t, rows, 0)
}

// Rows with no developer/label sort last.
func TestBuildProjectOverviewMissingKeysSortLast(t *testing.T) {
	units := append(sampleUnits(), unit("", "", "", "9", "", "Telah Dijual", ""))
	rows := BuildProjectOverview(units, nil)
	require.Len(t, rows, 3)
	assert.Equal(t, "", rows[2].Developer)
	assert.Equal(t, "", rows[2].ProjectLabel)
	assert.Equal(t, 3, rows[2].No)
}

func TestTakeUpRateRounding(t *testing.T) {
	assert.Equal(t, 33.3, TakeUpRate(1, 3))
	assert.Equal(t, 66.7, TakeUpRate(2, 3))
	assert.Equal(t, 100.0, TakeUpRate(7, 7))
	assert.Equal(t, 0.0, TakeUpRate(0, 0))
	assert.Equal(t, 0.0, TakeUpRate(5, 0))
}

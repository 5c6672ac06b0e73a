package trends

import (
	"context"
	"testing"
	"time"

	"devintel-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.HistoryLog{}))
	return &Store{DB: db}
}

func day(s string) datatypes.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(t)
}

func seedHistory(t *testing.T, s *Store) {
	t.Helper()
	require.NoError(t, s.Append(context.Background(), []models.HistoryLog{
		{ScrapedDate: day("2024-01-01"), DeveloperName: "Acme", ProjectCode: "P1", ProjectName: "Taman Indah", TotalUnits: 100, UnitsSold: 10, UnitsUnsold: 90, TakeUpRate: 10},
		{ScrapedDate: day("2024-02-01"), DeveloperName: "Acme", ProjectCode: "P1", ProjectName: "Taman Indah", TotalUnits: 100, UnitsSold: 25, UnitsUnsold: 75, TakeUpRate: 25},
		{ScrapedDate: day("2024-01-15"), DeveloperName: "Acme", ProjectCode: "P3", ProjectName: "Lembah Baru", TotalUnits: 50, UnitsSold: 5, UnitsUnsold: 45, TakeUpRate: 10},
		{ScrapedDate: day("2024-01-01"), DeveloperName: "Beta", ProjectCode: "P2", ProjectName: "Bukit Damai", TotalUnits: 40, UnitsSold: 4, UnitsUnsold: 36, TakeUpRate: 10},
	}))
}

func TestAppendAndDevelopers(t *testing.T) {
	s := setupStore(t)
	seedHistory(t, s)

	names, err := s.Developers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Beta"}, names)
}

func TestAppend_Empty(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Append(context.Background(), nil))
}

// TestAppend_NeverRewrites verifies the log only grows.
func TestAppend_NeverRewrites(t *testing.T) {
	s := setupStore(t)
	seedHistory(t, s)
	seedHistory(t, s)

	var count int64
	require.NoError(t, s.DB.Model(&models.HistoryLog{}).Count(&count).Error)
	assert.Equal(t, int64(8), count)
}

func TestProjectLabels(t *testing.T) {
	s := setupStore(t)
	seedHistory(t, s)

	labels, err := s.ProjectLabels(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"P1 Taman Indah", "P3 Lembah Baru"}, labels)

	none, err := s.ProjectLabels(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

// TestForProject returns one project's entries ascending by date.
func TestForProject(t *testing.T) {
	s := setupStore(t)
	seedHistory(t, s)

	entries, err := s.ForProject(context.Background(), "Acme", "P1 Taman Indah")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 10, entries[0].UnitsSold)
	assert.Equal(t, 25, entries[1].UnitsSold)
	assert.True(t, time.Time(entries[0].ScrapedDate).Before(time.Time(entries[1].ScrapedDate)))
}

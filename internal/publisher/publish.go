package publisher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"devintel-backend/internal/models"
	"devintel-backend/internal/pkg/parse"
	"devintel-backend/internal/schema"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stats summarizes one publish run.
type Stats struct {
	Units     int
	Masters   int
	Houses    int
	Snapshots int
}

// Publish replaces the three current-state tables with the scanned datasets
// and appends one snapshot per (project, scrape date) to the history log.
// The whole run is one transaction: the dashboard sees either the previous
// publish or this one, never a half-loaded state. History is append-only and
// never truncated.
func Publish(ctx context.Context, db *gorm.DB, ds Datasets) (Stats, error) {
	if len(ds.Units) == 0 {
		return Stats{}, fmt.Errorf("no unit data found; aborting publish")
	}

	snapshots := BuildSnapshots(ds.Units)
	var stats Stats

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.UnitDetail{}, &models.ProjectMaster{}, &models.HouseType{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("wipe current table: %w", err)
			}
		}

		units := make([]models.UnitDetail, 0, len(ds.Units))
		for _, u := range ds.Units {
			units = append(units, models.UnitDetail{
				ProjectCode:      u.ProjectCode,
				ProjectName:      u.ProjectName,
				PemajuName:       u.DeveloperName,
				PermitNo:         u.PermitNo,
				UnitNo:           u.UnitNo,
				PriceSales:       u.PriceSales,
				Status:           u.Status,
				BumiQuota:        u.BumiQuota,
				ScrapedDate:      u.ScrapedDate,
				ScrapedTimestamp: u.ScrapedTimestamp,
			})
		}
		if err := tx.CreateInBatches(units, 500).Error; err != nil {
			return fmt.Errorf("load units_detail: %w", err)
		}
		stats.Units = len(units)

		if len(ds.Masters) > 0 {
			masters := make([]models.ProjectMaster, 0, len(ds.Masters))
			for _, m := range ds.Masters {
				masters = append(masters, models.ProjectMaster{
					ProjectCode:      m.ProjectCode,
					ProjectName:      m.ProjectName,
					PemajuName:       m.DeveloperName,
					PermitNo:         m.PermitNo,
					StatusOverall:    m.StatusOverall,
					DevelopmentInfo:  m.DevelopmentInfo,
					LocationDistrict: m.LocationDistrict,
					LocationState:    m.LocationState,
					PermitValidDate:  m.PermitValidDate,
					ScrapedDate:      m.ScrapedDate,
					ScrapedTimestamp: m.ScrapedTimestamp,
				})
			}
			if err := tx.CreateInBatches(masters, 500).Error; err != nil {
				return fmt.Errorf("load projects_master: %w", err)
			}
			stats.Masters = len(masters)
		}

		if len(ds.Houses) > 0 {
			houses := make([]models.HouseType, 0, len(ds.Houses))
			for _, h := range ds.Houses {
				houses = append(houses, models.HouseType{
					ProjectCode:      h.ProjectCode,
					ProjectName:      h.ProjectName,
					PemajuName:       h.DeveloperName,
					HouseTypeName:    h.HouseType,
					NumFloors:        h.NumFloors,
					NumRooms:         h.NumRooms,
					NumBathrooms:     h.NumBathrooms,
					BuiltUpSize:      h.BuiltUpSize,
					TotalUnits:       h.TotalUnits,
					PriceMin:         h.PriceMin,
					PriceMax:         h.PriceMax,
					PercentActual:    h.PercentActual,
					ComponentStatus:  h.ComponentStatus,
					DateCCCCFO:       h.DateCCCCFO,
					DateVP:           h.DateVP,
					ScrapedDate:      h.ScrapedDate,
					ScrapedTimestamp: h.ScrapedTimestamp,
				})
			}
			if err := tx.CreateInBatches(houses, 500).Error; err != nil {
				return fmt.Errorf("load house_types: %w", err)
			}
			stats.Houses = len(houses)
		}

		if err := tx.Create(&snapshots).Error; err != nil {
			return fmt.Errorf("append history_logs: %w", err)
		}
		stats.Snapshots = len(snapshots)
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	log.Info().
		Int("units", stats.Units).
		Int("masters", stats.Masters).
		Int("houses", stats.Houses).
		Int("snapshots", stats.Snapshots).
		Msg("publish complete")
	return stats, nil
}

type snapshotKey struct {
	code, name, developer, date string
}

// BuildSnapshots aggregates unit rows into one history entry per
// (project, developer, scrape date). Output order is deterministic.
func BuildSnapshots(units []schema.UnitRecord) []models.HistoryLog {
	groups := make(map[snapshotKey]*models.HistoryLog)
	for _, u := range units {
		key := snapshotKey{code: u.ProjectCode, name: u.ProjectName, developer: u.DeveloperName, date: u.ScrapedDate}
		entry, ok := groups[key]
		if !ok {
			entry = &models.HistoryLog{
				ScrapedDate:   toDate(u.ScrapedDate),
				DeveloperName: u.DeveloperName,
				ProjectCode:   u.ProjectCode,
				ProjectName:   u.ProjectName,
			}
			groups[key] = entry
		}
		entry.TotalUnits++
		if parse.IsSold(u.Status) {
			entry.UnitsSold++
			entry.SalesValue += parse.ParseAmount(u.PriceSales)
		}
		if parse.IsBumiQuota(u.BumiQuota) {
			entry.UnitsBumi++
		}
	}

	out := make([]models.HistoryLog, 0, len(groups))
	for _, entry := range groups {
		entry.UnitsUnsold = entry.TotalUnits - entry.UnitsSold
		if entry.TotalUnits > 0 {
			entry.TakeUpRate = float64(entry.UnitsSold) / float64(entry.TotalUnits) * 100
		}
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DeveloperName != b.DeveloperName {
			return a.DeveloperName < b.DeveloperName
		}
		if a.ProjectCode != b.ProjectCode {
			return a.ProjectCode < b.ProjectCode
		}
		return time.Time(a.ScrapedDate).Before(time.Time(b.ScrapedDate))
	})
	return out
}

func toDate(s string) datatypes.Date {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.Date(t)
		}
	}
	// Unparsable scrape date: stamp with today so the snapshot is not lost.
	return datatypes.Date(time.Now())
}

package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"devintel-backend/internal/analytics"
	"devintel-backend/internal/cache"
	"devintel-backend/internal/models"
	"devintel-backend/internal/schema"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Cache keys, one per serving-store query.
const (
	cacheKeyUnits   = "select:units_detail"
	cacheKeyMasters = "select:projects_master"
	cacheKeyHouses  = "select:house_types"
)

// CacheKeys lists the dataset cache keys so the publisher can invalidate
// them after a load.
var CacheKeys = []string{cacheKeyUnits, cacheKeyMasters, cacheKeyHouses}

// AllDevelopers is the filter value meaning "no developer filter".
const AllDevelopers = "All"

// Service loads the current-state tables through the TTL cache and computes
// the derived views. Every call recomputes from the full dataset; nothing is
// mutated incrementally.
type Service struct {
	DB               *gorm.DB
	Cache            *cache.Store
	ShowAllWhenEmpty bool
}

// Datasets is the normalized current-state snapshot a render works from.
type Datasets struct {
	Units     []schema.UnitRecord
	Masters   []schema.ProjectMasterRecord
	Houses    []schema.HouseTypeRecord
	Available bool
	LastSync  time.Time
}

func loadTable[T any](ctx context.Context, s *Service, key string) ([]T, error) {
	var rows []T
	err := s.Cache.GetOrRefresh(ctx, key, &rows, func(ctx context.Context) (interface{}, error) {
		var fresh []T
		if err := s.DB.WithContext(ctx).Find(&fresh).Error; err != nil {
			return nil, err
		}
		return fresh, nil
	})
	return rows, err
}

// Load fetches all three current-state tables. A data-source failure is
// absorbed here: the render continues with an empty, correctly-shaped
// snapshot and Available=false, never a crash.
func (s *Service) Load(ctx context.Context) Datasets {
	ds := Datasets{Available: true}

	unitRows, err := loadTable[models.UnitDetail](ctx, s, cacheKeyUnits)
	if err != nil {
		log.Warn().Err(err).Msg("units_detail load failed; serving empty dataset")
		return Datasets{}
	}
	masterRows, err := loadTable[models.ProjectMaster](ctx, s, cacheKeyMasters)
	if err != nil {
		log.Warn().Err(err).Msg("projects_master load failed; serving empty dataset")
		return Datasets{}
	}
	houseRows, err := loadTable[models.HouseType](ctx, s, cacheKeyHouses)
	if err != nil {
		log.Warn().Err(err).Msg("house_types load failed; serving empty dataset")
		return Datasets{}
	}

	var times []time.Time
	for _, u := range unitRows {
		ds.Units = append(ds.Units, schema.UnitRecord{
			DeveloperName:    u.PemajuName,
			ProjectCode:      u.ProjectCode,
			ProjectName:      u.ProjectName,
			PermitNo:         u.PermitNo,
			UnitNo:           u.UnitNo,
			PriceSales:       u.PriceSales,
			Status:           u.Status,
			BumiQuota:        u.BumiQuota,
			ScrapedDate:      u.ScrapedDate,
			ScrapedTimestamp: u.ScrapedTimestamp,
		})
		times = append(times, parseScrapeTime(u.ScrapedTimestamp, u.ScrapedDate))
	}
	for _, m := range masterRows {
		ds.Masters = append(ds.Masters, schema.ProjectMasterRecord{
			DeveloperName:    m.PemajuName,
			ProjectCode:      m.ProjectCode,
			ProjectName:      m.ProjectName,
			PermitNo:         m.PermitNo,
			StatusOverall:    m.StatusOverall,
			DevelopmentInfo:  m.DevelopmentInfo,
			LocationDistrict: m.LocationDistrict,
			LocationState:    m.LocationState,
			PermitValidDate:  m.PermitValidDate,
			ScrapedDate:      m.ScrapedDate,
			ScrapedTimestamp: m.ScrapedTimestamp,
		})
		times = append(times, parseScrapeTime(m.ScrapedTimestamp, m.ScrapedDate))
	}
	for _, h := range houseRows {
		ds.Houses = append(ds.Houses, schema.HouseTypeRecord{
			DeveloperName:    h.PemajuName,
			ProjectCode:      h.ProjectCode,
			ProjectName:      h.ProjectName,
			HouseType:        h.HouseTypeName,
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
		times = append(times, parseScrapeTime(h.ScrapedTimestamp, h.ScrapedDate))
	}
	ds.LastSync = analytics.LastSync(times)
	return ds
}

var scrapeTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseScrapeTime(timestamp, date string) time.Time {
	for _, raw := range []string{timestamp, date} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range scrapeTimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// Developers returns the sorted distinct developer names from the master
// table.
func Developers(masters []schema.ProjectMasterRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range masters {
		name := strings.TrimSpace(m.DeveloperName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// OverviewResult is the single-view dashboard payload.
type OverviewResult struct {
	KPIs       analytics.KPIBundle            `json:"kpis"`
	Rows       []analytics.ProjectOverviewRow `json:"rows"`
	Developers []string                       `json:"developers"`
	LastSync   string                         `json:"last_sync"`
	Available  bool                           `json:"data_available"`
}

// Overview computes the full project overview, optionally filtered to one
// developer ("All" or empty means no filter).
func (s *Service) Overview(ctx context.Context, pemaju string) OverviewResult {
	ds := s.Load(ctx)
	rows := analytics.BuildProjectOverview(ds.Units, ds.Masters)
	if pemaju != "" && pemaju != AllDevelopers {
		rows = filterByDeveloper(rows, pemaju)
	}
	return OverviewResult{
		KPIs:       analytics.Summarize(rows),
		Rows:       rows,
		Developers: Developers(ds.Masters),
		LastSync:   formatLastSync(ds.LastSync),
		Available:  ds.Available,
	}
}

// ProjectsResult is the project-directory payload.
type ProjectsResult struct {
	Rows      []analytics.ProjectOverviewRow `json:"rows"`
	Available bool                           `json:"data_available"`
}

// Projects returns the full directory, filtered by a case-insensitive
// substring search across all display columns.
func (s *Service) Projects(ctx context.Context, query string) ProjectsResult {
	ds := s.Load(ctx)
	rows := analytics.BuildProjectOverview(ds.Units, ds.Masters)
	rows = SearchRows(rows, query)
	return ProjectsResult{Rows: rows, Available: ds.Available}
}

// CompareSide is one developer's half of the comparison view.
type CompareSide struct {
	Developer string                         `json:"developer"`
	Projects  []string                       `json:"projects"`
	Selected  []string                       `json:"selected"`
	KPIs      analytics.KPIBundle            `json:"kpis"`
	Rows      []analytics.ProjectOverviewRow `json:"rows"`
}

// CompareResult is the developer-vs-developer payload.
type CompareResult struct {
	A         CompareSide `json:"a"`
	B         CompareSide `json:"b"`
	Available bool        `json:"data_available"`
}

// Compare builds KPI bundles for two developers, each optionally narrowed to
// selected project labels. With an empty selection the behavior follows
// ShowAllWhenEmpty: the full portfolio, or nothing.
func (s *Service) Compare(ctx context.Context, devA, devB string, projectsA, projectsB []string) CompareResult {
	ds := s.Load(ctx)
	all := analytics.BuildProjectOverview(ds.Units, ds.Masters)
	return CompareResult{
		A:         s.compareSide(all, devA, projectsA),
		B:         s.compareSide(all, devB, projectsB),
		Available: ds.Available,
	}
}

func (s *Service) compareSide(all []analytics.ProjectOverviewRow, dev string, selected []string) CompareSide {
	devRows := filterByDeveloper(all, dev)

	labels := make([]string, 0, len(devRows))
	for _, r := range devRows {
		labels = append(labels, r.ProjectLabel)
	}
	sort.Strings(labels)

	var rows []analytics.ProjectOverviewRow
	switch {
	case len(selected) > 0:
		want := make(map[string]struct{}, len(selected))
		for _, l := range selected {
			want[l] = struct{}{}
		}
		for _, r := range devRows {
			if _, ok := want[r.ProjectLabel]; ok {
				rows = append(rows, r)
			}
		}
	case s.ShowAllWhenEmpty:
		rows = devRows
	}

	return CompareSide{
		Developer: dev,
		Projects:  labels,
		Selected:  selected,
		KPIs:      analytics.Summarize(rows),
		Rows:      rows,
	}
}

// HouseTypesResult is the house-type detail payload.
type HouseTypesResult struct {
	Rows      []schema.HouseTypeRecord `json:"rows"`
	Available bool                     `json:"data_available"`
}

// HouseTypes returns current house-type rows, optionally filtered to one
// developer.
func (s *Service) HouseTypes(ctx context.Context, pemaju string) HouseTypesResult {
	ds := s.Load(ctx)
	rows := ds.Houses
	if pemaju != "" && pemaju != AllDevelopers {
		filtered := make([]schema.HouseTypeRecord, 0, len(rows))
		for _, h := range rows {
			if h.DeveloperName == pemaju {
				filtered = append(filtered, h)
			}
		}
		rows = filtered
	}
	if rows == nil {
		rows = []schema.HouseTypeRecord{}
	}
	return HouseTypesResult{Rows: rows, Available: ds.Available}
}

func filterByDeveloper(rows []analytics.ProjectOverviewRow, dev string) []analytics.ProjectOverviewRow {
	out := make([]analytics.ProjectOverviewRow, 0, len(rows))
	for _, r := range rows {
		if r.Developer == dev {
			out = append(out, r)
		}
	}
	return out
}

// SearchRows keeps rows where any display column contains the query,
// case-insensitively. An empty query keeps everything.
func SearchRows(rows []analytics.ProjectOverviewRow, query string) []analytics.ProjectOverviewRow {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := make([]analytics.ProjectOverviewRow, 0, len(rows))
	for _, r := range rows {
		for _, cell := range rowCells(r) {
			if strings.Contains(strings.ToLower(cell), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func formatLastSync(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

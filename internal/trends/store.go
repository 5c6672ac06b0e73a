package trends

import (
	"context"
	"sort"
	"time"

	"devintel-backend/internal/models"
	"devintel-backend/internal/schema"

	"gorm.io/gorm"
)

// Store reads and appends the history log. The log is append-only: publishing
// never rewrites prior entries, so point-in-time queries stay valid.
type Store struct {
	DB *gorm.DB
}

// Append adds one publish run's snapshot entries. Existing rows are never
// touched.
func (s *Store) Append(ctx context.Context, entries []models.HistoryLog) error {
	if len(entries) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Create(&entries).Error
}

// Developers returns the sorted distinct developer names present in the log.
func (s *Store) Developers(ctx context.Context) ([]string, error) {
	var names []string
	err := s.DB.WithContext(ctx).Model(&models.HistoryLog{}).
		Distinct("developer_name").Order("developer_name").Pluck("developer_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ProjectLabels returns the sorted distinct project labels logged for one
// developer.
func (s *Store) ProjectLabels(ctx context.Context, developer string) ([]string, error) {
	rows, err := s.forDeveloper(ctx, developer)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var labels []string
	for _, r := range rows {
		label := schema.DisplayLabel(r.ProjectCode, r.ProjectName)
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// ForProject returns one project's snapshot entries sorted ascending by date.
// The project is identified by its combined display label.
func (s *Store) ForProject(ctx context.Context, developer, label string) ([]models.HistoryLog, error) {
	rows, err := s.forDeveloper(ctx, developer)
	if err != nil {
		return nil, err
	}
	var out []models.HistoryLog
	for _, r := range rows {
		if schema.DisplayLabel(r.ProjectCode, r.ProjectName) == label {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return time.Time(out[i].ScrapedDate).Before(time.Time(out[j].ScrapedDate))
	})
	return out, nil
}

func (s *Store) forDeveloper(ctx context.Context, developer string) ([]models.HistoryLog, error) {
	var rows []models.HistoryLog
	err := s.DB.WithContext(ctx).
		Where("developer_name = ?", developer).
		Order("scraped_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

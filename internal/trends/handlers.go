package trends

import (
	"strings"
	"time"

	"devintel-backend/internal/analytics"
	"devintel-backend/internal/models"
	"devintel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers bundles trends handlers.
type Handlers struct {
	Store *Store
}

// Developers GET /api/v1/trends/developers
func (h *Handlers) Developers(c *fiber.Ctx) error {
	names, err := h.Store.Developers(c.Context())
	if err != nil {
		log.Warn().Err(err).Msg("history developers load failed")
		return response.Success(c, "Data source unavailable; serving empty dataset", emptyList(), nil)
	}
	if names == nil {
		names = []string{}
	}
	return response.Success(c, "Developers fetched successfully", names, nil)
}

// Projects GET /api/v1/trends/projects?developer=
func (h *Handlers) Projects(c *fiber.Ctx) error {
	developer := strings.TrimSpace(c.Query("developer"))
	if developer == "" {
		return response.Error(c, "developer is required", 400, nil)
	}
	labels, err := h.Store.ProjectLabels(c.Context(), developer)
	if err != nil {
		log.Warn().Err(err).Msg("history project labels load failed")
		return response.Success(c, "Data source unavailable; serving empty dataset", emptyList(), nil)
	}
	if labels == nil {
		labels = []string{}
	}
	return response.Success(c, "Projects fetched successfully", labels, nil)
}

// SeriesPoint is one chart point of the sales trajectory.
type SeriesPoint struct {
	Date        string  `json:"scraped_date"`
	TotalUnits  int     `json:"total_units"`
	UnitsSold   int     `json:"units_sold"`
	UnitsUnsold int     `json:"units_unsold"`
	TakeUpRate  float64 `json:"take_up_rate"`
}

// SeriesResult is the trends payload: ascending series plus sales-velocity
// deltas over the standard trailing windows.
type SeriesResult struct {
	Developer    string        `json:"developer"`
	ProjectLabel string        `json:"project"`
	Series       []SeriesPoint `json:"series"`
	Velocity     VelocityCards `json:"velocity"`
}

// VelocityCards mirrors the four metric cards on the trends page.
type VelocityCards struct {
	Weekly    int `json:"weekly"`
	Monthly   int `json:"monthly"`
	Quarterly int `json:"quarterly"`
	Yearly    int `json:"yearly"`
}

// Series GET /api/v1/trends/series?developer=&project=
func (h *Handlers) Series(c *fiber.Ctx) error {
	developer := strings.TrimSpace(c.Query("developer"))
	project := strings.TrimSpace(c.Query("project"))
	if developer == "" || project == "" {
		return response.Error(c, "developer and project are required", 400, nil)
	}

	entries, err := h.Store.ForProject(c.Context(), developer, project)
	if err != nil {
		log.Warn().Err(err).Msg("history series load failed")
		return response.Success(c, "Data source unavailable; serving empty dataset",
			SeriesResult{Developer: developer, ProjectLabel: project, Series: []SeriesPoint{}}, nil)
	}

	result := BuildSeries(developer, project, entries)
	return response.Success(c, "Series fetched successfully", result, nil)
}

// BuildSeries converts history entries (ascending) into the chart series and
// velocity cards. Velocity is measured as of the most recent snapshot.
func BuildSeries(developer, project string, entries []models.HistoryLog) SeriesResult {
	result := SeriesResult{
		Developer:    developer,
		ProjectLabel: project,
		Series:       make([]SeriesPoint, 0, len(entries)),
	}

	points := make([]analytics.SnapshotPoint, 0, len(entries))
	for _, e := range entries {
		date := time.Time(e.ScrapedDate)
		result.Series = append(result.Series, SeriesPoint{
			Date:        date.Format("2006-01-02"),
			TotalUnits:  e.TotalUnits,
			UnitsSold:   e.UnitsSold,
			UnitsUnsold: e.UnitsUnsold,
			TakeUpRate:  e.TakeUpRate,
		})
		points = append(points, analytics.SnapshotPoint{Date: date, UnitsSold: e.UnitsSold})
	}

	if len(points) > 0 {
		asOf := points[len(points)-1].Date
		v := analytics.Velocities(points, asOf)
		result.Velocity = VelocityCards{
			Weekly:    v[7],
			Monthly:   v[30],
			Quarterly: v[90],
			Yearly:    v[365],
		}
	}
	return result
}

func emptyList() []string {
	return []string{}
}

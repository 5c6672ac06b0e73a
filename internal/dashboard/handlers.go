package dashboard

import (
	"strings"

	"devintel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles dashboard handlers.
type Handlers struct {
	Service *Service
}

// Overview GET /api/v1/dashboard/overview?pemaju=
func (h *Handlers) Overview(c *fiber.Ctx) error {
	result := h.Service.Overview(c.Context(), c.Query("pemaju"))
	if !result.Available {
		return response.Success(c, "Data source unavailable; serving empty dataset", result, nil)
	}
	return response.Success(c, "Overview fetched successfully", result, nil)
}

// Projects GET /api/v1/dashboard/projects?q=
func (h *Handlers) Projects(c *fiber.Ctx) error {
	result := h.Service.Projects(c.Context(), c.Query("q"))
	if !result.Available {
		return response.Success(c, "Data source unavailable; serving empty dataset", result, nil)
	}
	return response.Success(c, "Projects fetched successfully", result, nil)
}

// Compare GET /api/v1/dashboard/compare?dev_a=&dev_b=&projects_a=&projects_b=
// Project selections are comma-separated label lists.
func (h *Handlers) Compare(c *fiber.Ctx) error {
	devA := strings.TrimSpace(c.Query("dev_a"))
	devB := strings.TrimSpace(c.Query("dev_b"))
	if devA == "" || devB == "" {
		return response.Error(c, "dev_a and dev_b are required", 400, nil)
	}
	result := h.Service.Compare(c.Context(), devA, devB,
		splitLabels(c.Query("projects_a")), splitLabels(c.Query("projects_b")))
	return response.Success(c, "Comparison fetched successfully", result, nil)
}

// HouseTypes GET /api/v1/dashboard/house-types?pemaju=
func (h *Handlers) HouseTypes(c *fiber.Ctx) error {
	result := h.Service.HouseTypes(c.Context(), c.Query("pemaju"))
	return response.Success(c, "House types fetched successfully", result, nil)
}

// Export GET /api/v1/dashboard/export?pemaju=&q=
// Streams the overview table as a spreadsheet-friendly CSV (UTF-8 BOM).
func (h *Handlers) Export(c *fiber.Ctx) error {
	data, err := h.Service.ExportCSV(c.Context(), c.Query("pemaju"), c.Query("q"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="project_overview.csv"`)
	return c.Send(data)
}

func splitLabels(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

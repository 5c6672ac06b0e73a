package dashboard

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"devintel-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, *Service) {
	svc, db, _ := setupService(t)
	seedUnits(t, db, []models.UnitDetail{
		{ProjectCode: "P1", ProjectName: "Taman Indah", PemajuName: "Acme", Status: "Telah Dijual", PriceSales: "RM 500,000.00"},
		{ProjectCode: "P1", ProjectName: "Taman Indah", PemajuName: "Acme", Status: "Belum Dijual"},
		{ProjectCode: "P2", ProjectName: "Bukit Damai", PemajuName: "Beta", Status: "Telah Dijual"},
	})
	seedMasters(t, db, []models.ProjectMaster{
		{ProjectCode: "P1", ProjectName: "Taman Indah", PemajuName: "Acme"},
		{ProjectCode: "P2", ProjectName: "Bukit Damai", PemajuName: "Beta"},
	})

	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Get("/api/v1/dashboard/overview", h.Overview)
	app.Get("/api/v1/dashboard/projects", h.Projects)
	app.Get("/api/v1/dashboard/compare", h.Compare)
	app.Get("/api/v1/dashboard/house-types", h.HouseTypes)
	app.Get("/api/v1/dashboard/export", h.Export)
	return app, svc
}

func decodeEnvelope(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope
}

func TestOverviewHandler(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/overview", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp.Body)
	assert.Equal(t, "success", envelope["status"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, true, data["data_available"])
	rows := data["rows"].([]interface{})
	require.Len(t, rows, 2)

	first := rows[0].(map[string]interface{})
	assert.Equal(t, "P1 Taman Indah", first["Kod Projek & Nama Projek"])
	assert.Equal(t, 50.0, first["Take-Up %"])
}

func TestProjectsHandler_Search(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/projects?q=damai", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeEnvelope(t, resp.Body)["data"].(map[string]interface{})
	rows := data["rows"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Beta", rows[0].(map[string]interface{})["Pemaju"])
}

func TestCompareHandler_MissingParams(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/compare?dev_a=Acme", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp.Body)
	assert.Equal(t, "error", envelope["status"])
}

func TestCompareHandler(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/compare?dev_a=Acme&dev_b=Beta&projects_a=P1%20Taman%20Indah", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeEnvelope(t, resp.Body)["data"].(map[string]interface{})
	sideA := data["a"].(map[string]interface{})
	kpisA := sideA["kpis"].(map[string]interface{})
	assert.Equal(t, 2.0, kpisA["units"])
	assert.Equal(t, 1.0, kpisA["sold"])
}

func TestHouseTypesHandler(t *testing.T) {
	app, svc := setupApp(t)
	require.NoError(t, svc.DB.Create(&models.HouseType{
		ProjectCode: "P1", ProjectName: "Taman Indah", PemajuName: "Acme", HouseTypeName: "Teres 2 Tingkat",
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/house-types?pemaju=Acme", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeEnvelope(t, resp.Body)["data"].(map[string]interface{})
	rows := data["rows"].([]interface{})
	require.Len(t, rows, 1)
}

func TestExportHandler_Headers(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/export", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="project_overview.csv"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Kod Projek & Nama Projek")
}

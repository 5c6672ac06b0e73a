package app

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"devintel-backend/internal/config"
	"devintel-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Env:            "test",
		RedisURL:       "redis://" + mr.Addr(),
		HealthAdminKey: "sekret",
	}
	app, _, _, err := CreateApp(cfg)
	require.NoError(t, err)
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "devintel-api", body["service"])
}

// TestAccessFlow enters through the gate and reads the session back through
// the full middleware chain.
func TestAccessFlow(t *testing.T) {
	app := setupTestApp(t)

	payload, _ := json.Marshal(map[string]string{"name": "Siti", "organization": "Example Sdn Bhd"})
	req := httptest.NewRequest("POST", "/api/v1/access/enter", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c.Value
		}
	}
	require.NotEmpty(t, cookie)

	req = httptest.NewRequest("GET", "/api/v1/access/me", nil)
	req.Header.Set("Cookie", middleware.SessionCookieName+"="+cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	user := envelope["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "Siti", user["name"])
}

// TestGatedRoutesAbsentWithoutDB: with no serving store configured the
// dashboard and trends groups are not registered.
func TestGatedRoutesAbsentWithoutDB(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/overview", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

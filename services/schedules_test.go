package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func adminScheduleApp(db *gorm.DB) *fiber.App {
	svc := NewScheduleService(db, fixedClock(time.Now()), NewActivityService(db))
	app := fiber.New()
	// Admin routes carry no user identity, only the token check.
	admin := app.Group("/api/admin", func(c *fiber.Ctx) error { return c.Next() })
	admin.Post("/schedules", svc.CreateSchedule)
	admin.Put("/schedules/:id", svc.UpdateSchedule)
	return app
}

func sendJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "boulder_user", Value: "alice"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCreateScheduleRecordsAdminAction(t *testing.T) {
	db, views := dryRunDB(t)
	app := adminScheduleApp(db)

	status, out := sendJSON(t, app, http.MethodPost, "/api/admin/schedules",
		`{"gym_name":"Base  Camp","start_date":"2024-05-01","end_date":"2024-05-31"}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Base Camp", out["gym_name"])

	require.Len(t, *views, 1)
	pv := (*views)[0]
	assert.Equal(t, AdminActor, pv.UserName)
	assert.Equal(t, "/schedules", pv.Page)
	require.NotNil(t, pv.Action)
	assert.Equal(t, ActionScheduleCreated, *pv.Action)
}

func TestUpdateScheduleRequiresExistingGym(t *testing.T) {
	db, _ := dryRunDB(t)
	withoutGyms(t, db)
	app := adminScheduleApp(db)

	status, out := sendJSON(t, app, http.MethodPut, "/api/admin/schedules/s1",
		`{"gym_name":"Nowhere Gym","start_date":"2024-05-01"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "gym not found", out["error"])
}

func TestCreateScheduleRequiresExistingGym(t *testing.T) {
	db, views := dryRunDB(t)
	withoutGyms(t, db)
	app := adminScheduleApp(db)

	status, _ := sendJSON(t, app, http.MethodPost, "/api/admin/schedules",
		`{"gym_name":"Nowhere Gym","start_date":"2024-05-01"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Empty(t, *views)
}

package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postLog(t *testing.T, body string) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Post("/logs", func(c *fiber.Ctx) error {
		var req createLogRequest
		if ok, err := parseBody(c, &req); !ok {
			return err
		}
		return c.JSON(req)
	})

	req := httptest.NewRequest(http.MethodPost, "/logs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestParseBodyAcceptsValidLog(t *testing.T) {
	status, out := postLog(t, `{"date":"2024-05-10","gym_name":"Base Camp","kind":"plan","time_slot":"evening"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Base Camp", out["gym_name"])
}

func TestParseBodyReportsFieldErrors(t *testing.T) {
	status, out := postLog(t, `{"date":"10/05/2024","gym_name":"","kind":"maybe","time_slot":"dawn"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "validation failed", out["error"])

	fields, ok := out["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "civildate", fields["date"])
	assert.Equal(t, "required", fields["gym_name"])
	assert.Equal(t, "sessionkind", fields["kind"])
	assert.Equal(t, "timeslot", fields["time_slot"])
}

func TestParseBodyRejectsDatesWithTrailingText(t *testing.T) {
	for _, date := range []string{"2024-05-01garbage", "2024-05-01T99:99", "2024-05-01 ; drop"} {
		t.Run(date, func(t *testing.T) {
			body, err := json.Marshal(map[string]string{"date": date, "gym_name": "Base Camp", "kind": "actual"})
			require.NoError(t, err)
			status, out := postLog(t, string(body))
			assert.Equal(t, fiber.StatusBadRequest, status)
			fields, ok := out["fields"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, "civildate", fields["date"])
		})
	}

	status, _ := postLog(t, `{"date":"2024-05-01T19:00","gym_name":"Base Camp","kind":"plan"}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestParseBodyRejectsMalformedJSON(t *testing.T) {
	status, out := postLog(t, `{"date":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid JSON", out["error"])
}

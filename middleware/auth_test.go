package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"boulder-session-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoster struct {
	users map[string]bool
	err   error
}

func (f fakeRoster) Exists(userName string) (bool, error) {
	return f.users[userName], f.err
}

func securedApp(lookup UserLookup) *fiber.App {
	app := fiber.New()
	app.Use(UserContextMiddleware("boulder_user", lookup))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(services.UserLocalsKey).(string))
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "boulder_user", Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestUserContextMiddleware(t *testing.T) {
	roster := fakeRoster{users: map[string]bool{"alice": true}}

	tests := []struct {
		name   string
		lookup UserLookup
		cookie string
		want   int
	}{
		{"known user", roster, "alice", fiber.StatusOK},
		{"no cookie", roster, "", fiber.StatusUnauthorized},
		{"unknown user", roster, "mallory", fiber.StatusUnauthorized},
		{"lookup error", fakeRoster{err: errors.New("db down")}, "alice", fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doGet(t, securedApp(tt.lookup), "/me", tt.cookie)
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(AdminAuthMiddleware("s3cret"))
	app.Get("/users", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	tests := []struct {
		header string
		want   int
	}{
		{"Bearer s3cret", fiber.StatusNoContent},
		{"s3cret", fiber.StatusNoContent},
		{"Bearer wrong", fiber.StatusUnauthorized},
		{"", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tt.want, resp.StatusCode, tt.header)
	}
}

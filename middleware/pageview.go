// middleware/pageview.go
package middleware

import (
	"boulder-session-system/services"

	"github.com/gofiber/fiber/v2"
)

// PageViewRecorder stores page visits for analytics.
type PageViewRecorder interface {
	RecordPageView(userName, page string)
}

// PageViewMiddleware records successful GETs by identified users, keyed by
// the matched route pattern so "/logs/:id" counts as one page.
func PageViewMiddleware(recorder PageViewRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if c.Method() != fiber.MethodGet || err != nil || c.Response().StatusCode() >= 400 {
			return err
		}
		user, _ := c.Locals(services.UserLocalsKey).(string)
		if user == "" {
			return nil
		}
		page := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			page = r.Path
		}
		recorder.RecordPageView(user, page)
		return nil
	}
}

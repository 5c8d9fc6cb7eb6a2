// middleware/auth.go
package middleware

import (
	"log"

	"boulder-session-system/services"

	"github.com/gofiber/fiber/v2"
)

// UserLookup confirms a cookie value names a roster member.
type UserLookup interface {
	Exists(userName string) (bool, error)
}

// UserContextMiddleware resolves the session cookie to a roster member and
// stores the name under services.UserLocalsKey. Missing or unknown -> 401.
func UserContextMiddleware(cookieName string, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userName := c.Cookies(cookieName)
		if userName == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "not logged in",
			})
		}

		ok, err := users.Exists(userName)
		if err != nil {
			log.Printf("❌ [USER_CTX] lookup failed for %s on %s: %v", userName, c.Path(), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "user lookup failed",
			})
		}
		if !ok {
			log.Printf("🚫 [USER_CTX] cookie names unknown user %q on %s", userName, c.Path())
			c.ClearCookie(cookieName)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unknown user",
			})
		}

		c.Locals(services.UserLocalsKey, userName)
		return c.Next()
	}
}

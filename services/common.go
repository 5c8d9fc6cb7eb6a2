// services/common.go
package services

import (
	"errors"
	"log"
	"time"

	"boulder-session-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserLocalsKey is where UserContextMiddleware stores the caller's user name.
const UserLocalsKey = "user_name"

// Clock carries the civil timezone and time source every service derives "today" from.
type Clock struct {
	Loc *time.Location
	Now func() time.Time
}

// NewClock returns a wall-clock Clock pinned to loc.
func NewClock(loc *time.Location) Clock {
	return Clock{Loc: loc, Now: time.Now}
}

// Today is the current civil date in the clock's zone.
func (c Clock) Today() string {
	return utils.Today(c.Now(), c.Loc)
}

// dateParam reads a YYYY-MM-DD query param, defaulting to today.
func (c Clock) dateParam(ctx *fiber.Ctx, key string) (string, bool) {
	v := ctx.Query(key)
	if v == "" {
		return c.Today(), true
	}
	if !utils.IsValidDate(v) {
		return "", false
	}
	return utils.DateOnly(v), true
}

// currentUser returns the user resolved by UserContextMiddleware.
func currentUser(c *fiber.Ctx) string {
	user, _ := c.Locals(UserLocalsKey).(string)
	return user
}

// storeFailure logs a store error and answers with the generic failure body.
func storeFailure(c *fiber.Ctx, operation string, err error) error {
	storeErrors.WithLabelValues(operation).Inc()
	log.Printf("❌ [STORE] %s failed: %v", operation, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": operation + " failed",
		"cause": err.Error(),
	})
}

// notFoundOr maps gorm.ErrRecordNotFound to 404 and anything else to storeFailure.
func notFoundOr(c *fiber.Ctx, what, operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": what + " not found"})
	}
	return storeFailure(c, operation, err)
}

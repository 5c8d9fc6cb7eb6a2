// services/validate.go
package services

import (
	"errors"
	"reflect"
	"strings"

	"boulder-session-system/models"
	"boulder-session-system/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validate is shared by every request body; custom tags are registered in init.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("civildate", func(fl validator.FieldLevel) bool {
		return utils.IsValidDate(fl.Field().String())
	})
	_ = validate.RegisterValidation("sessionkind", func(fl validator.FieldLevel) bool {
		return models.SessionKind(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return models.TimeSlot(fl.Field().String()).Valid()
	})
}

// parseBody decodes and validates a JSON body. On failure it has already
// written the 400 response and returns false.
func parseBody(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON",
			"cause": err.Error(),
		})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": fieldErrors(err),
		})
	}
	return true, nil
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// handlers/users.go
package handlers

import (
	"boulder-session-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(public, secured, admin fiber.Router, userService *services.UserService) {
	// 🔓 Roster selection screen
	public.Get("/users", userService.ListUsers)
	public.Post("/login", userService.Login)
	public.Post("/logout", userService.Logout)

	// 🔐 Cookie identity required
	secured.Get("/me", userService.Me)
	secured.Get("/users", userService.ListUsers)

	// 🔒 Roster management
	admin.Post("/users", userService.CreateUser)
	admin.Put("/users/:name", userService.UpdateUser)
	admin.Delete("/users/:name", userService.DeleteUser)
	admin.Post("/users/:name/icon", userService.UploadIcon)
}

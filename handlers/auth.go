// handlers/auth_routes.go
package handlers

import (
	"errors"

	"github.com/georgewhite997/noot-slide-sub001/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, userService *services.UserService, tokenService *services.TokenService) {
	// 🔓 Public — the only route that takes no token
	app.Post("/auth/login", func(c *fiber.Ctx) error {
		var req struct {
			Wallet string `json:"wallet"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		user, err := userService.LoginOrRegister(req.Wallet)
		if err != nil {
			if errors.Is(err, services.ErrInvalidInput) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "wallet is required"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "login failed",
				"cause": err.Error(),
			})
		}

		token, err := tokenService.Sign(user.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue token"})
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  user,
		})
	})
}

// handlers/game_routes.go
package handlers

import (
	"errors"

	"github.com/georgewhite997/noot-slide-sub001/middleware"
	"github.com/georgewhite997/noot-slide-sub001/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(
	app *fiber.App,
	tokenService *services.TokenService,
	userService *services.UserService,
	upgradeService *services.UpgradeService,
	leaderboardService *services.LeaderboardService,
) {
	// 🔐 Everything below requires a valid player token
	secured := app.Group("/", middleware.UserContextMiddleware(tokenService))

	secured.Get("/user/me", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		user, err := userService.GetWithUpgrades(userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "DB error fetching user",
				"cause": err.Error(),
			})
		}
		return c.JSON(user)
	})

	secured.Post("/user/run-result", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		var req struct {
			FishDelta *int64 `json:"fishDelta"`
			Score     *int64 `json:"score"`
		}
		if err := c.BodyParser(&req); err != nil || req.FishDelta == nil || req.Score == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fishDelta and score are required"})
		}

		result, err := userService.RecordRunResult(userID, *req.FishDelta, *req.Score)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record run result",
				"cause": err.Error(),
			})
		}
		return c.JSON(result)
	})

	secured.Get("/leaderboard", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		entries, err := leaderboardService.Top()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch leaderboard",
				"cause": err.Error(),
			})
		}

		// The caller's own position rides along even when outside the top N.
		user, err := userService.Get(userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "DB error fetching user",
				"cause": err.Error(),
			})
		}

		position, err := leaderboardService.PositionOf(user)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute leaderboard position",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"entries":  entries,
			"position": position,
		})
	})

	secured.Get("/upgrades", func(c *fiber.Ctx) error {
		catalog, err := upgradeService.Catalog()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch upgrades",
				"cause": err.Error(),
			})
		}
		return c.JSON(catalog)
	})

	secured.Post("/upgrades/purchase", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		var req struct {
			UpgradeID *uint `json:"upgradeId"`
		}
		if err := c.BodyParser(&req); err != nil || req.UpgradeID == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "upgradeId is required"})
		}

		outcome, err := upgradeService.Purchase(userID, *req.UpgradeID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user or upgrade not found"})
			case errors.Is(err, services.ErrInsufficientFunds):
				return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "not enough fishes"})
			case errors.Is(err, services.ErrMaxLevelReached):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "upgrade already at max level"})
			case errors.Is(err, services.ErrPurchaseConflict):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "purchase conflict, try again"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "purchase failed",
				"cause": err.Error(),
			})
		}

		position, err := leaderboardService.PositionOf(outcome.User)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute leaderboard position",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"user":     outcome.User,
			"upgrades": outcome.Upgrades,
			"position": position,
		})
	})
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/controllers"
	"jeewifi-backend/http/middleware"
)

func AccessListRoutes(app *fiber.App) {
	admin := app.Group("admin", middleware.JWTMiddleware())

	admin.Post("/blacklist", controllers.CreateBlacklistEntry)
	admin.Get("/blacklist", controllers.GetAllBlacklistEntries)
	admin.Delete("/blacklist/:id", controllers.DeleteBlacklistEntry)

	admin.Post("/whitelist", controllers.CreateWhitelistEntry)
	admin.Get("/whitelist", controllers.GetAllWhitelistEntries)
	admin.Delete("/whitelist/:id", controllers.DeleteWhitelistEntry)
}

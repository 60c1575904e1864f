package routes

import (
	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/controllers"
	"jeewifi-backend/http/middleware"
)

func HotspotUserRoutes(app *fiber.App) {
	admin := app.Group("admin", middleware.JWTMiddleware())

	admin.Post("/hotspot-users", controllers.CreateHotspotUser)
	admin.Put("/hotspot-users/:id", controllers.UpdateHotspotUser)
	admin.Delete("/hotspot-users/:id", controllers.DeleteHotspotUser)
	admin.Get("/hotspot-users", controllers.GetAllHotspotUsers)
}

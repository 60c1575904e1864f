package routes

import (
	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/controllers"
	"jeewifi-backend/http/middleware"
)

func LocationRoutes(app *fiber.App) {
	admin := app.Group("admin", middleware.JWTMiddleware())

	admin.Post("/locations", controllers.CreateLocation)
	admin.Put("/locations/:id", controllers.UpdateLocation)
	admin.Delete("/locations/:id", controllers.DeleteLocation)
	admin.Get("/locations", controllers.GetAllLocations)
}

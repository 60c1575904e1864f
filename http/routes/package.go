package routes

import (
	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/controllers"
	"jeewifi-backend/http/middleware"
)

func PackageRoutes(app *fiber.App) {
	admin := app.Group("admin", middleware.JWTMiddleware())

	admin.Post("/packages", controllers.CreatePackage)
	admin.Put("/packages/:id", controllers.UpdatePackage)
	admin.Delete("/packages/:id", controllers.DeletePackage)
	admin.Get("/packages", controllers.GetAllPackages)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/controllers"
	"jeewifi-backend/http/middleware"
)

func PaymentRoutes(app *fiber.App) {
	admin := app.Group("admin", middleware.JWTMiddleware())

	admin.Get("/payments", controllers.GetAllPayments)
}

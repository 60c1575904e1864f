package routes

import (
	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/controllers"
)

func AuthRoutes(app *fiber.App) {
	app.Post("/auth/login", controllers.Login)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/controllers"
	"jeewifi-backend/http/middleware"
)

func SessionRoutes(app *fiber.App) {
	admin := app.Group("admin", middleware.JWTMiddleware())

	admin.Get("/sessions", controllers.GetAllSessions)
	admin.Get("/sessions/connected", controllers.GetConnectedUsers)
	admin.Post("/sessions/:id/disconnect", controllers.DisconnectSession)
}

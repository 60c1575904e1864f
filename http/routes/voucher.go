package routes

import (
	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/controllers"
	"jeewifi-backend/http/middleware"
)

func VoucherRoutes(app *fiber.App) {
	admin := app.Group("admin", middleware.JWTMiddleware())

	admin.Post("/vouchers", controllers.GenerateVouchers)
	admin.Get("/vouchers", controllers.GetAllVouchers)
	admin.Delete("/vouchers/:id", controllers.DeleteVoucher)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/controllers"
)

// PortalRoutes are the unauthenticated captive-portal surface plus the
// accounting hook the access routers call.
func PortalRoutes(app *fiber.App) {
	portal := app.Group("portal")

	portal.Get("/packages", controllers.GetPortalPackages)
	portal.Post("/connect", controllers.Connect)
	portal.Post("/otp/request", controllers.RequestOtp)
	portal.Post("/otp/verify", controllers.VerifyOtp)
	portal.Get("/session/:id", controllers.GetPortalSession)
	portal.Post("/session/:id/pause", controllers.PausePortalSession)
	portal.Post("/session/:id/resume", controllers.ResumePortalSession)
	portal.Post("/session/:id/logout", controllers.LogoutPortalSession)
	portal.Post("/accounting", controllers.Accounting)
	portal.Post("/payment/initiate", controllers.InitiatePayment)
	portal.Post("/payment/callback", controllers.PaymentCallback)
}

package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"jeewifi-backend/core"
)

var (
	engineStore    core.Store
	accessPolicy   *core.Policy
	voucherLedger  *core.Ledger
	sessionEngine  *core.Sessions
	connectGateway *core.Auth
)

// Setup hands the wired engine singletons to the HTTP layer. Must run before
// any route is registered.
func Setup(store core.Store, policy *core.Policy, ledger *core.Ledger, sessions *core.Sessions, auth *core.Auth) {
	engineStore = store
	accessPolicy = policy
	voucherLedger = ledger
	sessionEngine = sessions
	connectGateway = auth
}

func adminUsername(c *fiber.Ctx) string {
	if claims, ok := c.Locals("user").(jwt.MapClaims); ok {
		if u, ok := claims["username"].(string); ok {
			return u
		}
	}
	return ""
}

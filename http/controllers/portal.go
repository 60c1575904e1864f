package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/core"
	"jeewifi-backend/http/requests"
	"jeewifi-backend/http/responses"
	"jeewifi-backend/logger"
)

// GetPortalPackages lists active packages in catalog order for the captive
// portal landing page.
func GetPortalPackages(c *fiber.Ctx) error {
	packages, err := engineStore.ActivePackages(c.Context())
	if err != nil {
		logger.Logger.WithError(err).Error("Failed to fetch portal packages")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not retrieve packages",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Packages retrieved successfully",
		Data:    packages,
	})
}

// Connect runs one authentication attempt and opens a session on success.
// Engine errors fall through to the error handler so statuses stay uniform.
func Connect(c *fiber.Ctx) error {
	var req requests.ConnectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse connect request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for connect request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	var locationID *string
	if req.LocationID != "" {
		locationID = &req.LocationID
	}

	session, err := connectGateway.Connect(c.Context(), core.ConnectRequest{
		Identifier: core.Identifier{
			MacAddress:  req.MacAddress,
			IPAddress:   req.IPAddress,
			PhoneNumber: req.PhoneNumber,
		},
		Method:     req.Method,
		Code:       req.Code,
		Username:   req.Username,
		Password:   req.Password,
		OtpCode:    req.OtpCode,
		DeviceName: req.DeviceName,
		LocationID: locationID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Connected successfully",
		Data:    session,
	})
}

func RequestOtp(c *fiber.Ctx) error {
	var req requests.RequestOtpRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse OTP request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	challenge, err := connectGateway.RequestOtp(c.Context(), req.PhoneNumber)
	if err != nil {
		return err
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Verification code sent",
		Data: fiber.Map{
			"phone_number": challenge.PhoneNumber,
			"expires_at":   challenge.ExpiresAt,
		},
	})
}

func VerifyOtp(c *fiber.Ctx) error {
	var req requests.VerifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse OTP verify request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	if err := connectGateway.VerifyOtp(c.Context(), req.PhoneNumber, req.OtpCode); err != nil {
		return err
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Code verified",
	})
}

// GetPortalSession returns the session plus its remaining budgets so the
// portal can render a countdown without doing the math itself.
func GetPortalSession(c *fiber.Ctx) error {
	session, err := sessionEngine.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	remainingSeconds, timeLimited := session.RemainingSeconds()
	remainingData, dataLimited := session.RemainingDataMb()

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Session retrieved successfully",
		Data: fiber.Map{
			"session":           session,
			"remaining_seconds": remainingSeconds,
			"time_limited":      timeLimited,
			"remaining_data_mb": remainingData,
			"data_limited":      dataLimited,
		},
	})
}

func PausePortalSession(c *fiber.Ctx) error {
	if err := sessionEngine.Pause(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Session paused",
	})
}

func ResumePortalSession(c *fiber.Ctx) error {
	if err := sessionEngine.Resume(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Session resumed",
	})
}

func LogoutPortalSession(c *fiber.Ctx) error {
	if err := sessionEngine.Close(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Disconnected",
	})
}

// Accounting ingests a usage report from the access router. Reports against
// paused or closed sessions are acknowledged and dropped.
func Accounting(c *fiber.Ctx) error {
	var req requests.AccountingRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse accounting report")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	if err := sessionEngine.Tick(c.Context(), req.SessionID, req.ElapsedSeconds, req.DataUsedMb); err != nil {
		return err
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Accounting recorded",
	})
}

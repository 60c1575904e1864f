package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/core"
	"jeewifi-backend/http/requests"
	"jeewifi-backend/http/responses"
	"jeewifi-backend/logger"
)

func GenerateVouchers(c *fiber.Ctx) error {
	var req requests.GenerateVouchersRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse voucher generate request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for voucher generate request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	vouchers, err := voucherLedger.GenerateBatch(c.Context(), core.GenerateRequest{
		PackageID:   req.PackageID,
		Quantity:    req.Quantity,
		DeviceLimit: req.DeviceLimit,
		IsReusable:  req.IsReusable,
		MaxUses:     req.MaxUses,
		ExpiresAt:   req.ExpiresAt,
		LocationID:  req.LocationID,
	})
	if err != nil {
		return err
	}

	logger.Logger.Infof("Admin %s generated %d voucher(s)", adminUsername(c), len(vouchers))
	return c.Status(http.StatusCreated).JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Vouchers generated successfully",
		Data:    vouchers,
	})
}

func GetAllVouchers(c *fiber.Ctx) error {
	vouchers, err := voucherLedger.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Vouchers retrieved successfully",
		Data:    vouchers,
	})
}

func DeleteVoucher(c *fiber.Ctx) error {
	if err := voucherLedger.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Voucher deleted successfully",
	})
}

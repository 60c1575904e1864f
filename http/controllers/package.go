package controllers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jeewifi-backend/db"
	"jeewifi-backend/http/requests"
	"jeewifi-backend/http/responses"
	"jeewifi-backend/logger"
	"jeewifi-backend/models"
)

func CreatePackage(c *fiber.Ctx) error {
	var req requests.CreateOrUpdatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse package create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for package create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	pkg := models.Package{
		Name:              req.Name,
		DurationMinutes:   req.DurationMinutes,
		DurationDisplay:   req.DurationDisplay,
		Price:             req.Price,
		Currency:          req.Currency,
		DataLimitMb:       req.DataLimitMb,
		BandwidthDownMbps: req.BandwidthDownMbps,
		BandwidthUpMbps:   req.BandwidthUpMbps,
		DeviceLimit:       req.DeviceLimit,
		IsActive:          req.IsActive,
		SortOrder:         req.SortOrder,
	}

	if err := db.DB.Create(&pkg).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to insert package into PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not create package",
		})
	}

	return c.Status(http.StatusCreated).JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Package created successfully",
		Data:    pkg,
	})
}

// UpdatePackage edits the catalog row only. Vouchers already issued keep
// their snapshot untouched.
func UpdatePackage(c *fiber.Ctx) error {
	id := c.Params("id")

	var req requests.CreateOrUpdatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse package update request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for package update request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	var pkg models.Package
	if err := db.DB.Where("id = ?", id).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(http.StatusNotFound).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Package not found",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "An unexpected error occurred",
		})
	}

	pkg.Name = req.Name
	pkg.DurationMinutes = req.DurationMinutes
	pkg.DurationDisplay = req.DurationDisplay
	pkg.Price = req.Price
	pkg.Currency = req.Currency
	pkg.DataLimitMb = req.DataLimitMb
	pkg.BandwidthDownMbps = req.BandwidthDownMbps
	pkg.BandwidthUpMbps = req.BandwidthUpMbps
	pkg.DeviceLimit = req.DeviceLimit
	pkg.IsActive = req.IsActive
	pkg.SortOrder = req.SortOrder

	if err := db.DB.Save(&pkg).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to update package in PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not update package",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Package updated successfully",
		Data:    pkg,
	})
}

func DeletePackage(c *fiber.Ctx) error {
	id := c.Params("id")

	var pkg models.Package
	if err := db.DB.Where("id = ?", id).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(http.StatusNotFound).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Package not found",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "An unexpected error occurred",
		})
	}

	if err := db.DB.Delete(&pkg).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to delete package from PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not delete package",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Package deleted successfully",
	})
}

func GetAllPackages(c *fiber.Ctx) error {
	var packages []models.Package
	if err := db.DB.Order("sort_order asc, price asc").Find(&packages).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to fetch packages from PostgreSQL")
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

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

func CreateLocation(c *fiber.Ctx) error {
	var req requests.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse location create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for location create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	location := models.Location{
		Name:       req.Name,
		RouterIP:   req.RouterIP,
		RouterType: req.RouterType,
		APIPort:    req.APIPort,
		SSID:       req.SSID,
		IsActive:   req.IsActive,
	}

	if err := db.DB.Create(&location).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to insert location into PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not create location",
		})
	}

	return c.Status(http.StatusCreated).JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Location created successfully",
		Data:    location,
	})
}

func UpdateLocation(c *fiber.Ctx) error {
	id := c.Params("id")

	var req requests.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse location update request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for location update request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	var location models.Location
	if err := db.DB.Where("id = ?", id).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(http.StatusNotFound).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Location not found",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "An unexpected error occurred",
		})
	}

	location.Name = req.Name
	location.RouterIP = req.RouterIP
	location.RouterType = req.RouterType
	location.APIPort = req.APIPort
	location.SSID = req.SSID
	location.IsActive = req.IsActive

	if err := db.DB.Save(&location).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to update location in PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not update location",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Location updated successfully",
		Data:    location,
	})
}

func DeleteLocation(c *fiber.Ctx) error {
	id := c.Params("id")

	var location models.Location
	if err := db.DB.Where("id = ?", id).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(http.StatusNotFound).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Location not found",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "An unexpected error occurred",
		})
	}

	if err := db.DB.Delete(&location).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to delete location from PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not delete location",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Location deleted successfully",
	})
}

func GetAllLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := db.DB.Find(&locations).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to fetch locations from PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not retrieve locations",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Locations retrieved successfully",
		Data:    locations,
	})
}

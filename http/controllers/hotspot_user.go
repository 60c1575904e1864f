package controllers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jeewifi-backend/db"
	"jeewifi-backend/http/requests"
	"jeewifi-backend/http/responses"
	"jeewifi-backend/logger"
	"jeewifi-backend/models"
)

func CreateHotspotUser(c *fiber.Ctx) error {
	var req requests.CreateHotspotUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse hotspot user create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for hotspot user create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Logger.WithError(err).Error("Failed to hash hotspot user password")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not create user",
		})
	}

	user := models.HotspotUser{
		Username:           req.Username,
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		PhoneNumber:        req.PhoneNumber,
		DataLimitMb:        req.DataLimitMb,
		BandwidthLimitMbps: req.BandwidthLimitMbps,
		IsActive:           req.IsActive,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(http.StatusConflict).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Username already taken",
			})
		}
		logger.Logger.WithError(err).Error("Failed to insert hotspot user into PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not create user",
		})
	}

	return c.Status(http.StatusCreated).JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Hotspot user created successfully",
		Data:    user,
	})
}

func UpdateHotspotUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var req requests.UpdateHotspotUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse hotspot user update request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for hotspot user update request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	var user models.HotspotUser
	if err := db.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(http.StatusNotFound).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Hotspot user not found",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "An unexpected error occurred",
		})
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Logger.WithError(err).Error("Failed to hash hotspot user password")
			return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Could not update user",
			})
		}
		user.PasswordHash = string(hash)
	}
	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.DataLimitMb = req.DataLimitMb
	user.BandwidthLimitMbps = req.BandwidthLimitMbps
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsBlacklisted != nil {
		user.IsBlacklisted = *req.IsBlacklisted
		user.BlacklistReason = req.BlacklistReason
	}

	if err := db.DB.Save(&user).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to update hotspot user in PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not update user",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Hotspot user updated successfully",
		Data:    user,
	})
}

func DeleteHotspotUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.HotspotUser
	if err := db.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(http.StatusNotFound).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Hotspot user not found",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "An unexpected error occurred",
		})
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to delete hotspot user from PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not delete user",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Hotspot user deleted successfully",
	})
}

func GetAllHotspotUsers(c *fiber.Ctx) error {
	var users []models.HotspotUser
	if err := db.DB.Order("created_at desc").Find(&users).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to fetch hotspot users from PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not retrieve users",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Hotspot users retrieved successfully",
		Data:    users,
	})
}

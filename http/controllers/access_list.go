package controllers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/requests"
	"jeewifi-backend/http/responses"
	"jeewifi-backend/logger"
	"jeewifi-backend/models"
)

func CreateBlacklistEntry(c *fiber.Ctx) error {
	var req requests.BlacklistEntryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse blacklist create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for blacklist create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	entry := models.BlacklistEntry{
		MacAddress:  req.MacAddress,
		IPAddress:   req.IPAddress,
		PhoneNumber: req.PhoneNumber,
		Reason:      req.Reason,
		IsPermanent: req.IsPermanent,
		BlockedBy:   adminUsername(c),
	}
	if !req.IsPermanent && req.ExpiresDays > 0 {
		expires := time.Now().AddDate(0, 0, req.ExpiresDays)
		entry.ExpiresAt = &expires
	}

	if err := accessPolicy.AddBlacklistEntry(c.Context(), &entry); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Blacklist entry created successfully",
		Data:    entry,
	})
}

func DeleteBlacklistEntry(c *fiber.Ctx) error {
	if err := accessPolicy.RemoveBlacklistEntry(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Blacklist entry deleted successfully",
	})
}

// GetAllBlacklistEntries annotates each row with whether it is still in
// force; lapsed temporary blocks stay listed for audit.
func GetAllBlacklistEntries(c *fiber.Ctx) error {
	entries, err := accessPolicy.ListBlacklist(c.Context())
	if err != nil {
		return err
	}

	now := time.Now()
	type entryWithState struct {
		models.BlacklistEntry
		Active bool `json:"active"`
	}
	out := make([]entryWithState, 0, len(entries))
	for i := range entries {
		out = append(out, entryWithState{
			BlacklistEntry: entries[i],
			Active:         entries[i].ActiveAt(now),
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Blacklist retrieved successfully",
		Data:    out,
	})
}

func CreateWhitelistEntry(c *fiber.Ctx) error {
	var req requests.WhitelistEntryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse whitelist create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for whitelist create request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	entry := models.WhitelistEntry{
		MacAddress:     req.MacAddress,
		IPAddress:      req.IPAddress,
		Domain:         req.Domain,
		Description:    req.Description,
		IsWalledGarden: req.IsWalledGarden,
	}

	if err := accessPolicy.AddWhitelistEntry(c.Context(), &entry); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Whitelist entry created successfully",
		Data:    entry,
	})
}

func DeleteWhitelistEntry(c *fiber.Ctx) error {
	if err := accessPolicy.RemoveWhitelistEntry(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Whitelist entry deleted successfully",
	})
}

func GetAllWhitelistEntries(c *fiber.Ctx) error {
	entries, err := accessPolicy.ListWhitelist(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Whitelist retrieved successfully",
		Data:    entries,
	})
}

package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"jeewifi-backend/core"
	"jeewifi-backend/db"
	"jeewifi-backend/http/requests"
	"jeewifi-backend/http/responses"
	"jeewifi-backend/logger"
	"jeewifi-backend/models"
)

// InitiatePayment opens a pending mobile-money transaction for a package.
// The STK push itself is the gateway's job; we hand back the checkout
// reference the gateway will echo in its callback.
func InitiatePayment(c *fiber.Ctx) error {
	var req requests.InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse payment initiate request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for payment initiate request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	var pkg models.Package
	if err := db.DB.Where("id = ? AND is_active = ?", req.PackageID, true).First(&pkg).Error; err != nil {
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

	payment := models.Payment{
		PhoneNumber:       req.PhoneNumber,
		Amount:            pkg.Price,
		Currency:          pkg.Currency,
		PackageID:         &pkg.ID,
		Status:            models.PaymentStatusPending,
		CheckoutRequestID: uuid.NewString(),
	}

	if err := db.DB.Create(&payment).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to insert payment into PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not initiate payment",
		})
	}

	return c.Status(http.StatusCreated).JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Payment initiated",
		Data:    payment,
	})
}

type stkCallbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

type stkCallbackBody struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []stkCallbackItem `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// PaymentCallback settles a pending transaction from the gateway's result.
// A successful payment issues a single voucher against the paid package and
// pins it to the payment row. The raw payload is kept for reconciliation.
func PaymentCallback(c *fiber.Ctx) error {
	var cb stkCallbackBody
	if err := c.BodyParser(&cb); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse payment callback")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	result := cb.Body.StkCallback
	if result.CheckoutRequestID == "" {
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Missing checkout request id",
		})
	}

	var payment models.Payment
	if err := db.DB.Where("checkout_request_id = ?", result.CheckoutRequestID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(http.StatusNotFound).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Payment not found",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "An unexpected error occurred",
		})
	}

	if payment.Status != models.PaymentStatusPending {
		// Gateways retry callbacks; a settled payment stays settled.
		return c.JSON(responses.SuccessResponse{
			Error:   false,
			Message: "Payment already settled",
			Data:    payment,
		})
	}

	payment.RawCallback = datatypes.JSON(c.Body())

	if result.ResultCode != 0 {
		payment.Status = models.PaymentStatusFailed
		if err := db.DB.Save(&payment).Error; err != nil {
			logger.Logger.WithError(err).Error("Failed to record failed payment")
			return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
				Error:   true,
				Message: "Could not record payment result",
			})
		}
		logger.Logger.Warnf("Payment %s failed at gateway: %s", payment.ID, result.ResultDesc)
		return c.JSON(responses.SuccessResponse{
			Error:   false,
			Message: "Payment marked failed",
			Data:    payment,
		})
	}

	for _, item := range result.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if receipt, ok := item.Value.(string); ok {
				payment.MpesaReceipt = receipt
			}
		}
	}

	if payment.PackageID != nil {
		vouchers, err := voucherLedger.GenerateBatch(c.Context(), core.GenerateRequest{
			PackageID: *payment.PackageID,
			Quantity:  1,
		})
		if err != nil {
			logger.Logger.WithError(err).Errorf("Failed to issue voucher for payment %s", payment.ID)
			return err
		}
		payment.VoucherID = &vouchers[0].ID
	}

	now := time.Now()
	payment.Status = models.PaymentStatusCompleted
	payment.CompletedAt = &now

	if err := db.DB.Save(&payment).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to complete payment in PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not complete payment",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Payment completed",
		Data:    payment,
	})
}

func GetAllPayments(c *fiber.Ctx) error {
	var payments []models.Payment
	if err := db.DB.Order("created_at desc").Find(&payments).Error; err != nil {
		logger.Logger.WithError(err).Error("Failed to fetch payments from PostgreSQL")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not retrieve payments",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Payments retrieved successfully",
		Data:    payments,
	})
}

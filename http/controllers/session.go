package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/http/responses"
	"jeewifi-backend/logger"
	"jeewifi-backend/models"
)

// GetAllSessions lists sessions for the dashboard, optionally filtered with
// ?status=active or ?status=active,paused.
func GetAllSessions(c *fiber.Ctx) error {
	var statuses []string
	if q := c.Query("status"); q != "" {
		for _, s := range strings.Split(q, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}

	sessions, err := sessionEngine.List(c.Context(), statuses...)
	if err != nil {
		return err
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Sessions retrieved successfully",
		Data:    sessions,
	})
}

// GetConnectedUsers is the live view: active and paused sessions with their
// remaining budgets.
func GetConnectedUsers(c *fiber.Ctx) error {
	sessions, err := sessionEngine.List(c.Context(),
		models.SessionStatusActive, models.SessionStatusPaused)
	if err != nil {
		return err
	}

	type connectedUser struct {
		models.Session
		RemainingSeconds int     `json:"remaining_seconds"`
		TimeLimited      bool    `json:"time_limited"`
		RemainingDataMb  float64 `json:"remaining_data_mb"`
		DataLimited      bool    `json:"data_limited"`
	}
	out := make([]connectedUser, 0, len(sessions))
	for i := range sessions {
		secs, timeLimited := sessions[i].RemainingSeconds()
		mb, dataLimited := sessions[i].RemainingDataMb()
		out = append(out, connectedUser{
			Session:          sessions[i],
			RemainingSeconds: secs,
			TimeLimited:      timeLimited,
			RemainingDataMb:  mb,
			DataLimited:      dataLimited,
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Connected users retrieved successfully",
		Data:    out,
	})
}

// DisconnectSession is the admin kick. Closing an already-closed session
// succeeds quietly.
func DisconnectSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := sessionEngine.Close(c.Context(), id); err != nil {
		return err
	}

	logger.Logger.Infof("Admin %s disconnected session %s", adminUsername(c), id)
	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Session disconnected",
	})
}

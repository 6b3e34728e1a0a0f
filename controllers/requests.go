package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"stylistapi/models"
	"stylistapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

type RequestController struct {
	Store services.StoreProvider
}

func (rc *RequestController) RequestRoutes(g *echo.Group) {
	g.POST("/outfit-request", rc.CreateOutfitRequest)
}

// CreateOutfitRequest accepts a styling request and stores it as pending. The
// poller picks it up on its next cycle, so the response only acknowledges
// acceptance.
func (rc *RequestController) CreateOutfitRequest(c echo.Context) error {
	payload := new(models.OutfitRequestIn)
	if err := c.Bind(payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(payload); err != nil {
		return err
	}
	// The required tag accepts whitespace-only strings.
	if strings.TrimSpace(payload.Context) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "context is required")
	}

	numberOfOptions := models.DefaultNumberOfOptions
	if payload.NumberOfOptions != nil {
		numberOfOptions = *payload.NumberOfOptions
	}
	requestID, err := rc.Store.CreateOutfitRequest(c.Request().Context(), models.NewOutfitRequest{
		Context:         payload.Context,
		Constraints:     payload.Constraints,
		NumberOfOptions: numberOfOptions,
	})
	if err != nil {
		fmt.Println("Error creating outfit request: ", err)
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	fmt.Printf("[Request: %s] Accepted via API\n", requestID)
	return c.JSON(http.StatusCreated, models.OutfitRequestOut{
		Success:   true,
		RequestID: requestID,
		Message:   "Outfit request queued for generation",
	})
}

func (rc *RequestController) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

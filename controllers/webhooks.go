package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"stylistapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

type WebhooksController struct {
	Poller *services.Poller
	Secret string
}

func (wc *WebhooksController) SetupRoutes(g *echo.Group) {

	g.POST("/notion", func(c echo.Context) error {
		if c.Request().Header.Get("X-Notion-Webhook-Secret") != wc.Secret {
			fmt.Println("Invalid webhook secret!")
			fmt.Println("[Malicious] IP: ", c.RealIP(), "User agent: ", c.Request().Header.Get("User-Agent"))
			return echo.ErrUnauthorized
		}

		var payload map[string]interface{}
		if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
			fmt.Println("Error parsing webhook json: ", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
		}

		pageID := extractPageID(payload)
		if pageID == "" {
			fmt.Println("Webhook payload carries no page id: ", payload)
			return echo.NewHTTPError(http.StatusBadRequest, "No page id in payload")
		}

		// Ack immediately so the sender never retries while generation runs.
		go func() {
			if err := wc.Poller.ProcessRequestByID(context.Background(), pageID); err != nil {
				fmt.Printf("[Request: %s] Webhook-triggered processing failed: %v\n", pageID, err)
				sentry.CaptureException(err)
			}
		}()

		return c.JSON(http.StatusOK, echo.Map{
			"message": "OK",
		})
	})
}

// extractPageID pulls the request page ID out of any of the payload shapes
// the automation sends: top-level page_id, data.id, or entity.id.
func extractPageID(payload map[string]interface{}) string {
	if pageID, ok := payload["page_id"].(string); ok && pageID != "" {
		return pageID
	}
	if data, ok := payload["data"].(map[string]interface{}); ok {
		if pageID, ok := data["id"].(string); ok && pageID != "" {
			return pageID
		}
	}
	if entity, ok := payload["entity"].(map[string]interface{}); ok {
		if pageID, ok := entity["id"].(string); ok && pageID != "" {
			return pageID
		}
	}
	return ""
}

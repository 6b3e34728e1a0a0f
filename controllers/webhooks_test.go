package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stylistapi/models"
	"stylistapi/services"
	"stylistapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "test-secret"

func setupWebhookServer(store *test.StoreMock, stylist *test.StylistMock) *services.Poller {
	alerts := &services.AlertService{}
	return services.NewPoller(store, services.NewOutfitService(store, stylist, alerts), alerts)
}

func seedPendingRequest(store *test.StoreMock) string {
	store.WardrobeItems = []models.WardrobeItem{
		{ID: "item-dress", Name: "Floral Midi Dress", Category: models.CategoryDress, Status: models.WardrobeStatusActive},
		{ID: "item-shoes", Name: "Tan Sandals", Category: models.CategoryShoes, Status: models.WardrobeStatusActive},
	}
	store.Requests["request-1"] = &models.OutfitRequest{
		ID:              "request-1",
		Context:         "Beach wedding in the evening",
		NumberOfOptions: 1,
		Status:          models.RequestStatusPending,
	}
	return "request-1"
}

func stylistWithDressOutfit() *test.StylistMock {
	dress := "item-dress"
	return &test.StylistMock{Response: &models.StylistResponse{Outfits: []models.StylistOutfit{
		{
			Name:       "Seaside Evening",
			Items:      models.StylistItems{Dress: &dress, Shoes: "item-shoes"},
			WhyItWorks: "Floaty silhouette for a beach ceremony.",
		},
	}}}
}

func TestWebhookRejectsInvalidSecret(t *testing.T) {
	store := test.NewStoreMock()
	stylist := stylistWithDressOutfit()
	e := SetupServer(store, setupWebhookServer(store, stylist), webhookSecret)
	seedPendingRequest(store)

	req := test.NewWebhookRequest("/webhooks/notion", "wrong-secret", map[string]string{"page_id": "request-1"})
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, stylist.Calls)
}

func TestWebhookRejectsMissingSecret(t *testing.T) {
	store := test.NewStoreMock()
	e := SetupServer(store, setupWebhookServer(store, stylistWithDressOutfit()), webhookSecret)

	req := test.NewJSONRequest(http.MethodPost, "/webhooks/notion", map[string]string{"page_id": "request-1"})
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookTriggersProcessing(t *testing.T) {
	store := test.NewStoreMock()
	stylist := stylistWithDressOutfit()
	e := SetupServer(store, setupWebhookServer(store, stylist), webhookSecret)
	requestID := seedPendingRequest(store)

	req := test.NewWebhookRequest("/webhooks/notion", webhookSecret, map[string]string{"page_id": requestID})
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	// The ack is immediate, generation runs in the background.
	require.Equal(t, http.StatusOK, rec.Code)
	require.Eventually(t, func() bool {
		return store.RequestStatus(requestID) == models.RequestStatusDone
	}, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, store.CreatedOutfits, 1)
	assert.Equal(t, "Seaside Evening", store.CreatedOutfits[0].Name)
}

func TestWebhookAcceptsNestedPayloadShapes(t *testing.T) {
	for _, payload := range []map[string]interface{}{
		{"data": map[string]interface{}{"id": "request-1"}},
		{"entity": map[string]interface{}{"id": "request-1"}},
	} {
		store := test.NewStoreMock()
		stylist := stylistWithDressOutfit()
		e := SetupServer(store, setupWebhookServer(store, stylist), webhookSecret)
		seedPendingRequest(store)

		req := test.NewWebhookRequest("/webhooks/notion", webhookSecret, payload)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Eventually(t, func() bool {
			return store.RequestStatus("request-1") == models.RequestStatusDone
		}, 2*time.Second, 10*time.Millisecond)
	}
}

func TestWebhookRejectsPayloadWithoutPageID(t *testing.T) {
	store := test.NewStoreMock()
	e := SetupServer(store, setupWebhookServer(store, stylistWithDressOutfit()), webhookSecret)

	req := test.NewWebhookRequest("/webhooks/notion", webhookSecret, map[string]string{"event": "page.updated"})
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookCompletedRequestIsNotReprocessed(t *testing.T) {
	store := test.NewStoreMock()
	stylist := stylistWithDressOutfit()
	e := SetupServer(store, setupWebhookServer(store, stylist), webhookSecret)
	requestID := seedPendingRequest(store)
	store.Requests[requestID].Status = models.RequestStatusDone

	req := test.NewWebhookRequest("/webhooks/notion", webhookSecret, map[string]string{"page_id": requestID})
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Give the background goroutine a beat, then confirm nothing ran.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, stylist.Calls)
	assert.Empty(t, store.CreatedOutfits)
}

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"stylistapi/models"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func NewWebhookRequest(target string, secret string, param interface{}) *http.Request {
	req := NewJSONRequest(http.MethodPost, target, param)
	req.Header.Add("X-Notion-Webhook-Secret", secret)
	return req
}

func NewRefString(data string) *string {
	return &data
}

func Contains(items []string, lookFor string) bool {

	for i := 0; i < len(items); i++ {

		if items[i] == lookFor {
			return true
		}
	}
	return false
}

// StoreMock is an in-memory store used by controller tests. Individual
// operations can be forced to fail, and created records are inspectable.
type StoreMock struct {
	mu sync.Mutex

	WardrobeItems  []models.WardrobeItem
	StyleInspo     []models.StyleInspo
	WornFeedback   []models.WornFeedback
	Requests       map[string]*models.OutfitRequest
	CreatedOutfits []models.NewOutfit

	FailCreateRequest bool
	nextID            int
}

func NewStoreMock() *StoreMock {
	return &StoreMock{Requests: map[string]*models.OutfitRequest{}}
}

func (sm *StoreMock) GetActiveWardrobeItems(ctx context.Context) ([]models.WardrobeItem, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.WardrobeItems, nil
}

func (sm *StoreMock) GetLikedStyleInspo(ctx context.Context) ([]models.StyleInspo, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.StyleInspo, nil
}

func (sm *StoreMock) GetRecentWornFeedback(ctx context.Context, days int) ([]models.WornFeedback, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.WornFeedback, nil
}

func (sm *StoreMock) GetPendingOutfitRequests(ctx context.Context) ([]models.OutfitRequest, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	pending := []models.OutfitRequest{}
	for _, request := range sm.Requests {
		if request.Status == models.RequestStatusPending {
			pending = append(pending, *request)
		}
	}
	return pending, nil
}

func (sm *StoreMock) GetOutfitRequest(ctx context.Context, requestID string) (*models.OutfitRequest, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	request, ok := sm.Requests[requestID]
	if !ok {
		return nil, fmt.Errorf("outfit request not found")
	}
	copied := *request
	return &copied, nil
}

func (sm *StoreMock) CreateOutfitRequest(ctx context.Context, request models.NewOutfitRequest) (string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.FailCreateRequest {
		return "", fmt.Errorf("store unavailable")
	}
	sm.nextID++
	id := fmt.Sprintf("request-%d", sm.nextID)
	sm.Requests[id] = &models.OutfitRequest{
		ID:              id,
		Context:         request.Context,
		Constraints:     request.Constraints,
		NumberOfOptions: request.NumberOfOptions,
		Status:          models.RequestStatusPending,
	}
	return id, nil
}

func (sm *StoreMock) UpdateRequestStatus(ctx context.Context, requestID string, status string, errorMessage *string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	request, ok := sm.Requests[requestID]
	if !ok {
		return fmt.Errorf("outfit request not found")
	}
	request.Status = status
	request.ErrorMessage = errorMessage
	return nil
}

func (sm *StoreMock) CreateOutfit(ctx context.Context, outfit models.NewOutfit) (string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.CreatedOutfits = append(sm.CreatedOutfits, outfit)
	return fmt.Sprintf("outfit-%d", len(sm.CreatedOutfits)), nil
}

func (sm *StoreMock) RequestStatus(requestID string) string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	request, ok := sm.Requests[requestID]
	if !ok {
		return ""
	}
	return request.Status
}

// StylistMock returns a canned model response without touching the network.
type StylistMock struct {
	Response *models.StylistResponse
	Err      error
	Calls    int
}

func (sm *StylistMock) GenerateOutfits(ctx context.Context, prompt string) (*models.StylistResponse, error) {
	sm.Calls++
	if sm.Err != nil {
		return nil, sm.Err
	}
	if sm.Response == nil {
		log.Println("StylistMock has no response configured")
		return nil, fmt.Errorf("no response configured")
	}
	return sm.Response, nil
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stylistapi/models"
)

// storeStub is the in-package test double for StoreProvider. Controller tests
// use the richer mock in the test package; here a small setup-per-test stub
// keeps the pipeline tests readable.
type storeStub struct {
	mu sync.Mutex

	wardrobe []models.WardrobeItem
	inspo    []models.StyleInspo
	feedback []models.WornFeedback
	requests map[string]*models.OutfitRequest

	createdOutfits  []models.NewOutfit
	failOutfitNames map[string]bool
	failWardrobe    bool
	pendingDelay    time.Duration
	pendingCalls    int
	wardrobeCalls   int
}

func newStoreStub() *storeStub {
	return &storeStub{requests: map[string]*models.OutfitRequest{}}
}

func (s *storeStub) addRequest(request models.OutfitRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := request
	s.requests[request.ID] = &copied
}

func (s *storeStub) requestStatus(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		return ""
	}
	return request.Status
}

func (s *storeStub) requestError(id string) *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		return nil
	}
	return request.ErrorMessage
}

func (s *storeStub) outfits() []models.NewOutfit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.NewOutfit{}, s.createdOutfits...)
}

func (s *storeStub) GetActiveWardrobeItems(ctx context.Context) ([]models.WardrobeItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wardrobeCalls++
	if s.failWardrobe {
		return nil, fmt.Errorf("store unavailable")
	}
	return s.wardrobe, nil
}

func (s *storeStub) GetLikedStyleInspo(ctx context.Context) ([]models.StyleInspo, error) {
	return s.inspo, nil
}

func (s *storeStub) GetRecentWornFeedback(ctx context.Context, days int) ([]models.WornFeedback, error) {
	return s.feedback, nil
}

func (s *storeStub) GetPendingOutfitRequests(ctx context.Context) ([]models.OutfitRequest, error) {
	s.mu.Lock()
	s.pendingCalls++
	delay := s.pendingDelay
	pending := []models.OutfitRequest{}
	for _, request := range s.requests {
		if request.Status == models.RequestStatusPending {
			pending = append(pending, *request)
		}
	}
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return pending, nil
}

func (s *storeStub) GetOutfitRequest(ctx context.Context, requestID string) (*models.OutfitRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (s *storeStub) CreateOutfitRequest(ctx context.Context, request models.NewOutfitRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("request-%d", len(s.requests)+1)
	s.requests[id] = &models.OutfitRequest{
		ID:              id,
		Context:         request.Context,
		Constraints:     request.Constraints,
		NumberOfOptions: request.NumberOfOptions,
		Status:          models.RequestStatusPending,
	}
	return id, nil
}

func (s *storeStub) UpdateRequestStatus(ctx context.Context, requestID string, status string, errorMessage *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[requestID]
	if !ok {
		return fmt.Errorf("outfit request not found")
	}
	request.Status = status
	request.ErrorMessage = errorMessage
	return nil
}

func (s *storeStub) CreateOutfit(ctx context.Context, outfit models.NewOutfit) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOutfitNames[outfit.Name] {
		return "", fmt.Errorf("store unavailable")
	}
	s.createdOutfits = append(s.createdOutfits, outfit)
	return fmt.Sprintf("outfit-%d", len(s.createdOutfits)), nil
}

type stylistStub struct {
	response *models.StylistResponse
	err      error
	calls    int
}

func (s *stylistStub) GenerateOutfits(ctx context.Context, prompt string) (*models.StylistResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

// Fixture wardrobe shared across pipeline tests.
func testWardrobe() []models.WardrobeItem {
	material := "cotton"
	return []models.WardrobeItem{
		{ID: "item-top", Name: "White Linen Shirt", Category: models.CategoryTop, Colors: []string{"white"}, Pattern: "solid", Material: &material, Season: []string{"summer"}, Formality: "2", Status: models.WardrobeStatusActive},
		{ID: "item-bottom", Name: "Beige Chinos", Category: models.CategoryBottom, Colors: []string{"beige"}, Pattern: "solid", Season: []string{"summer"}, Formality: "2", Status: models.WardrobeStatusActive},
		{ID: "item-dress", Name: "Floral Midi Dress", Category: models.CategoryDress, Colors: []string{"blue", "white"}, Pattern: "floral", Season: []string{"summer"}, Formality: "3", Status: models.WardrobeStatusActive},
		{ID: "item-shoes", Name: "Tan Sandals", Category: models.CategoryShoes, Colors: []string{"tan"}, Pattern: "solid", Season: []string{"summer"}, Formality: "2", Status: models.WardrobeStatusActive},
		{ID: "item-bag", Name: "Straw Tote", Category: models.CategoryBag, Colors: []string{"natural"}, Pattern: "solid", Season: []string{"summer"}, Formality: "2", Status: models.WardrobeStatusActive},
	}
}

func topBottomOutfit(name string) models.StylistOutfit {
	top := "item-top"
	bottom := "item-bottom"
	return models.StylistOutfit{
		Name:       name,
		Items:      models.StylistItems{Top: &top, Bottom: &bottom, Shoes: "item-shoes", Accessories: []string{"item-bag"}},
		WhyItWorks: "Light neutrals match a warm outdoor setting.",
	}
}

func dressOutfit(name string) models.StylistOutfit {
	dress := "item-dress"
	return models.StylistOutfit{
		Name:       name,
		Items:      models.StylistItems{Dress: &dress, Shoes: "item-shoes"},
		WhyItWorks: "One-piece silhouette with matching sandals.",
	}
}

package services

import (
	"context"
	"fmt"

	"stylistapi/models"

	"github.com/getsentry/sentry-go"
)

// feedbackWindowDays bounds how far back worn feedback is pulled for a
// generation run.
const feedbackWindowDays = 30

// GenerationResult summarizes one pipeline run for a single request.
type GenerationResult struct {
	OutfitIDs []string
	Proposed  int
	Dropped   int
}

// OutfitService runs the full generation pipeline for one request: aggregate
// the wardrobe snapshot, call the stylist model, validate each candidate
// against that same snapshot, persist the survivors.
type OutfitService struct {
	store   StoreProvider
	stylist LLMStylist
	alerts  *AlertService
}

func NewOutfitService(store StoreProvider, stylist LLMStylist, alerts *AlertService) *OutfitService {
	return &OutfitService{store: store, stylist: stylist, alerts: alerts}
}

// GenerateForRequest processes one outfit request end to end. The caller owns
// the request's status transitions; this only reports success or failure.
func (s *OutfitService) GenerateForRequest(ctx context.Context, request models.OutfitRequest) (*GenerationResult, error) {
	wardrobe, err := s.store.GetActiveWardrobeItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading wardrobe: %v", err)
	}
	if len(wardrobe) == 0 {
		return nil, fmt.Errorf("no active wardrobe items, nothing to style")
	}
	inspo, err := s.store.GetLikedStyleInspo(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading style inspo: %v", err)
	}
	feedback, err := s.store.GetRecentWornFeedback(ctx, feedbackWindowDays)
	if err != nil {
		return nil, fmt.Errorf("loading worn feedback: %v", err)
	}

	prompt := BuildStylistPrompt(PromptContext{
		WardrobeItems:   wardrobe,
		StyleInspo:      inspo,
		RecentFeedback:  feedback,
		RequestContext:  request.Context,
		Constraints:     request.Constraints,
		NumberOfOptions: request.NumberOfOptions,
	})

	response, err := s.stylist.GenerateOutfits(ctx, prompt)
	if err != nil {
		return nil, err
	}

	itemsByID := make(map[string]models.WardrobeItem, len(wardrobe))
	activeIDs := make(map[string]bool, len(wardrobe))
	for _, item := range wardrobe {
		itemsByID[item.ID] = item
		activeIDs[item.ID] = true
	}

	result := &GenerationResult{Proposed: len(response.Outfits)}
	for _, candidate := range response.Outfits {
		if err := CheckOutfit(candidate, activeIDs); err != nil {
			fmt.Printf("[Request: %s] Dropping outfit %q: %v\n", request.ID, candidate.Name, err)
			result.Dropped++
			continue
		}
		validated := models.ValidatedOutfit{
			Name:       candidate.Name,
			Items:      resolveItems(candidate.Items, itemsByID),
			WhyItWorks: candidate.WhyItWorks,
			Variants:   candidate.Variants,
		}
		outfitID, err := s.store.CreateOutfit(ctx, buildNewOutfit(request.ID, validated))
		if err != nil {
			fmt.Printf("[Request: %s] Persisting outfit %q failed: %v\n", request.ID, validated.Name, err)
			sentry.CaptureException(err)
			result.Dropped++
			continue
		}
		result.OutfitIDs = append(result.OutfitIDs, outfitID)
	}

	if len(result.OutfitIDs) == 0 {
		return nil, fmt.Errorf("no outfits survived validation and persistence (%d proposed)", result.Proposed)
	}
	return result, nil
}

// resolveItems maps the candidate's slot IDs back to full wardrobe records.
// Referential integrity was already checked, so lookups cannot miss.
func resolveItems(items models.StylistItems, byID map[string]models.WardrobeItem) models.OutfitItemMapping {
	mapping := models.OutfitItemMapping{
		Top:       lookupItem(items.Top, byID),
		Bottom:    lookupItem(items.Bottom, byID),
		Dress:     lookupItem(items.Dress, byID),
		Outerwear: lookupItem(items.Outerwear, byID),
		Shoes:     byID[items.Shoes],
	}
	for _, accessoryID := range items.Accessories {
		mapping.Accessories = append(mapping.Accessories, byID[accessoryID])
	}
	return mapping
}

func lookupItem(id *string, byID map[string]models.WardrobeItem) *models.WardrobeItem {
	if id == nil {
		return nil
	}
	item, ok := byID[*id]
	if !ok {
		return nil
	}
	return &item
}

func buildNewOutfit(requestID string, validated models.ValidatedOutfit) models.NewOutfit {
	items := validated.Items
	outfit := models.NewOutfit{
		Name:      validated.Name,
		RequestID: requestID,
		ShoesID:   items.Shoes.ID,
		Rationale: validated.WhyItWorks,
	}
	payload := models.ItemsPayload{Shoes: items.Shoes.ID}
	if items.Top != nil {
		outfit.TopID = StrPointer(items.Top.ID)
		payload.Top = outfit.TopID
	}
	if items.Bottom != nil {
		outfit.BottomID = StrPointer(items.Bottom.ID)
		payload.Bottom = outfit.BottomID
	}
	if items.Dress != nil {
		outfit.DressID = StrPointer(items.Dress.ID)
		payload.Dress = outfit.DressID
	}
	if items.Outerwear != nil {
		outfit.OuterwearID = StrPointer(items.Outerwear.ID)
		payload.Outerwear = outfit.OuterwearID
	}
	for _, accessory := range items.Accessories {
		outfit.AccessoryIDs = append(outfit.AccessoryIDs, accessory.ID)
	}
	payload.Accessories = outfit.AccessoryIDs
	outfit.ItemsJSON = ItemsJSON(payload)
	return outfit
}

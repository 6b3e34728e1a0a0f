package services

import (
	"fmt"
	"strings"

	"stylistapi/models"
)

// ValidateStylistResponse runs the structural check over a parsed model
// response. Any violation fails the whole response: a model that could not
// honor the output contract produces nothing salvageable, and the caller
// retries or falls back to the next tier.
func ValidateStylistResponse(response *models.StylistResponse) error {
	if response == nil || response.Outfits == nil {
		return fmt.Errorf("missing outfits array")
	}
	for i, outfit := range response.Outfits {
		if outfit.Name == "" {
			return fmt.Errorf("outfit %d: missing name", i)
		}
		if outfit.WhyItWorks == "" {
			return fmt.Errorf("outfit %d (%s): missing why_it_works", i, outfit.Name)
		}
		if outfit.Items.Shoes == "" {
			return fmt.Errorf("outfit %d (%s): missing items.shoes", i, outfit.Name)
		}
		for j, accessory := range outfit.Items.Accessories {
			if accessory == "" {
				return fmt.Errorf("outfit %d (%s): empty accessory id at index %d", i, outfit.Name, j)
			}
		}
		for j, variant := range outfit.Variants {
			if variant.SwapOut == "" || variant.SwapIn == "" || variant.Reason == "" {
				return fmt.Errorf("outfit %d (%s): incomplete variant at index %d", i, outfit.Name, j)
			}
		}
	}
	return nil
}

// CheckOutfit checks one structurally valid outfit against the composition
// rule (dress XOR top+bottom) and the active-wardrobe ID set. A failure here
// drops only this outfit, leaving the rest of the batch alive.
func CheckOutfit(outfit models.StylistOutfit, activeIDs map[string]bool) error {
	hasDress := outfit.Items.Dress != nil && *outfit.Items.Dress != ""
	hasTop := outfit.Items.Top != nil && *outfit.Items.Top != ""
	hasBottom := outfit.Items.Bottom != nil && *outfit.Items.Bottom != ""

	if hasDress && (hasTop || hasBottom) {
		return fmt.Errorf("outfit %q combines a dress with top/bottom", outfit.Name)
	}
	if !hasDress && !(hasTop && hasBottom) {
		return fmt.Errorf("outfit %q needs either a dress or both top and bottom", outfit.Name)
	}

	var invalidIDs []string
	for _, id := range collectOutfitIDs(outfit) {
		if !activeIDs[id] {
			invalidIDs = append(invalidIDs, id)
		}
	}
	if len(invalidIDs) > 0 {
		return fmt.Errorf("invalid item IDs in outfit %q: %s", outfit.Name, strings.Join(invalidIDs, ", "))
	}
	return nil
}

func collectOutfitIDs(outfit models.StylistOutfit) []string {
	var ids []string
	for _, slot := range []*string{outfit.Items.Top, outfit.Items.Bottom, outfit.Items.Dress, outfit.Items.Outerwear} {
		if slot != nil && *slot != "" {
			ids = append(ids, *slot)
		}
	}
	ids = append(ids, outfit.Items.Shoes)
	ids = append(ids, outfit.Items.Accessories...)
	return ids
}

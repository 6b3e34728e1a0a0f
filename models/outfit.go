package models

// StylistItems is the item-slot mapping inside a model-proposed outfit. All
// values are wardrobe page IDs copied verbatim from the prompt.
type StylistItems struct {
	Top         *string  `json:"top"`
	Bottom      *string  `json:"bottom"`
	Dress       *string  `json:"dress"`
	Outerwear   *string  `json:"outerwear"`
	Shoes       string   `json:"shoes"`
	Accessories []string `json:"accessories"`
}

type StylistVariant struct {
	SwapOut string `json:"swap_out"`
	SwapIn  string `json:"swap_in"`
	Reason  string `json:"reason"`
}

// StylistOutfit is one candidate outfit exactly as the model proposed it.
// Transient until it passes validation.
type StylistOutfit struct {
	Name       string           `json:"name"`
	Items      StylistItems     `json:"items"`
	WhyItWorks string           `json:"why_it_works"`
	Variants   []StylistVariant `json:"variants,omitempty"`
}

// StylistResponse is the full parsed payload of one model call.
type StylistResponse struct {
	Outfits []StylistOutfit `json:"outfits"`
}

// OutfitItemMapping holds the candidate's slots resolved to full wardrobe
// records from the active snapshot.
type OutfitItemMapping struct {
	Top         *WardrobeItem
	Bottom      *WardrobeItem
	Dress       *WardrobeItem
	Outerwear   *WardrobeItem
	Shoes       WardrobeItem
	Accessories []WardrobeItem
}

type ValidatedOutfit struct {
	Name       string
	Items      OutfitItemMapping
	WhyItWorks string
	Variants   []StylistVariant
}

// ItemsPayload is the compact ID-only mapping serialized into the outfit
// page's Items_JSON field.
type ItemsPayload struct {
	Top         *string  `json:"top"`
	Bottom      *string  `json:"bottom"`
	Dress       *string  `json:"dress"`
	Outerwear   *string  `json:"outerwear"`
	Shoes       string   `json:"shoes"`
	Accessories []string `json:"accessories"`
}

// NewOutfit carries everything the gateway writes when persisting one
// validated outfit as its own page.
type NewOutfit struct {
	Name         string
	RequestID    string
	ItemsJSON    string
	TopID        *string
	BottomID     *string
	DressID      *string
	OuterwearID  *string
	ShoesID      string
	AccessoryIDs []string
	Rationale    string
}

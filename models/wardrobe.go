package models

// Wardrobe categories as stored in the Category select of the wardrobe database.
const (
	CategoryTop       = "top"
	CategoryBottom    = "bottom"
	CategoryOuterwear = "outerwear"
	CategoryDress     = "dress"
	CategoryShoes     = "shoes"
	CategoryBag       = "bag"
	CategoryAccessory = "accessory"
)

const (
	WardrobeStatusActive   = "active"
	WardrobeStatusArchived = "archived"
)

type WardrobeItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"` // top, bottom, outerwear, dress, shoes, bag, accessory
	Colors       []string `json:"colors"`
	Pattern      string   `json:"pattern"` // solid, striped, checked, floral, graphic, other
	Material     *string  `json:"material"`
	Season       []string `json:"season"`
	Formality    string   `json:"formality"` // 1-casual .. 5-formal
	FitNotes     *string  `json:"fit_notes"`
	PurchaseLink *string  `json:"purchase_link"`
	Status       string   `json:"status"` // active, archived
	ImageURLs    []string `json:"image_urls"`
}

type StyleInspo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ImageURLs []string `json:"image_urls"`
	VibeTags  []string `json:"vibe_tags"`
	Like      bool     `json:"like"`
	Why       *string  `json:"why"`
	SourceURL *string  `json:"source_url"`
}

// WornFeedback is a single entry from the worn-today database. Rating is the
// raw select value ("1".."5") since it only ever lands back in a prompt.
type WornFeedback struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	OutfitID   string  `json:"outfit_id"`
	Rating     string  `json:"rating"`
	WhatWorked *string `json:"what_worked"`
	WhatDidnt  *string `json:"what_didnt"`
	Notes      *string `json:"notes"`
	Weather    *string `json:"weather"`
	Occasion   *string `json:"occasion"`
}

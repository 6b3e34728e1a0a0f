package models

// Outfit request lifecycle. Transitions only move forward:
// pending -> processing -> done | error.
const (
	RequestStatusPending    = "pending"
	RequestStatusProcessing = "processing"
	RequestStatusDone       = "done"
	RequestStatusError      = "error"
)

// DefaultNumberOfOptions is used for requests created directly in the store
// without an explicit Number_of_Options value.
const DefaultNumberOfOptions = 5

type OutfitRequest struct {
	ID               string   `json:"id"`
	RequestDate      *string  `json:"request_date"`
	Context          string   `json:"context"`
	Constraints      *string  `json:"constraints"`
	NumberOfOptions  int      `json:"number_of_options"`
	Status           string   `json:"status"` // pending, processing, done, error
	ErrorMessage     *string  `json:"error_message"`
	GeneratedOutfits []string `json:"generated_outfits"`
}

// NewOutfitRequest carries the fields the gateway writes when creating a
// request page. Bounds checking on NumberOfOptions belongs to the caller.
type NewOutfitRequest struct {
	Context         string
	Constraints     *string
	NumberOfOptions int
	RequestDate     *string
}

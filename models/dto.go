package models

type OutfitRequestIn struct {
	Context         string  `json:"context" validate:"required"`
	Constraints     *string `json:"constraints"`
	NumberOfOptions *int    `json:"number_of_options" validate:"omitempty,min=1,max=10"`
}

type OutfitRequestOut struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"stylistapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/jomei/notionapi"
)

// ErrRequestNotFound signals that an outfit request page does not exist in
// the store. Callers decide whether that is fatal.
var ErrRequestNotFound = errors.New("outfit request not found")

// StoreProvider is the capability contract the pipeline needs from the
// document store. NotionService is the real one, test/utils.go has the mock.
type StoreProvider interface {
	GetActiveWardrobeItems(ctx context.Context) ([]models.WardrobeItem, error)
	GetLikedStyleInspo(ctx context.Context) ([]models.StyleInspo, error)
	GetRecentWornFeedback(ctx context.Context, days int) ([]models.WornFeedback, error)
	GetPendingOutfitRequests(ctx context.Context) ([]models.OutfitRequest, error)
	GetOutfitRequest(ctx context.Context, requestID string) (*models.OutfitRequest, error)
	CreateOutfitRequest(ctx context.Context, request models.NewOutfitRequest) (string, error)
	UpdateRequestStatus(ctx context.Context, requestID string, status string, errorMessage *string) error
	CreateOutfit(ctx context.Context, outfit models.NewOutfit) (string, error)
}

// StoreDatabases holds the five collection identifiers, passed in from
// configuration.
type StoreDatabases struct {
	Wardrobe       string
	StyleInspo     string
	OutfitRequests string
	MyOutfits      string
	WornToday      string
}

type NotionService struct {
	client    *notionapi.Client
	databases StoreDatabases
}

func NewNotionService(apiKey string, databases StoreDatabases) *NotionService {
	return &NotionService{
		client:    notionapi.NewClient(notionapi.Token(apiKey)),
		databases: databases,
	}
}

func (ns *NotionService) GetActiveWardrobeItems(ctx context.Context) ([]models.WardrobeItem, error) {
	response, err := RetryWithBackoff(ctx, DefaultRetry, func(ctx context.Context) (*notionapi.DatabaseQueryResponse, error) {
		return ns.client.Database.Query(ctx, notionapi.DatabaseID(ns.databases.Wardrobe), &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: "Status",
				Select:   &notionapi.SelectFilterCondition{Equals: models.WardrobeStatusActive},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("querying wardrobe database: %v", err)
	}
	items := []models.WardrobeItem{}
	for _, page := range response.Results {
		items = append(items, parseWardrobeItem(page))
	}
	return items, nil
}

func parseWardrobeItem(page notionapi.Page) models.WardrobeItem {
	props := page.Properties
	return models.WardrobeItem{
		ID:           string(page.ID),
		Name:         getTitle(props, "Name"),
		Category:     getSelect(props, "Category"),
		Colors:       getMultiSelect(props, "Colors"),
		Pattern:      getSelect(props, "Pattern"),
		Material:     StrPointer(getSelect(props, "Material")),
		Season:       getMultiSelect(props, "Season"),
		Formality:    getSelect(props, "Formality"),
		FitNotes:     StrPointer(getRichText(props, "Fit_Notes")),
		PurchaseLink: StrPointer(getURL(props, "Purchase_Link")),
		Status:       getSelect(props, "Status"),
		ImageURLs:    getFiles(props, "Image"),
	}
}

func (ns *NotionService) GetLikedStyleInspo(ctx context.Context) ([]models.StyleInspo, error) {
	response, err := RetryWithBackoff(ctx, DefaultRetry, func(ctx context.Context) (*notionapi.DatabaseQueryResponse, error) {
		return ns.client.Database.Query(ctx, notionapi.DatabaseID(ns.databases.StyleInspo), &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: "Like",
				Checkbox: &notionapi.CheckboxFilterCondition{Equals: true},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("querying style inspo database: %v", err)
	}
	inspos := []models.StyleInspo{}
	for _, page := range response.Results {
		props := page.Properties
		inspos = append(inspos, models.StyleInspo{
			ID:        string(page.ID),
			Name:      getTitle(props, "Name"),
			ImageURLs: getFiles(props, "Image"),
			VibeTags:  getMultiSelect(props, "Vibe_Tags"),
			Like:      getCheckbox(props, "Like"),
			Why:       StrPointer(getRichText(props, "Why")),
			SourceURL: StrPointer(getURL(props, "Source_URL")),
		})
	}
	return inspos, nil
}

func (ns *NotionService) GetRecentWornFeedback(ctx context.Context, days int) ([]models.WornFeedback, error) {
	cutoff := notionapi.Date(time.Now().AddDate(0, 0, -days))
	response, err := RetryWithBackoff(ctx, DefaultRetry, func(ctx context.Context) (*notionapi.DatabaseQueryResponse, error) {
		return ns.client.Database.Query(ctx, notionapi.DatabaseID(ns.databases.WornToday), &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: "Date",
				Date:     &notionapi.DateFilterCondition{OnOrAfter: &cutoff},
			},
			Sorts: []notionapi.SortObject{
				{Property: "Date", Direction: notionapi.SortOrderDESC},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("querying worn today database: %v", err)
	}
	feedback := []models.WornFeedback{}
	for _, page := range response.Results {
		props := page.Properties
		entry := models.WornFeedback{
			ID:         string(page.ID),
			Date:       getDate(props, "Date"),
			Rating:     getSelect(props, "Rating"),
			WhatWorked: StrPointer(getRichText(props, "What_Worked")),
			WhatDidnt:  StrPointer(getRichText(props, "What_Didnt")),
			Notes:      StrPointer(getRichText(props, "Notes")),
			Weather:    StrPointer(getRichText(props, "Weather")),
			Occasion:   StrPointer(getRichText(props, "Occasion")),
		}
		if outfits := getRelation(props, "Outfit"); len(outfits) > 0 {
			entry.OutfitID = outfits[0]
		}
		feedback = append(feedback, entry)
	}
	return feedback, nil
}

func (ns *NotionService) GetPendingOutfitRequests(ctx context.Context) ([]models.OutfitRequest, error) {
	response, err := RetryWithBackoff(ctx, DefaultRetry, func(ctx context.Context) (*notionapi.DatabaseQueryResponse, error) {
		return ns.client.Database.Query(ctx, notionapi.DatabaseID(ns.databases.OutfitRequests), &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: "Status",
				Select:   &notionapi.SelectFilterCondition{Equals: models.RequestStatusPending},
			},
			Sorts: []notionapi.SortObject{
				{Property: "Request_Date", Direction: notionapi.SortOrderASC},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("querying outfit requests database: %v", err)
	}
	requests := []models.OutfitRequest{}
	for _, page := range response.Results {
		requests = append(requests, parseOutfitRequest(page))
	}
	return requests, nil
}

func (ns *NotionService) GetOutfitRequest(ctx context.Context, requestID string) (*models.OutfitRequest, error) {
	page, err := RetryWithBackoff(ctx, DefaultRetry, func(ctx context.Context) (*notionapi.Page, error) {
		return ns.client.Page.Get(ctx, notionapi.PageID(requestID))
	})
	if err != nil {
		var apiErr *notionapi.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("retrieving outfit request %s: %v", requestID, err)
	}
	request := parseOutfitRequest(*page)
	return &request, nil
}

func parseOutfitRequest(page notionapi.Page) models.OutfitRequest {
	props := page.Properties
	numberOfOptions := int(getNumber(props, "Number_of_Options"))
	if numberOfOptions == 0 {
		numberOfOptions = models.DefaultNumberOfOptions
	}
	return models.OutfitRequest{
		ID:               string(page.ID),
		RequestDate:      StrPointer(getDate(props, "Request_Date")),
		Context:          getRichText(props, "Context"),
		Constraints:      StrPointer(getRichText(props, "Constraints")),
		NumberOfOptions:  numberOfOptions,
		Status:           getSelect(props, "Status"),
		ErrorMessage:     StrPointer(getRichText(props, "Error_Message")),
		GeneratedOutfits: getRelation(props, "Generated_Outfits"),
	}
}

func (ns *NotionService) CreateOutfitRequest(ctx context.Context, request models.NewOutfitRequest) (string, error) {
	numberOfOptions := request.NumberOfOptions
	if numberOfOptions == 0 {
		numberOfOptions = models.DefaultNumberOfOptions
	}
	properties := notionapi.Properties{
		"Context":           richTextValue(request.Context),
		"Status":            selectValue(models.RequestStatusPending),
		"Number_of_Options": &notionapi.NumberProperty{Number: float64(numberOfOptions)},
	}
	if request.Constraints != nil {
		properties["Constraints"] = richTextValue(*request.Constraints)
	}
	if request.RequestDate != nil {
		parsed, err := time.Parse("2006-01-02", *request.RequestDate)
		if err != nil {
			return "", fmt.Errorf("invalid request date %q: %v", *request.RequestDate, err)
		}
		date := notionapi.Date(parsed)
		properties["Request_Date"] = &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &date}}
	}

	page, err := RetryWithBackoff(ctx, DefaultRetry, func(ctx context.Context) (*notionapi.Page, error) {
		return ns.client.Page.Create(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(ns.databases.OutfitRequests),
			},
			Properties: properties,
		})
	})
	if err != nil {
		sentry.CaptureException(fmt.Errorf("error creating outfit request page: %v", err))
		return "", fmt.Errorf("creating outfit request: %v", err)
	}
	return string(page.ID), nil
}

func (ns *NotionService) UpdateRequestStatus(ctx context.Context, requestID string, status string, errorMessage *string) error {
	properties := notionapi.Properties{
		"Status": selectValue(status),
	}
	if errorMessage != nil {
		properties["Error_Message"] = richTextValue(*errorMessage)
	}
	_, err := RetryWithBackoff(ctx, DefaultRetry, func(ctx context.Context) (*notionapi.Page, error) {
		return ns.client.Page.Update(ctx, notionapi.PageID(requestID), &notionapi.PageUpdateRequest{
			Properties: properties,
		})
	})
	if err != nil {
		return fmt.Errorf("updating request %s status to %s: %v", requestID, status, err)
	}
	return nil
}

func (ns *NotionService) CreateOutfit(ctx context.Context, outfit models.NewOutfit) (string, error) {
	properties := notionapi.Properties{
		"Name":       titleValue(outfit.Name),
		"Request":    relationValue(outfit.RequestID),
		"Items_JSON": richTextValue(outfit.ItemsJSON),
		"Rationale":  richTextValue(outfit.Rationale),
		"Status":     selectValue("generated"),
		"Shoes":      relationValue(outfit.ShoesID),
	}
	if outfit.TopID != nil {
		properties["Top"] = relationValue(*outfit.TopID)
	}
	if outfit.BottomID != nil {
		properties["Bottom"] = relationValue(*outfit.BottomID)
	}
	if outfit.DressID != nil {
		properties["Dress"] = relationValue(*outfit.DressID)
	}
	if outfit.OuterwearID != nil {
		properties["Outerwear"] = relationValue(*outfit.OuterwearID)
	}
	if len(outfit.AccessoryIDs) > 0 {
		properties["Accessories"] = relationValue(outfit.AccessoryIDs...)
	}

	page, err := RetryWithBackoff(ctx, DefaultRetry, func(ctx context.Context) (*notionapi.Page, error) {
		return ns.client.Page.Create(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(ns.databases.MyOutfits),
			},
			Properties: properties,
		})
	})
	if err != nil {
		return "", fmt.Errorf("creating outfit page %q: %v", outfit.Name, err)
	}
	return string(page.ID), nil
}

// ItemsJSON serializes the ID-only slot mapping for the Items_JSON field.
func ItemsJSON(payload models.ItemsPayload) string {
	data, _ := json.Marshal(payload)
	return string(data)
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stylistapi/models"

	"google.golang.org/genai"
)

// LLMModelName picks the Gemini model for one generation tier.
type LLMModelName int32

const (
	Pro25 LLMModelName = iota
	Flash25
	FlashLite25
	Flash20
)

func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite-preview-06-17"
	case Flash20:
		return "gemini-2.0-flash"
	default:
		return "gemini-2.0-flash"
	}
}

func floatPointer(f float32) *float32 {
	return &f
}

// GenerationError means every model tier exhausted its retry budget.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("outfit generation failed on all model tiers: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// LLMStylist turns a rendered prompt into a validated structured response.
type LLMStylist interface {
	GenerateOutfits(ctx context.Context, prompt string) (*models.StylistResponse, error)
}

// GoogleLLMStylist calls Gemini with an ordered ladder of model tiers: the
// fast model first, the stable one when the fast tier exhausts its retries.
type GoogleLLMStylist struct {
	apiKey string
	tiers  []LLMModelName
	retry  RetryOptions

	// call performs one raw model invocation. Swappable so the fallback and
	// parsing logic is testable without network.
	call func(ctx context.Context, model string, prompt string) (string, error)
}

func NewGoogleLLMStylist(apiKey string) *GoogleLLMStylist {
	stylist := &GoogleLLMStylist{
		apiKey: apiKey,
		tiers:  []LLMModelName{Flash25, Pro25},
		retry:  ModelRetry,
	}
	stylist.call = stylist.callGemini
	return stylist
}

func (g *GoogleLLMStylist) GenerateOutfits(ctx context.Context, prompt string) (*models.StylistResponse, error) {
	var lastErr error
	for i, tier := range g.tiers {
		model := tier.String()
		response, err := RetryWithBackoff(ctx, g.retry, func(ctx context.Context) (*models.StylistResponse, error) {
			raw, err := g.call(ctx, model, prompt)
			if err != nil {
				return nil, err
			}
			return parseStylistResponse(raw)
		})
		if err == nil {
			return response, nil
		}
		lastErr = err
		if i < len(g.tiers)-1 {
			fmt.Printf("Model %s exhausted retries, falling back: %v\n", model, err)
		} else {
			fmt.Printf("Model %s exhausted retries, no tiers left: %v\n", model, err)
		}
	}
	return nil, &GenerationError{Err: lastErr}
}

// parseStylistResponse strips an optional markdown fence, parses the JSON
// payload and runs the structural check. Any failure here counts against the
// current attempt's retry budget rather than aborting the tier.
func parseStylistResponse(raw string) (*models.StylistResponse, error) {
	cleaned := stripResponseFence(raw)
	var response models.StylistResponse
	if err := json.Unmarshal([]byte(cleaned), &response); err != nil {
		return nil, fmt.Errorf("invalid JSON in model response: %v", err)
	}
	if err := ValidateStylistResponse(&response); err != nil {
		return nil, fmt.Errorf("model response failed schema check: %v", err)
	}
	return &response, nil
}

// stripResponseFence removes a wrapping markdown code block. Only whole fence
// lines are dropped, the payload between them is untouched.
func stripResponseFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (g *GoogleLLMStylist) callGemini(ctx context.Context, model string, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("creating genai client: %v", err)
	}

	result, err := client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			CandidateCount:  1,
			MaxOutputTokens: 50000,
			Temperature:     floatPointer(1),
		})
	if err != nil {
		return "", err
	}
	if result.PromptFeedback != nil {
		return "", fmt.Errorf("content violation: %s", result.PromptFeedback.BlockReasonMessage)
	}
	if result.UsageMetadata != nil {
		fmt.Printf("[%s] IT: %d, OT: %d, TOT: %d\n", model,
			result.UsageMetadata.PromptTokenCount,
			result.UsageMetadata.CandidatesTokenCount,
			result.UsageMetadata.TotalTokenCount)
	}
	return result.Text(), nil
}

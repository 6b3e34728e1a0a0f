package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validStylistJSON = `{
	"outfits": [
		{
			"name": "Seaside Evening",
			"items": {
				"top": null,
				"bottom": null,
				"dress": "item-dress",
				"outerwear": null,
				"shoes": "item-shoes",
				"accessories": ["item-bag"]
			},
			"why_it_works": "Floaty silhouette for a beach ceremony."
		}
	]
}`

func testStylist(call func(ctx context.Context, model string, prompt string) (string, error)) *GoogleLLMStylist {
	stylist := NewGoogleLLMStylist("fake-key")
	stylist.retry = RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond}
	stylist.call = call
	return stylist
}

func TestStripResponseFence(t *testing.T) {
	fenced := "```json\n{\"outfits\": []}\n```"
	assert.Equal(t, `{"outfits": []}`, stripResponseFence(fenced))

	bare := "```\n{\"outfits\": []}\n```"
	assert.Equal(t, `{"outfits": []}`, stripResponseFence(bare))

	plain := `{"outfits": []}`
	assert.Equal(t, plain, stripResponseFence(plain))

	noClosing := "```json\n{\"outfits\": []}"
	assert.Equal(t, `{"outfits": []}`, stripResponseFence(noClosing))
}

func TestGenerateOutfitsParsesFencedResponse(t *testing.T) {
	stylist := testStylist(func(ctx context.Context, model string, prompt string) (string, error) {
		return "```json\n" + validStylistJSON + "\n```", nil
	})
	response, err := stylist.GenerateOutfits(context.Background(), "prompt")
	require.NoError(t, err)
	require.Len(t, response.Outfits, 1)
	assert.Equal(t, "Seaside Evening", response.Outfits[0].Name)
	assert.Equal(t, "item-shoes", response.Outfits[0].Items.Shoes)
}

func TestGenerateOutfitsFallsBackToNextTier(t *testing.T) {
	callsPerModel := map[string]int{}
	stylist := testStylist(func(ctx context.Context, model string, prompt string) (string, error) {
		callsPerModel[model]++
		if model == Flash25.String() {
			return "not json at all", nil
		}
		return validStylistJSON, nil
	})

	response, err := stylist.GenerateOutfits(context.Background(), "prompt")
	require.NoError(t, err)
	require.Len(t, response.Outfits, 1)
	// The fast tier burns its whole retry budget before the fallback runs once.
	assert.Equal(t, 3, callsPerModel[Flash25.String()])
	assert.Equal(t, 1, callsPerModel[Pro25.String()])
}

func TestGenerateOutfitsSchemaFailureCountsAgainstRetries(t *testing.T) {
	calls := 0
	stylist := testStylist(func(ctx context.Context, model string, prompt string) (string, error) {
		calls++
		// Valid JSON, invalid shape: outfits entries without shoes.
		return `{"outfits": [{"name": "Broken", "items": {"shoes": ""}, "why_it_works": "x"}]}`, nil
	})

	_, err := stylist.GenerateOutfits(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 6, calls)

	var generationErr *GenerationError
	require.True(t, errors.As(err, &generationErr))
	assert.Contains(t, generationErr.Error(), "all model tiers")
}

func TestGenerateOutfitsTransportErrorExhaustsAllTiers(t *testing.T) {
	calls := 0
	stylist := testStylist(func(ctx context.Context, model string, prompt string) (string, error) {
		calls++
		return "", fmt.Errorf("connection reset")
	})

	_, err := stylist.GenerateOutfits(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 6, calls)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	original := os.Stdout
	read, write, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = write
	defer func() { os.Stdout = original }()

	fn()

	require.NoError(t, write.Close())
	captured, err := io.ReadAll(read)
	require.NoError(t, err)
	return string(captured)
}

func TestGenerateOutfitsFallbackLoggedOnlyBetweenTiers(t *testing.T) {
	stylist := testStylist(func(ctx context.Context, model string, prompt string) (string, error) {
		return "", fmt.Errorf("connection reset")
	})

	output := captureStdout(t, func() {
		_, err := stylist.GenerateOutfits(context.Background(), "prompt")
		require.Error(t, err)
	})
	// Two tiers: one fallback line for the first, none after the last.
	assert.Equal(t, 1, strings.Count(output, "falling back"))
	assert.Contains(t, output, "no tiers left")

	stylist.tiers = []LLMModelName{Flash25}
	output = captureStdout(t, func() {
		_, err := stylist.GenerateOutfits(context.Background(), "prompt")
		require.Error(t, err)
	})
	assert.NotContains(t, output, "falling back")
}

func TestLLMModelNames(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", Flash25.String())
	assert.Equal(t, "gemini-2.5-pro", Pro25.String())
	assert.Equal(t, "gemini-2.0-flash", Flash20.String())
}

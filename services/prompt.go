package services

import (
	"fmt"
	"strings"

	"stylistapi/models"
)

// PromptContext is everything one generation attempt needs rendered into the
// stylist instruction.
type PromptContext struct {
	WardrobeItems   []models.WardrobeItem
	StyleInspo      []models.StyleInspo
	RecentFeedback  []models.WornFeedback
	RequestContext  string
	Constraints     *string
	NumberOfOptions int
}

// BuildStylistPrompt renders the full instruction text. Pure and
// deterministic: same context in, same string out. The model is told to copy
// item IDs verbatim, and the output contract is declared inline.
func BuildStylistPrompt(context PromptContext) string {
	var wardrobeLines []string
	for _, item := range context.WardrobeItems {
		var b strings.Builder
		fmt.Fprintf(&b, "- %s (ID: %s)\n", item.Name, item.ID)
		fmt.Fprintf(&b, "  Category: %s\n", item.Category)
		fmt.Fprintf(&b, "  Colors: %s\n", strings.Join(item.Colors, ", "))
		fmt.Fprintf(&b, "  Pattern: %s\n", item.Pattern)
		if item.Material != nil {
			fmt.Fprintf(&b, "  Material: %s\n", *item.Material)
		}
		fmt.Fprintf(&b, "  Season: %s\n", strings.Join(item.Season, ", "))
		fmt.Fprintf(&b, "  Formality: %s", item.Formality)
		if item.FitNotes != nil {
			fmt.Fprintf(&b, "\n  Fit Notes: %s", *item.FitNotes)
		}
		wardrobeLines = append(wardrobeLines, b.String())
	}

	var inspoLines []string
	for _, inspo := range context.StyleInspo {
		var b strings.Builder
		fmt.Fprintf(&b, "- %s\n", inspo.Name)
		fmt.Fprintf(&b, "  Vibe Tags: %s", strings.Join(inspo.VibeTags, ", "))
		if inspo.Why != nil {
			fmt.Fprintf(&b, "\n  Why: %s", *inspo.Why)
		}
		inspoLines = append(inspoLines, b.String())
	}

	// The placeholder matters: an empty feedback section changes how the
	// model weighs the rest of the prompt.
	feedbackSection := "No recent feedback available."
	if len(context.RecentFeedback) > 0 {
		var feedbackLines []string
		for _, fb := range context.RecentFeedback {
			var b strings.Builder
			fmt.Fprintf(&b, "- Rating: %s/5", fb.Rating)
			if fb.WhatWorked != nil {
				fmt.Fprintf(&b, "\n  What Worked: %s", *fb.WhatWorked)
			}
			if fb.WhatDidnt != nil {
				fmt.Fprintf(&b, "\n  What Didn't: %s", *fb.WhatDidnt)
			}
			if fb.Notes != nil {
				fmt.Fprintf(&b, "\n  Notes: %s", *fb.Notes)
			}
			feedbackLines = append(feedbackLines, b.String())
		}
		feedbackSection = strings.Join(feedbackLines, "\n\n")
	}

	constraintsSection := ""
	if context.Constraints != nil {
		constraintsSection = fmt.Sprintf("CONSTRAINTS (must follow these):\n%s\n\n", *context.Constraints)
	}

	return fmt.Sprintf(`You are a personal stylist assistant helping create outfit combinations from a wardrobe.

WARDROBE ITEMS (use ONLY these items - IDs must match exactly):
%s

STYLE INSPIRATION:
%s

RECENT FEEDBACK (learn from this):
%s

REQUEST CONTEXT:
%s

%sTASK:
Generate exactly %d outfit combinations using ONLY the wardrobe items listed above. Each outfit must:
1. Include required components: either (top + bottom) OR dress, plus shoes
2. Optionally include outerwear if weather/context suggests it
3. Optionally include accessories (bag, jewelry, etc.)
4. Use item IDs exactly as shown in the wardrobe list
5. Respect all constraints and context provided
6. Consider recent feedback to improve suggestions

OUTPUT FORMAT:
You MUST respond with ONLY valid JSON (no markdown, no explanation, no code blocks). The JSON must match this exact schema:

{
  "outfits": [
    {
      "name": "Outfit name (e.g., 'Casual Summer Brunch')",
      "items": {
        "top": "item-id-here or null",
        "bottom": "item-id-here or null",
        "dress": "item-id-here or null",
        "outerwear": "item-id-here or null",
        "shoes": "item-id-here",
        "accessories": ["item-id-1", "item-id-2"]
      },
      "why_it_works": "Brief explanation of color harmony, silhouette, formality match, etc.",
      "variants": [
        {
          "swap_out": "item-id",
          "swap_in": "item-id",
          "reason": "Why this swap works"
        }
      ]
    }
  ]
}

IMPORTANT:
- Return ONLY the JSON object, no markdown formatting, no code blocks
- All item IDs must exist in the wardrobe list above
- Each outfit must have either (top+bottom) OR dress, never both
- Shoes are required for every outfit
- Be creative but practical - consider the context and constraints`,
		strings.Join(wardrobeLines, "\n\n"),
		strings.Join(inspoLines, "\n\n"),
		feedbackSection,
		context.RequestContext,
		constraintsSection,
		context.NumberOfOptions,
	)
}

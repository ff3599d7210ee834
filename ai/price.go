package ai

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/devaforgestudios-afk/takneek/apperrors"
)

const pricePrompt = "\n\nSee the image and details, and suggest a fair price for the ornament " +
	"based on recent Indian market trends, satisfying both the maker and supplier. " +
	"Don't ask any follow up questions, and reply with just the price, nothing else. " +
	"The price should be in INR and a single value rather than a range. " +
	"The price should match city trends; no price should be less than 1000 INR and can go up to tens of thousands."

// SuggestPrice asks Gemini for a fair INR price from the artwork image and
// details text. The reply is raw model text; use ParsePrice to turn it into a
// number, since the model may ignore the format instructions.
func (c *Client) SuggestPrice(ctx context.Context, imagePath, details string) (string, error) {
	img, err := os.ReadFile(imagePath)
	if err != nil {
		return "", apperrors.Upstream(err, "failed to read artwork image")
	}
	return c.generate(ctx,
		genai.Text(details),
		genai.ImageData(imageFormat(imagePath), img),
		genai.Text(pricePrompt),
	)
}

// Details renders the structured artwork fields into the free-text block the
// price and description prompts expect.
func Details(title, category, material, description string) string {
	return fmt.Sprintf("Title: %s\nCategory: %s\nMaterial: %s\nDescription: %s", title, category, material, description)
}

var priceNumber = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// ParsePrice extracts a numeric price from model output. Currency symbols,
// commas, and surrounding prose are tolerated; output with no number at all is
// an error so callers can fall back to a NULL price.
func ParsePrice(text string) (float64, error) {
	match := priceNumber.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no numeric price in %q", strings.TrimSpace(text))
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", match, err)
	}
	return value, nil
}

package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"

	"github.com/devaforgestudios-afk/takneek/apperrors"
)

const describePrompt = `Write a compelling and brief description (under 80 words) for the following artwork.
Focus on the visual elements, the craftsmanship, and the potential story behind the piece.
The description should entice potential buyers and art enthusiasts.
The description is for an e-commerce website made for traditional handicraft artisans and buyers, so write it accordingly.

Title: %s
Category: %s
Material: %s

Description:`

const enhancePrompt = `Enhance the following description for an artwork with the given details.
Make it more evocative and appealing to potential buyers.
Keep it concise and under 100 words.

Title: %s
Category: %s
Material: %s
Existing Description: %s

Enhanced Description:`

// GenerateDescription writes or improves an artwork description from its
// image and metadata. When existing text is supplied the model enhances it
// instead of starting fresh.
func (c *Client) GenerateDescription(ctx context.Context, imagePath, title, category, material, existing string) (string, error) {
	img, err := os.ReadFile(imagePath)
	if err != nil {
		return "", apperrors.Upstream(err, "failed to read artwork image")
	}

	var prompt string
	if existing != "" {
		prompt = fmt.Sprintf(enhancePrompt, title, category, material, existing)
	} else {
		prompt = fmt.Sprintf(describePrompt, title, category, material)
	}

	return c.generate(ctx,
		genai.Text(prompt),
		genai.ImageData(imageFormat(imagePath), img),
	)
}

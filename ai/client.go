// Package ai wraps the generative AI collaborators: Gemini for price
// suggestion, description writing, and moderation, and OpenAI for image
// background enhancement. Every caller must tolerate failure; nothing here is
// on a critical path.
package ai

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/config"
)

// Client holds the SDK handles. Either collaborator may be unconfigured, in
// which case its operations fail with an upstream error instead of panicking.
type Client struct {
	gemini      *genai.Client
	geminiModel string
	openai      *openai.Client
}

// NewClient builds the collaborator client from configuration. Missing API
// keys disable the corresponding collaborator.
func NewClient(ctx context.Context, cfg config.AppConfig) (*Client, error) {
	c := &Client{geminiModel: cfg.GeminiModel}

	if cfg.GeminiAPIKey != "" {
		gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, err
		}
		c.gemini = gc
	}
	if cfg.OpenAIAPIKey != "" {
		c.openai = openai.NewClient(cfg.OpenAIAPIKey)
	}
	return c, nil
}

// Close releases SDK resources.
func (c *Client) Close() error {
	if c != nil && c.gemini != nil {
		return c.gemini.Close()
	}
	return nil
}

// generate runs a Gemini prompt, optionally with inline image data, and
// returns the concatenated text of the first candidate.
func (c *Client) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	if c == nil || c.gemini == nil {
		return "", apperrors.Upstream(nil, "gemini is not configured")
	}
	model := c.gemini.GenerativeModel(c.geminiModel)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", apperrors.Upstream(err, "gemini request failed")
	}
	text := responseText(resp)
	if text == "" {
		return "", apperrors.Upstream(nil, "gemini returned no text")
	}
	return text, nil
}

// responseText flattens the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}

// imageFormat maps a file extension to the inline-data format Gemini expects.
func imageFormat(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "png":
		return "png"
	case "gif":
		return "gif"
	case "webp":
		return "webp"
	default:
		return "jpeg"
	}
}

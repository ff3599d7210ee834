package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// Verdict is the moderation outcome. Anything except an explicit good verdict
// is treated as bad, including collaborator failures (fail closed).
type Verdict string

const (
	VerdictGood Verdict = "good"
	VerdictBad  Verdict = "bad"
)

const contactModerationPrompt = `Analyze the following contact form submission and determine if it is a random message, spam, or contains any inappropriate language. Respond with ONLY 'good' if the message is acceptable and 'bad' if it is not.

Name: %s
Subject: %s
Message: %s`

const reviewModerationPrompt = `Analyze the following review and determine if it contains any inappropriate language, spam, or is otherwise a low-quality review. Respond with 'good' if the review is acceptable and 'bad' if it is not. Review: '%s'`

// ModerateContact classifies a contact-form submission.
func (c *Client) ModerateContact(ctx context.Context, name, subject, message string) Verdict {
	prompt := fmt.Sprintf(contactModerationPrompt, name, subject, message)
	text, err := c.generate(ctx, genai.Text(prompt))
	if err != nil {
		return VerdictBad
	}
	return NormalizeVerdict(text)
}

// ModerateReview classifies a product feedback entry.
func (c *Client) ModerateReview(ctx context.Context, review string) Verdict {
	prompt := fmt.Sprintf(reviewModerationPrompt, review)
	text, err := c.generate(ctx, genai.Text(prompt))
	if err != nil {
		return VerdictBad
	}
	return NormalizeVerdict(text)
}

// NormalizeVerdict maps free-form model output onto a Verdict. Only a reply
// containing "good" passes; everything else fails closed.
func NormalizeVerdict(text string) Verdict {
	if strings.Contains(strings.ToLower(text), string(VerdictGood)) {
		return VerdictGood
	}
	return VerdictBad
}

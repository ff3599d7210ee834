package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVerdict(t *testing.T) {
	assert.Equal(t, VerdictGood, NormalizeVerdict("good"))
	assert.Equal(t, VerdictGood, NormalizeVerdict("Good"))
	assert.Equal(t, VerdictGood, NormalizeVerdict("The message is GOOD."))
	assert.Equal(t, VerdictBad, NormalizeVerdict("bad"))
	assert.Equal(t, VerdictBad, NormalizeVerdict("this is spam"))
	assert.Equal(t, VerdictBad, NormalizeVerdict(""))
}

func TestModerationFailsClosed(t *testing.T) {
	// No API key configured, so the collaborator is absent and every
	// classification must come back bad rather than letting content through.
	c := &Client{}
	assert.Equal(t, VerdictBad, c.ModerateReview(context.Background(), "lovely work"))
	assert.Equal(t, VerdictBad, c.ModerateContact(context.Background(), "a", "b", "c"))
}

package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"bare number", "1500", 1500},
		{"rupee symbol", "₹1,500", 1500},
		{"prose around the number", "A fair price would be 2,499 INR.", 2499},
		{"decimal", "1250.50", 1250.50},
		{"first number wins", "between 1,000 and 3,000", 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePrice(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("no number is an error", func(t *testing.T) {
		_, err := ParsePrice("I cannot price this item")
		assert.Error(t, err)

		_, err = ParsePrice("")
		assert.Error(t, err)
	})
}

func TestDetails(t *testing.T) {
	got := Details("Brass Diya", "metalwork", "brass", "festival lamp")
	assert.Equal(t, "Title: Brass Diya\nCategory: metalwork\nMaterial: brass\nDescription: festival lamp", got)
}

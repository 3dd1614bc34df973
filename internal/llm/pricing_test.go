package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  *ModelCost
	}{
		{"gemini-2.5-flash", &ModelCost{0.3, 2.5}},
		{"gemini-2.5-flash-lite", &ModelCost{0.1, 0.4}},
		{"gemini-2.5-flash-lite-preview-09-2025", &ModelCost{0.1, 0.4}},
		{"gemini-2.5-flash-preview-09-2025", &ModelCost{0.3, 2.5}},
		{"claude-sonnet-4-5-20250929", &ModelCost{3, 15}},
		{"claude-sonnet-4-20250514", &ModelCost{3, 15}},
		{"google/gemini-2.5-pro", &ModelCost{1.25, 10}},
		{"openai/gpt-4o-mini", &ModelCost{0.15, 0.6}},
		{"GPT-4o", &ModelCost{2.5, 10}},
		{"gpt-4o-2024-08-06", &ModelCost{2.5, 10}},
		{"mock", nil},
		{"", nil},
		{"meta-llama/llama-3-8b:free", nil},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupCost(tt.model))
		})
	}
}

func TestEstimateCost(t *testing.T) {
	usd, ok := EstimateCost("gemini-2.5-flash", Usage{InputTokens: 2_000_000, OutputTokens: 1_000_000})
	require.True(t, ok)
	assert.InDelta(t, 3.1, usd, 1e-9)

	usd, ok = EstimateCost("mock", Usage{InputTokens: 10})
	assert.False(t, ok)
	assert.Zero(t, usd)
}

package llm

import (
	"sort"
	"strings"
)

// ModelCost is the list price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns the pricing for modelID, or nil when the model is not
// in the table. OpenRouter style ids ("google/gemini-2.5-flash") and dated
// snapshots ("claude-sonnet-4-5-20250929") resolve to their family entry.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(strings.TrimSpace(modelID))
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	id = strings.TrimSuffix(id, ":free")
	if id == "" {
		return nil
	}

	if c, ok := modelCosts[id]; ok {
		return &c
	}
	for _, prefix := range costPrefixes {
		if strings.HasPrefix(id, prefix+"-") {
			c := modelCosts[prefix]
			return &c
		}
	}
	return nil
}

// EstimateCost prices a single response. ok is false for unknown models.
func EstimateCost(modelID string, u Usage) (usd float64, ok bool) {
	c := LookupCost(modelID)
	if c == nil {
		return 0, false
	}
	return c.Cost(u.InputTokens, u.OutputTokens), true
}

// costPrefixes holds the keys of modelCosts, longest first, so that
// "gemini-2.5-flash-lite-preview" matches flash-lite before flash.
var costPrefixes = func() []string {
	keys := make([]string, 0, len(modelCosts))
	for k := range modelCosts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// modelCosts lists standard (non-batch, short context) prices for the
// models a kit is usually generated with.
var modelCosts = map[string]ModelCost{
	// Google
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-3-flash":        {0.5, 3},
	"gemini-3-pro":          {2, 12},

	// Anthropic
	"claude-3-5-haiku":  {0.8, 4},
	"claude-3-7-sonnet": {3, 15},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4":     {15, 75},
	"claude-opus-4-1":   {15, 75},
	"claude-opus-4-5":   {5, 25},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"o3":           {2, 8},
	"o4-mini":      {1.1, 4.4},
}

package render

import (
	"bytes"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/interviewkit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plain renders s the way a non-terminal writer receives it.
func plain(t *testing.T, s string) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := lipgloss.Fprint(&buf, s)
	require.NoError(t, err)
	return buf.String()
}

func testEvent(id int, model string, ok bool) store.LLMRequestEvent {
	return store.LLMRequestEvent{
		ID:        id,
		Sequence:  int64(id),
		Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider:     model,
			Model:        model,
			Purpose:      "interview-kit",
			InputTokens:  1200,
			OutputTokens: 5400,
			LatencyMs:    8300,
			Success:      ok,
		},
	}
}

func TestEventList(t *testing.T) {
	assert.Contains(t, plain(t, EventList(nil)), "No LLM events found.")

	out := plain(t, EventList([]store.LLMRequestEvent{
		testEvent(2, "gemini-2.5-flash", true),
		testEvent(1, "a-very-long-model-identifier-from-some-router", false),
	}))
	assert.Contains(t, out, "Purpose")
	assert.Contains(t, out, "gemini-2.5-flash")
	assert.Contains(t, out, "interview-kit")
	assert.Contains(t, out, "5400")
	assert.Contains(t, out, "8300")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
	assert.Contains(t, out, "a-very-long-model-identifier-fr…")
}

func TestEventDetail(t *testing.T) {
	e := testEvent(7, "gemini-2.5-flash", false)
	e.ErrorMessage = "rate limited"
	e.RequestBody = "[user]\nGenerate questions.\n"

	out := plain(t, EventDetail(&e))
	assert.Contains(t, out, "gemini-2.5-flash")
	assert.Contains(t, out, "1200 in / 5400 out")
	assert.Contains(t, out, "8300ms")
	assert.Contains(t, out, "rate limited")
	assert.Contains(t, out, "Cost")
	assert.Contains(t, out, "[user]\nGenerate questions.")
	assert.Contains(t, out, "RESPONSE")
	assert.Contains(t, out, "(not captured)")

	e.Model = "mock"
	assert.NotContains(t, plain(t, EventDetail(&e)), "Cost")
}

func TestUsageReport(t *testing.T) {
	assert.Contains(t, plain(t, UsageReport(nil, nil)), "No LLM usage recorded yet.")

	purposes := []store.PurposeUsage{
		{Purpose: "interview-kit", Calls: 3, InputTokens: 3000, OutputTokens: 15000, AvgLatencyMs: 9000},
	}
	models := []store.ModelUsage{
		{Model: "gemini-2.5-flash", Calls: 2, InputTokens: 1_000_000, OutputTokens: 1_000_000},
	}

	out := plain(t, UsageReport(purposes, models))
	assert.Contains(t, out, "Usage by purpose")
	assert.Contains(t, out, "18000")
	assert.Contains(t, out, "$2.80")
	assert.Contains(t, out, "TOTAL")
	assert.NotContains(t, out, "partial")

	models = append(models, store.ModelUsage{Model: "mock", Calls: 1})
	out = plain(t, UsageReport(purposes, models))
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: mock")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.25", formatCost(1.25))
}

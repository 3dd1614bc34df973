package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/abhisek/interviewkit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvents(t *testing.T, path string, n int) {
	t.Helper()
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	for i := range n {
		err := s.EventRepo().AppendLLMRequest(context.Background(), store.LLMRequestEventData{
			Provider:     "gemini-2.5-flash",
			Model:        "gemini-2.5-flash",
			Purpose:      "interview-kit",
			InputTokens:  1000 + i,
			OutputTokens: 5000,
			LatencyMs:    9000,
			Success:      true,
			RequestBody:  "[user]\nGenerate questions.",
			ResponseBody: `{"questions":[]}`,
		})
		require.NoError(t, err)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLLMCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "events.db")
	seedEvents(t, db, 3)

	out, err := runCLI(t, "--db", db, "llm", "list", "--limit", "2", "--after", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "gemini-2.5-flash")
	assert.Contains(t, out, "1002")
	assert.NotContains(t, out, "1000")

	out, err = runCLI(t, "--db", db, "llm", "view", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Generate questions.")
	assert.Contains(t, out, `{"questions":[]}`)

	_, err = runCLI(t, "--db", db, "llm", "view", "99")
	assert.ErrorContains(t, err, "event 99 not found")

	_, err = runCLI(t, "--db", db, "llm", "view", "abc")
	assert.ErrorContains(t, err, "invalid ID")

	out, err = runCLI(t, "--db", db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "interview-kit")
	assert.Contains(t, out, "Estimated cost")

	out, err = runCLI(t, "--db", db, "llm", "prune", "--keep", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 events")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "interviewkit")
}

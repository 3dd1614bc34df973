package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/interviewkit/internal/interviewkit"
	"github.com/abhisek/interviewkit/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullSettings = `
llm:
  provider: openai
  model: gpt-4o
  timeout: 90s
generation:
  temperature: 0.4
  top_p: 0.9
  max_tokens: 12000
  question_count: 20
  count_policy: truncate
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullSettings), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", s.LLM.Provider)
	assert.Equal(t, "gpt-4o", s.LLM.Model)

	gen := interviewkit.DefaultConfig()
	require.NoError(t, s.ApplyGeneration(&gen))
	assert.Equal(t, interviewkit.Config{
		MaxTokens:     12000,
		Temperature:   0.4,
		TopP:          0.9,
		QuestionCount: 20,
		CountPolicy:   interviewkit.CountTruncate,
	}, gen)

	cfg := llm.DefaultConfig()
	require.NoError(t, s.ApplyLLM(&cfg))
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "gemini-flash", cfg.Gemini.Model)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)

	gen := interviewkit.DefaultConfig()
	require.NoError(t, s.ApplyGeneration(&gen))
	assert.Equal(t, interviewkit.DefaultConfig(), gen)

	cfg := llm.DefaultConfig()
	require.NoError(t, s.ApplyLLM(&cfg))
	assert.Equal(t, llm.DefaultConfig(), cfg)
}

func TestParse_ExplicitZeroTemperature(t *testing.T) {
	s, err := Parse([]byte("generation:\n  temperature: 0\n"))
	require.NoError(t, err)

	gen := interviewkit.DefaultConfig()
	require.NoError(t, s.ApplyGeneration(&gen))
	assert.Equal(t, 0.0, gen.Temperature)
	assert.Equal(t, 0.96, gen.TopP)
}

func TestParse_ModelFollowsCurrentProvider(t *testing.T) {
	s, err := Parse([]byte("llm:\n  model: gemini-pro\n"))
	require.NoError(t, err)

	cfg := llm.DefaultConfig()
	require.NoError(t, s.ApplyLLM(&cfg))
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "llm: [provider"},
		{"unknown key", "generation:\n  temprature: 0.5\n"},
		{"unknown provider", "llm:\n  provider: bard\n"},
		{"bad timeout", "llm:\n  timeout: soon\n"},
		{"negative timeout", "llm:\n  timeout: -1s\n"},
		{"temperature out of range", "generation:\n  temperature: 1.5\n"},
		{"top p out of range", "generation:\n  top_p: 2\n"},
		{"zero questions", "generation:\n  question_count: 0\n"},
		{"bad policy", "generation:\n  count_policy: pad\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

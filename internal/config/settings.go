// Package config loads the optional YAML settings file that tunes kit
// generation and provider selection.
//
// Example:
//
//	llm:
//	  provider: openai
//	  model: gpt-4o
//	  timeout: 90s
//	generation:
//	  temperature: 0.61
//	  top_p: 0.96
//	  max_tokens: 8192
//	  question_count: 30
//	  count_policy: strict
//
// Every key is optional. Unset keys keep the environment or built-in
// defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abhisek/interviewkit/internal/interviewkit"
	"github.com/abhisek/interviewkit/internal/llm"
	"gopkg.in/yaml.v3"
)

// Settings is the parsed settings file.
type Settings struct {
	LLM        LLMSettings        `yaml:"llm"`
	Generation GenerationSettings `yaml:"generation"`
}

// LLMSettings selects the provider and model.
type LLMSettings struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// GenerationSettings overrides interviewkit.Config. Pointers distinguish
// unset keys from explicit zeros.
type GenerationSettings struct {
	Temperature   *float64 `yaml:"temperature"`
	TopP          *float64 `yaml:"top_p"`
	MaxTokens     *int     `yaml:"max_tokens"`
	QuestionCount *int     `yaml:"question_count"`
	CountPolicy   string   `yaml:"count_policy"`
}

var knownProviders = map[string]bool{
	"anthropic":  true,
	"openai":     true,
	"gemini":     true,
	"openrouter": true,
	"mock":       true,
}

// Load reads and validates a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates settings YAML. Unknown keys are rejected so
// typos do not go unnoticed.
func Parse(data []byte) (*Settings, error) {
	var s Settings

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if s.LLM.Provider != "" && !knownProviders[s.LLM.Provider] {
		return fmt.Errorf("unknown llm.provider %q", s.LLM.Provider)
	}
	if s.LLM.Timeout != "" {
		d, err := time.ParseDuration(s.LLM.Timeout)
		if err != nil {
			return fmt.Errorf("llm.timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("llm.timeout must not be negative")
		}
	}

	// Range checks live on interviewkit.Config.
	cfg := interviewkit.DefaultConfig()
	if err := s.ApplyGeneration(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	return nil
}

// ApplyGeneration overlays the generation settings onto cfg.
func (s *Settings) ApplyGeneration(cfg *interviewkit.Config) error {
	g := s.Generation
	if g.Temperature != nil {
		cfg.Temperature = *g.Temperature
	}
	if g.TopP != nil {
		cfg.TopP = *g.TopP
	}
	if g.MaxTokens != nil {
		cfg.MaxTokens = *g.MaxTokens
	}
	if g.QuestionCount != nil {
		cfg.QuestionCount = *g.QuestionCount
	}
	if g.CountPolicy != "" {
		policy, err := interviewkit.ParseCountPolicy(g.CountPolicy)
		if err != nil {
			return fmt.Errorf("generation.count_policy: %w", err)
		}
		cfg.CountPolicy = policy
	}
	return nil
}

// ApplyLLM overlays provider, model and timeout onto cfg. The model is
// set on whichever provider ends up selected.
func (s *Settings) ApplyLLM(cfg *llm.Config) error {
	if s.LLM.Provider != "" {
		cfg.Provider = s.LLM.Provider
	}
	if s.LLM.Timeout != "" {
		d, err := time.ParseDuration(s.LLM.Timeout)
		if err != nil {
			return fmt.Errorf("llm.timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if s.LLM.Model == "" {
		return nil
	}

	switch cfg.Provider {
	case "anthropic":
		cfg.Anthropic.Model = s.LLM.Model
	case "openai":
		cfg.OpenAI.Model = s.LLM.Model
	case "gemini":
		cfg.Gemini.Model = s.LLM.Model
	case "openrouter":
		cfg.OpenRouter.Model = s.LLM.Model
	}
	return nil
}

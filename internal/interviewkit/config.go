package interviewkit

import "fmt"

// DefaultQuestionCount is the number of questions a kit asks for.
const DefaultQuestionCount = 30

// CountPolicy decides what happens when the model returns a different
// number of questions than requested.
type CountPolicy string

const (
	// CountTrust returns whatever the model produced.
	CountTrust CountPolicy = "trust"

	// CountStrict fails with *CountError on any mismatch.
	CountStrict CountPolicy = "strict"

	// CountTruncate drops questions beyond the requested count. Short
	// kits are returned as is; nothing is padded.
	CountTruncate CountPolicy = "truncate"
)

// ParseCountPolicy converts a policy name. Empty means CountTrust.
func ParseCountPolicy(s string) (CountPolicy, error) {
	switch CountPolicy(s) {
	case "", CountTrust:
		return CountTrust, nil
	case CountStrict, CountTruncate:
		return CountPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown count policy %q (want trust, strict or truncate)", s)
	}
}

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the LLM response. Thirty answers
	// with code blocks need a lot of room.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// TopP is the nucleus sampling threshold (0.0-1.0).
	TopP float64

	// QuestionCount is the number of questions requested in the prompt.
	QuestionCount int

	// CountPolicy applies when the model misses QuestionCount.
	CountPolicy CountPolicy
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     8192,
		Temperature:   0.61,
		TopP:          0.96,
		QuestionCount: DefaultQuestionCount,
		CountPolicy:   CountTrust,
	}
}

// Validate checks that the config values are in range.
func (c Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1, got %v", c.Temperature)
	}
	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("top_p must be between 0 and 1, got %v", c.TopP)
	}
	if c.QuestionCount <= 0 {
		return fmt.Errorf("question count must be positive, got %d", c.QuestionCount)
	}
	if _, err := ParseCountPolicy(string(c.CountPolicy)); err != nil {
		return err
	}
	return nil
}

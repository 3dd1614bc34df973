package interviewkit

import "github.com/abhisek/interviewkit/internal/llm"

// nonBlank matches strings with at least one non-whitespace character.
const nonBlank = `\S`

// InputSchema describes a valid Input.
var InputSchema = &llm.Schema{
	Name:        "interview-kit-input",
	Description: "Job description and candidate context for an interview kit",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"jobDescription": map[string]any{
				"type":      "string",
				"minLength": 1,
				"pattern":   nonBlank,
			},
			"unstopProfileLink": map[string]any{
				"type":      "string",
				"minLength": 1,
				"pattern":   nonBlank,
			},
			"candidateResumeDataUri": map[string]any{
				"type":    "string",
				"pattern": "^data:",
			},
			"candidateResumeFileName": map[string]any{
				"type": "string",
			},
			"candidateExperienceContext": map[string]any{
				"type": "string",
			},
		},
		"required":             []any{"jobDescription", "unstopProfileLink"},
		"additionalProperties": false,
	},
}

// OutputSchema defines the JSON the model must return. Item ids are
// assigned after generation and are not part of it.
//
// Responses are checked against the looser outputShape: a missing
// questions field becomes ErrEmptyGeneration and missing item text gets a
// placeholder, so neither may fail at the provider.
var OutputSchema = &llm.Schema{
	Name:        "interview-kit",
	Description: "Technical interview questions with model answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The interview questions in the order they should be asked",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "A technical question derived from the job description",
						},
						"modelAnswer": map[string]any{
							"type":        "string",
							"description": "The expected answer as a markdown bullet list. Any code or query goes first in a fenced block.",
						},
					},
					"required":             []any{"question", "modelAnswer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
	Response: outputShape,
}

// outputShape accepts anything the generator can turn into a kit or into
// ErrEmptyGeneration.
var outputShape = map[string]any{
	"type": []any{"object", "null"},
	"properties": map[string]any{
		"questions": map[string]any{
			"type": []any{"array", "null"},
			"items": map[string]any{
				"type": []any{"object", "null"},
				"properties": map[string]any{
					"question":    map[string]any{"type": []any{"string", "null"}},
					"modelAnswer": map[string]any{"type": []any{"string", "null"}},
				},
			},
		},
	},
}

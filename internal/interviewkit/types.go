// Package interviewkit generates technical interview question sets from a
// job description and candidate context.
package interviewkit

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/interviewkit/internal/llm"
)

// Input is the request for one interview kit.
type Input struct {
	// JobDescription is the full text of the role being hired for.
	JobDescription string `json:"jobDescription"`

	// UnstopProfileLink points at the candidate's public profile.
	UnstopProfileLink string `json:"unstopProfileLink"`

	// CandidateResumeDataURI is the resume as a data URI
	// (data:<mime>;base64,<payload>). Optional.
	CandidateResumeDataURI string `json:"candidateResumeDataUri,omitempty"`

	// CandidateResumeFileName is the original file name of the resume. Optional.
	CandidateResumeFileName string `json:"candidateResumeFileName,omitempty"`

	// CandidateExperienceContext is free text about the candidate's
	// background. Optional.
	CandidateExperienceContext string `json:"candidateExperienceContext,omitempty"`
}

// Validate checks the input against InputSchema. It returns *InputError.
func (in Input) Validate() error {
	raw, err := json.Marshal(in)
	if err != nil {
		return &InputError{Err: fmt.Errorf("encode input: %w", err)}
	}
	if err := llm.ValidateJSON(InputSchema, raw); err != nil {
		return &InputError{Err: err}
	}
	return nil
}

// Kit is a generated interview kit.
type Kit struct {
	Questions []QuestionAnswer `json:"questions" yaml:"questions"`
}

// QuestionAnswer is one finalized question with its model answer.
type QuestionAnswer struct {
	ID          string `json:"id" yaml:"id"`
	Question    string `json:"question" yaml:"question"`
	ModelAnswer string `json:"modelAnswer" yaml:"modelAnswer"`
}

// Placeholders used when the model leaves an item field empty.
const (
	MissingQuestion    = "Missing question text"
	MissingModelAnswer = "Missing model answer."
)

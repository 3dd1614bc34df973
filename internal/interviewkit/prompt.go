package interviewkit

import (
	"strings"
	"text/template"
)

const systemPrompt = `You are a senior technical interviewer preparing an interview kit for a hiring panel.

Rules:
- Produce exactly the requested number of question and answer pairs.
- Every question must be purely technical and derived from the skills, tools and responsibilities in the job description.
- Do not ask behavioral, situational or HR questions.
- Use the candidate's resume and experience context to pitch difficulty and pick relevant technologies, not to ask about their history.
- Write each model answer as a markdown bullet list of the points a strong candidate would cover.
- When an answer needs code or a query, put it first in a fenced code block with a language tag, then the bullets.`

// notProvided is rendered for optional fields left empty.
const notProvided = "Not provided"

var userTemplate = template.Must(template.New("interview-kit").Parse(`Job description:
{{.JobDescription}}

Candidate profile: {{.ProfileLink}}
Candidate resume: {{.Resume}}

Candidate experience context:
{{.ExperienceContext}}

Generate exactly {{.Count}} technical interview questions for this role, each with a model answer.`))

// promptData holds the already-resolved template values so the template
// itself stays free of conditionals.
type promptData struct {
	JobDescription    string
	ProfileLink       string
	Resume            string
	ExperienceContext string
	Count             int
}

// RenderPrompt returns the user message for in, asking for
// DefaultQuestionCount questions. It has no side effects.
func RenderPrompt(in Input) (string, error) {
	return renderPrompt(in, DefaultQuestionCount)
}

func renderPrompt(in Input, count int) (string, error) {
	data := promptData{
		JobDescription:    strings.TrimSpace(in.JobDescription),
		ProfileLink:       strings.TrimSpace(in.UnstopProfileLink),
		Resume:            resumeLabel(in),
		ExperienceContext: orNotProvided(in.CandidateExperienceContext),
		Count:             count,
	}

	var b strings.Builder
	if err := userTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func resumeLabel(in Input) string {
	if strings.TrimSpace(in.CandidateResumeDataURI) == "" {
		return notProvided
	}
	name := strings.TrimSpace(in.CandidateResumeFileName)
	if name == "" {
		return "attached"
	}
	return "attached (" + name + ")"
}

func orNotProvided(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notProvided
	}
	return s
}

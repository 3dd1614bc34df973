package interviewkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/interviewkit/internal/llm"
	"github.com/abhisek/interviewkit/internal/resume"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Purpose labels kit generation requests in the LLM event log.
const Purpose = "interview-kit"

// Generator produces interview kits using an LLM provider. It holds no
// per-call state and is safe for concurrent use.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a Generator. A nil logger disables logging.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{provider: provider, config: cfg, logger: logger}
}

// kitOutput is the raw LLM response before finalization.
type kitOutput struct {
	Questions []*itemOutput `json:"questions"`
}

type itemOutput struct {
	Question    string `json:"question"`
	ModelAnswer string `json:"modelAnswer"`
}

// Generate validates in, asks the model for a kit and finalizes it.
//
// Errors from the provider are returned as is. A response without a
// questions field yields ErrEmptyGeneration; content that is not a kit
// object yields *llm.ErrInvalidResponse.
func (g *Generator) Generate(ctx context.Context, in Input) (*Kit, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	req, err := g.buildRequest(in)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithGenerationID(llm.WithPurpose(ctx, Purpose), uuid.NewString())
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrEmptyGeneration
	}

	content := bytes.TrimSpace(resp.Content)
	if len(content) == 0 {
		return nil, ErrEmptyGeneration
	}

	var raw kitOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	if raw.Questions == nil {
		return nil, ErrEmptyGeneration
	}

	questions := g.finalize(raw.Questions)

	questions, err = g.applyCountPolicy(questions)
	if err != nil {
		return nil, err
	}

	return &Kit{Questions: questions}, nil
}

func (g *Generator) buildRequest(in Input) (llm.Request, error) {
	userMsg, err := renderPrompt(in, g.config.QuestionCount)
	if err != nil {
		return llm.Request{}, fmt.Errorf("render prompt: %w", err)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      OutputSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
		TopP:        g.config.TopP,
	}

	if in.CandidateResumeDataURI == "" {
		return req, nil
	}

	doc, err := resume.Decode(in.CandidateResumeDataURI, in.CandidateResumeFileName)
	if err != nil {
		return llm.Request{}, &InputError{Field: "candidateResumeDataUri", Err: err}
	}
	if doc.ExtractErr != nil {
		g.logger.Warn("resume text extraction failed, attaching raw document",
			zap.String("file", doc.FileName),
			zap.String("mime", doc.MIMEType),
			zap.Error(doc.ExtractErr),
		)
	}
	req.Attachments = append(req.Attachments, doc.Attachment())

	return req, nil
}

// finalize assigns ids and fills in missing text, keeping model order.
func (g *Generator) finalize(items []*itemOutput) []QuestionAnswer {
	out := make([]QuestionAnswer, 0, len(items))
	for i, item := range items {
		if item == nil {
			item = &itemOutput{}
		}

		qa := QuestionAnswer{
			ID:          uuid.NewString(),
			Question:    item.Question,
			ModelAnswer: item.ModelAnswer,
		}
		if strings.TrimSpace(qa.Question) == "" {
			g.logger.Debug("question text missing, using placeholder", zap.Int("index", i))
			qa.Question = MissingQuestion
		}
		if strings.TrimSpace(qa.ModelAnswer) == "" {
			g.logger.Debug("model answer missing, using placeholder", zap.Int("index", i))
			qa.ModelAnswer = MissingModelAnswer
		}
		out = append(out, qa)
	}
	return out
}

func (g *Generator) applyCountPolicy(questions []QuestionAnswer) ([]QuestionAnswer, error) {
	want := g.config.QuestionCount
	if want <= 0 || len(questions) == want {
		return questions, nil
	}

	switch g.config.CountPolicy {
	case CountStrict:
		return nil, &CountError{Want: want, Got: len(questions)}
	case CountTruncate:
		if len(questions) > want {
			g.logger.Info("truncating kit", zap.Int("produced", len(questions)), zap.Int("kept", want))
			return questions[:want], nil
		}
	}

	g.logger.Warn("model returned unexpected question count",
		zap.Int("want", want), zap.Int("got", len(questions)))
	return questions, nil
}

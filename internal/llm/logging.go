package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/interviewkit/internal/store"
	"go.uber.org/zap"
)

// LoggingProvider is a decorator that logs every LLM request and, when an
// event repo is configured, records it as an event.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	logger    *zap.Logger
}

// WithLogging wraps a Provider with request logging. repo may be nil, in
// which case only the structured log line is written. A nil logger is
// replaced with a no-op logger.
func WithLogging(p Provider, repo store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	fields := []zap.Field{
		zap.String("model", data.Model),
		zap.String("purpose", purpose),
		zap.Int64("latency_ms", latencyMs),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if id := GenerationIDFrom(ctx); id != "" {
		fields = append(fields, zap.String("generation_id", id))
	}
	if resp != nil {
		if usd, ok := EstimateCost(resp.Model, resp.Usage); ok {
			fields = append(fields, zap.Float64("cost_usd", usd))
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Info("llm request", fields...)
	}

	if l.eventRepo == nil {
		return resp, err
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		l.logger.Warn("failed to record llm request event", zap.Error(logErr))
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
// Attachment bytes are summarized, not copied.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	for _, a := range req.Attachments {
		b.WriteString(fmt.Sprintf("[attachment: %s, %s, %d bytes, %d chars of text]\n\n",
			a.Name, a.MIMEType, len(a.Data), len(a.Text)))
	}

	if req.Temperature > 0 || req.TopP > 0 {
		b.WriteString(fmt.Sprintf("[sampling: temperature=%.2f top_p=%.2f]\n\n", req.Temperature, req.TopP))
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}

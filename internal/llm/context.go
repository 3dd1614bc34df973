package llm

import "context"

type contextKey int

const (
	purposeKey contextKey = iota
	generationIDKey
)

// WithPurpose labels the requests made under ctx. The label ends up in log
// lines and recorded events and drives the usage breakdown.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label on ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// WithGenerationID tags ctx with the id of the operation issuing requests,
// so retries of one generation can be correlated in logs.
func WithGenerationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, generationIDKey, id)
}

// GenerationIDFrom returns the generation id on ctx, if any.
func GenerationIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(generationIDKey).(string)
	return v
}

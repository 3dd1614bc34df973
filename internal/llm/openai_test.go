package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	client := openai.NewClientWithConfig(config)

	return &OpenAIProvider{
		client: client,
		model:  "gpt-4o-mini",
	}
}

func openAIChatResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got openai.ChatCompletionRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openAIChatResponse(
			`{"questions":[{"question":"Explain Go channels","modelAnswer":"- typed conduits"}]}`))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:      "You are a technical interviewer.",
		Messages:    []Message{{Role: RoleUser, Content: "Generate questions."}},
		Attachments: []Attachment{{Name: "cv.txt", MIMEType: "text/plain", Text: "Built payment APIs in Go"}},
		MaxTokens:   256,
		Temperature: 0.61,
		TopP:        0.96,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 {
		t.Fatalf("expected 40 input tokens, got %d", resp.Usage.InputTokens)
	}
	if resp.Usage.OutputTokens != 25 {
		t.Fatalf("expected 25 output tokens, got %d", resp.Usage.OutputTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if got.TopP < 0.95 || got.TopP > 0.97 {
		t.Fatalf("expected top_p 0.96 on the wire, got %v", got.TopP)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(got.Messages))
	}
	if !strings.Contains(got.Messages[1].Content, "Built payment APIs in Go") {
		t.Fatalf("expected attachment text in user message, got %q", got.Messages[1].Content)
	}
}

func TestOpenAIProvider_StripsCodeFences(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openAIChatResponse("```json\n{\"questions\":[]}\n```"))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
		Schema:   testSchemaQuestions(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"questions":[]}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openAIChatResponse(`{"items":[]}`))
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
		Schema:   testSchemaQuestions(),
	})
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ModelID(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-4o-mini"}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("expected 'gpt-4o-mini', got %q", p.ModelID())
	}
}

func TestOpenAIProvider_BaseURLOverride(t *testing.T) {
	// Verify that the provider can be created with a custom BaseURL.
	cfg := OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://openrouter.ai/api/v1",
	}
	p, err := NewOpenAIProvider(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}

func TestOpenAIProvider_FinishReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(choice map[string]any)
		check  func(t *testing.T, err error)
	}{
		{
			name: "refusal",
			mutate: func(choice map[string]any) {
				choice["message"].(map[string]any)["refusal"] = "I can't help with that."
			},
			check: func(t *testing.T, err error) {
				var refused *ErrRefused
				if !errors.As(err, &refused) || refused.Reason != "I can't help with that." {
					t.Fatalf("expected ErrRefused with reason, got: %T (%v)", err, err)
				}
			},
		},
		{
			name: "content filter",
			mutate: func(choice map[string]any) {
				choice["finish_reason"] = "content_filter"
			},
			check: func(t *testing.T, err error) {
				var refused *ErrRefused
				if !errors.As(err, &refused) {
					t.Fatalf("expected ErrRefused, got: %T (%v)", err, err)
				}
			},
		},
		{
			name: "length",
			mutate: func(choice map[string]any) {
				choice["finish_reason"] = "length"
				choice["message"].(map[string]any)["content"] = `{"questions":[{"question":"Expl`
			},
			check: func(t *testing.T, err error) {
				var maxTok *ErrMaxTokensExceeded
				if !errors.As(err, &maxTok) {
					t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
				}
				if string(maxTok.Content) != `{"questions":[{"question":"Expl` {
					t.Errorf("unexpected partial content %q", maxTok.Content)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				resp := openAIChatResponse(`{"questions":[]}`)
				tt.mutate(resp["choices"].([]map[string]any)[0])
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(resp)
			})

			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				Schema:    testSchemaQuestions(),
				MaxTokens: 100,
			})
			tt.check(t, err)
		})
	}
}

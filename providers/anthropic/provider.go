// Package anthropic adapts the official Anthropic SDK to the chatoyant
// Provider interface.
//
// The SDK owns transport, authentication, and retry/backoff for this vendor;
// this adapter only maps between the canonical domain model and the Messages
// API. Streaming, tool calling, and image generation are not wired through
// this adapter and return a not-supported error.
package anthropic

import (
	"context"
	"errors"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Anonyfox/chatoyant"
)

const (
	// DefaultModel is used when no override is provided.
	DefaultModel = "claude-sonnet-4-5-20250929"

	// defaultMaxTokens is the default maximum output tokens per request;
	// the Messages API requires an explicit value.
	defaultMaxTokens = 4096

	// defaultMaxRetries is the number of automatic retries on transient errors
	// (429 rate-limit, 5xx server errors). The SDK handles exponential backoff.
	defaultMaxRetries = 3
)

type Provider struct {
	client anthropic.Client
	model  string
}

var _ chatoyant.Provider = (*Provider)(nil)

type Option func(*config)

type config struct {
	apiKey     string
	model      string
	maxRetries int
}

// WithAPIKey sets the API key. If not provided, the provider reads
// ANTHROPIC_API_KEY from the environment.
func WithAPIKey(key string) Option {
	return func(c *config) { c.apiKey = key }
}

// WithDefaultModel overrides the default model for all requests.
func WithDefaultModel(model string) Option {
	return func(c *config) { c.model = model }
}

// WithMaxRetries sets the maximum number of retries for transient errors.
func WithMaxRetries(n int) Option {
	return func(c *config) { c.maxRetries = n }
}

// New creates an Anthropic provider. It returns an error if no API key is
// available (neither via option nor environment).
func New(opts ...Option) (*Provider, error) {
	cfg := config{
		model:      DefaultModel,
		maxRetries: defaultMaxRetries,
	}
	for _, o := range opts {
		o(&cfg)
	}

	apiKey := cfg.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("anthropic: ANTHROPIC_API_KEY not set and no API key provided")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(cfg.maxRetries),
	)

	return &Provider{client: client, model: cfg.model}, nil
}

func (p *Provider) ProviderName() string { return "anthropic" }

func (p *Provider) Chat(ctx context.Context, req chatoyant.ChatRequest) (chatoyant.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return chatoyant.ChatResponse{}, &chatoyant.APIError{
			Provider: "anthropic",
			Kind:     chatoyant.ErrKindInvalidRequest,
			Message:  "messages is required",
		}
	}
	if len(req.Tools) > 0 {
		return chatoyant.ChatResponse{}, chatoyant.NotSupported("anthropic", "tool calling")
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	maxTokens := int64(defaultMaxTokens)
	if req.MaxTokens != nil && *req.MaxTokens > 0 {
		maxTokens = int64(*req.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
	}

	for _, m := range req.Messages {
		switch m.Role {
		case chatoyant.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Text()})
		case chatoyant.RoleUser:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text())))
		case chatoyant.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text())))
		default:
			return chatoyant.ChatResponse{}, &chatoyant.APIError{
				Provider: "anthropic",
				Kind:     chatoyant.ErrKindInvalidRequest,
				Message:  "unsupported message role: " + string(m.Role),
			}
		}
	}

	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}
	if req.TopP != nil {
		params.TopP = anthropic.Float(*req.TopP)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return chatoyant.ChatResponse{}, mapError(err)
	}

	out := chatoyant.ChatResponse{
		ID:    msg.ID,
		Model: string(msg.Model),
		Usage: &chatoyant.Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
			TotalTokens:      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}

	reply := chatoyant.Message{Role: chatoyant.RoleAssistant}
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			reply.Parts = append(reply.Parts, chatoyant.TextPart(variant.Text))
		}
	}

	out.Choices = []chatoyant.ChatChoice{{
		Index:        0,
		Message:      reply,
		FinishReason: mapStopReason(string(msg.StopReason)),
	}}
	return out, nil
}

func (p *Provider) ChatStream(ctx context.Context, req chatoyant.ChatRequest) (chatoyant.Stream, error) {
	return nil, chatoyant.NotSupported("anthropic", "streaming")
}

func mapStopReason(sr string) chatoyant.FinishReason {
	switch sr {
	case "end_turn", "stop_sequence":
		return chatoyant.FinishReasonStop
	case "max_tokens":
		return chatoyant.FinishReasonLength
	case "tool_use":
		return chatoyant.FinishReasonToolCalls
	case "":
		return ""
	default:
		return chatoyant.FinishReasonUnknown
	}
}

func mapError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return &chatoyant.APIError{
			Provider:   "anthropic",
			StatusCode: apierr.StatusCode,
			Kind:       chatoyant.ClassifyStatus(apierr.StatusCode),
			Message:    apierr.Error(),
			Cause:      err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &chatoyant.APIError{Provider: "anthropic", Kind: chatoyant.ErrKindCanceled, Message: "request canceled", Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &chatoyant.APIError{Provider: "anthropic", Kind: chatoyant.ErrKindTimeout, Message: "request deadline exceeded", Cause: err}
	}
	return &chatoyant.APIError{Provider: "anthropic", Kind: chatoyant.ErrKindServerError, Message: err.Error(), Cause: err}
}

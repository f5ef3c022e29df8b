// Package openai_compat implements the OpenAI wire protocol: chat completions
// (buffered and SSE-streamed), image generation, and model listing.
//
// Most hosted vendors advertise OpenAI compatibility; the thin preset packages
// (openai, deepseek, groq) configure this engine with vendor base URLs and
// names, and paper over wire differences through Hooks.
package openai_compat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Anonyfox/chatoyant"
	"github.com/Anonyfox/chatoyant/internal/transport"
)

type Provider struct {
	name string

	apiKey string
	model  string

	chatPath   string
	imagesPath string
	modelsPath string

	tr    *transport.Client
	hooks Hooks
}

var _ chatoyant.Provider = (*Provider)(nil)
var _ chatoyant.ImageGenerator = (*Provider)(nil)
var _ chatoyant.ModelLister = (*Provider)(nil)

func New(apiKey string, opts ...Option) (*Provider, error) {
	tr, err := transport.New("https://api.openai.com", nil)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		name:       "openai_compat",
		apiKey:     apiKey,
		chatPath:   "/v1/chat/completions",
		imagesPath: "/v1/images/generations",
		modelsPath: "/v1/models",
		tr:         tr,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if p.tr == nil {
		return nil, errors.New("openai_compat: nil transport")
	}
	if p.tr.Logger == nil {
		p.tr.Logger = slog.Default()
	}

	return p, nil
}

func WithProviderName(name string) Option {
	return func(p *Provider) error {
		p.name = name
		return nil
	}
}

func WithBaseURL(baseURL string) Option {
	return func(p *Provider) error {
		tr, err := transport.New(baseURL, p.tr.HTTPClient)
		if err != nil {
			return err
		}
		tr.DefaultHeaders = p.tr.DefaultHeaders.Clone()
		tr.UserAgent = p.tr.UserAgent
		tr.Logger = p.tr.Logger
		tr.Retry = p.tr.Retry
		p.tr = tr
		return nil
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) error {
		p.tr.HTTPClient = c
		return nil
	}
}

func WithUserAgent(ua string) Option {
	return func(p *Provider) error {
		p.tr.UserAgent = ua
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) error {
		if logger != nil {
			p.tr.Logger = logger
		}
		return nil
	}
}

func WithRetry(cfg transport.RetryConfig) Option {
	return func(p *Provider) error {
		p.tr.Retry = cfg
		return nil
	}
}

func WithDefaultHeader(key, value string) Option {
	return func(p *Provider) error {
		p.tr.DefaultHeaders.Add(key, value)
		return nil
	}
}

func WithChatCompletionsPath(path string) Option {
	return func(p *Provider) error {
		p.chatPath = path
		return nil
	}
}

func WithImageGenerationsPath(path string) Option {
	return func(p *Provider) error {
		p.imagesPath = path
		return nil
	}
}

func WithModelsPath(path string) Option {
	return func(p *Provider) error {
		p.modelsPath = path
		return nil
	}
}

func WithDefaultModel(model string) Option {
	return func(p *Provider) error {
		p.model = model
		return nil
	}
}

func (p *Provider) ProviderName() string { return p.name }

func (p *Provider) Chat(ctx context.Context, req chatoyant.ChatRequest) (chatoyant.ChatResponse, error) {
	if err := p.validateRequest(req); err != nil {
		return chatoyant.ChatResponse{}, err
	}

	wreq, err := p.mapRequest(req)
	if err != nil {
		return chatoyant.ChatResponse{}, err
	}
	hdr := p.defaultHeaders("application/json", req.Transport)

	_, raw, err := p.tr.DoJSON(ctx, http.MethodPost, p.chatPath, hdr, wreq)
	if err != nil {
		return chatoyant.ChatResponse{}, p.mapError(err, raw)
	}

	var wresp chatCompletionResponse
	if err := json.Unmarshal(raw, &wresp); err != nil {
		return chatoyant.ChatResponse{}, &chatoyant.APIError{
			Provider: p.name,
			Kind:     chatoyant.ErrKindParse,
			Message:  "failed to decode response",
			Raw:      raw,
			Cause:    err,
		}
	}

	out := p.mapResponse(wresp)
	out.RawJSON = append([]byte(nil), raw...)
	return out, nil
}

func (p *Provider) ChatStream(ctx context.Context, req chatoyant.ChatRequest) (chatoyant.Stream, error) {
	if err := p.validateRequest(req); err != nil {
		return nil, err
	}

	wreq, err := p.mapRequest(req)
	if err != nil {
		return nil, err
	}
	wreq["stream"] = true

	hdr := p.defaultHeaders("text/event-stream", req.Transport)
	resp, err := p.tr.DoStream(ctx, http.MethodPost, p.chatPath, hdr, wreq)
	if err != nil {
		var se *transport.HTTPStatusError
		if errors.As(err, &se) {
			return nil, p.mapError(err, se.Body)
		}
		return nil, p.mapError(err, nil)
	}

	return newStream(p.name, resp), nil
}

func (p *Provider) defaultHeaders(accept string, topts *chatoyant.TransportOptions) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	if accept != "" {
		h.Set("Accept", accept)
	}
	if p.apiKey != "" {
		h.Set("Authorization", "Bearer "+p.apiKey)
	}
	if p.hooks.PatchHeaders != nil {
		p.hooks.PatchHeaders(h)
	}
	if topts != nil {
		for k, vs := range topts.Headers {
			h[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
		}
	}
	return h
}

func (p *Provider) validateRequest(req chatoyant.ChatRequest) error {
	if req.Model == "" && p.model == "" {
		return &chatoyant.APIError{Provider: p.name, Kind: chatoyant.ErrKindInvalidRequest, Message: "model is required"}
	}
	if len(req.Messages) == 0 {
		return &chatoyant.APIError{Provider: p.name, Kind: chatoyant.ErrKindInvalidRequest, Message: "messages is required"}
	}
	return nil
}

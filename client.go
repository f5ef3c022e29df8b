package chatoyant

import (
	"context"
	"slices"
)

type ClientOption func(*Client)

// Client wraps a Provider with client-level request defaults and convenience
// operations (one-shot completion, text streaming, images, model listing).
type Client struct {
	provider    Provider
	defaultOpts []RequestOption
}

var _ Provider = (*Client)(nil)

func New(provider Provider, opts ...ClientOption) *Client {
	c := &Client{provider: provider}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// WithDefaultRequestOptions applies opts to every request sent through this client.
func WithDefaultRequestOptions(opts ...RequestOption) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, opts...)
	}
}

func (c *Client) Provider() Provider { return c.provider }

func (c *Client) ProviderName() string { return ProviderNameOf(c.provider) }

func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	return c.provider.Chat(ctx, c.withDefaults(req))
}

func (c *Client) ChatStream(ctx context.Context, req ChatRequest) (Stream, error) {
	return c.provider.ChatStream(ctx, c.withDefaults(req))
}

// Complete is a one-shot text completion: one user message in, first choice
// text out.
func (c *Client) Complete(ctx context.Context, model, prompt string, opts ...RequestOption) (string, error) {
	req := BuildChatRequest(model, []Message{User(prompt)}, opts...)
	resp, err := c.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.FirstText(), nil
}

// StreamText streams a chat request, delivering sequential text deltas to fn,
// and returns the reconstructed response.
func (c *Client) StreamText(ctx context.Context, req ChatRequest, fn TextHandler) (ChatResponse, error) {
	s, err := c.ChatStream(ctx, req)
	if err != nil {
		return ChatResponse{}, err
	}
	return ConsumeText(s, fn)
}

// GenerateImage calls the provider's image API. Providers without one return
// a not-supported *APIError.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (ImageResponse, error) {
	if ig, ok := c.provider.(ImageGenerator); ok {
		return ig.GenerateImage(ctx, req)
	}
	return ImageResponse{}, NotSupported(c.ProviderName(), "image generation")
}

// ListModels calls the provider's model listing endpoint. Providers without
// one return a not-supported *APIError.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if ml, ok := c.provider.(ModelLister); ok {
		return ml.ListModels(ctx)
	}
	return nil, NotSupported(c.ProviderName(), "model listing")
}

// withDefaults overlays req on top of the client defaults: a field explicitly
// set on req always wins over a default.
func (c *Client) withDefaults(req ChatRequest) ChatRequest {
	if len(c.defaultOpts) == 0 {
		return req
	}
	var base ChatRequest
	applyOptions(&base, slices.Clone(c.defaultOpts)...)

	out := req.Clone()
	if out.Model == "" {
		out.Model = base.Model
	}
	if out.Temperature == nil {
		out.Temperature = base.Temperature
	}
	if out.TopP == nil {
		out.TopP = base.TopP
	}
	if out.MaxTokens == nil {
		out.MaxTokens = base.MaxTokens
	}
	if out.Seed == nil {
		out.Seed = base.Seed
	}
	if out.PresencePenalty == nil {
		out.PresencePenalty = base.PresencePenalty
	}
	if out.FrequencyPenalty == nil {
		out.FrequencyPenalty = base.FrequencyPenalty
	}
	if out.Stop == nil {
		out.Stop = base.Stop
	}
	if out.ResponseFormat == nil {
		out.ResponseFormat = base.ResponseFormat
	}
	if out.StreamOptions == nil {
		out.StreamOptions = base.StreamOptions
	}
	if out.Tools == nil {
		out.Tools = base.Tools
	}
	if out.ToolChoice == nil {
		out.ToolChoice = base.ToolChoice
	}
	if out.Transport == nil {
		out.Transport = base.Transport
	}
	for k, v := range base.Extra {
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		if _, ok := out.Extra[k]; !ok {
			out.Extra[k] = v
		}
	}
	return out
}

// Complete is a package-level one-shot helper for callers that do not need a
// long-lived Client.
func Complete(ctx context.Context, provider Provider, model, prompt string, opts ...RequestOption) (string, error) {
	return New(provider).Complete(ctx, model, prompt, opts...)
}

// Package openai provides the OpenAI preset over the openai_compat engine.
package openai

import "github.com/Anonyfox/chatoyant/providers/openai_compat"

const (
	DefaultBaseURL             = "https://api.openai.com"
	DefaultChatCompletionsPath = "/v1/chat/completions"
)

type Option = openai_compat.Option

// New returns an OpenAI provider.
func New(apiKey string, opts ...Option) (*openai_compat.Provider, error) {
	return openai_compat.New(apiKey, append([]openai_compat.Option{
		openai_compat.WithProviderName("openai"),
		openai_compat.WithBaseURL(DefaultBaseURL),
		openai_compat.WithChatCompletionsPath(DefaultChatCompletionsPath),
	}, opts...)...)
}

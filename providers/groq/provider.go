// Package groq provides the Groq preset over the openai_compat engine.
package groq

import "github.com/Anonyfox/chatoyant/providers/openai_compat"

const (
	DefaultBaseURL             = "https://api.groq.com/openai"
	DefaultChatCompletionsPath = "/v1/chat/completions"
)

type Option = openai_compat.Option

// New returns a Groq provider.
func New(apiKey string, opts ...Option) (*openai_compat.Provider, error) {
	return openai_compat.New(apiKey, append([]openai_compat.Option{
		openai_compat.WithProviderName("groq"),
		openai_compat.WithBaseURL(DefaultBaseURL),
		openai_compat.WithChatCompletionsPath(DefaultChatCompletionsPath),
	}, opts...)...)
}

// Package deepseek provides the DeepSeek preset over the openai_compat engine.
package deepseek

import "github.com/Anonyfox/chatoyant/providers/openai_compat"

const (
	DefaultBaseURL             = "https://api.deepseek.com"
	DefaultChatCompletionsPath = "/chat/completions"
	DefaultModelsPath          = "/models"
)

type Option = openai_compat.Option

// New returns a DeepSeek provider.
//
// DeepSeek advertises OpenAI-compatibility; the remaining differences
// (endpoint paths, no image API) are handled through openai_compat options.
func New(apiKey string, opts ...Option) (*openai_compat.Provider, error) {
	return openai_compat.New(apiKey, append([]openai_compat.Option{
		openai_compat.WithProviderName("deepseek"),
		openai_compat.WithBaseURL(DefaultBaseURL),
		openai_compat.WithChatCompletionsPath(DefaultChatCompletionsPath),
		openai_compat.WithModelsPath(DefaultModelsPath),
	}, opts...)...)
}

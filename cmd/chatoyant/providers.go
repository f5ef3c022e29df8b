package main

import (
	"fmt"
	"os"

	"github.com/Anonyfox/chatoyant"
	"github.com/Anonyfox/chatoyant/config"
	"github.com/Anonyfox/chatoyant/providers/anthropic"
	"github.com/Anonyfox/chatoyant/providers/deepseek"
	"github.com/Anonyfox/chatoyant/providers/groq"
	"github.com/Anonyfox/chatoyant/providers/openai"
	"github.com/Anonyfox/chatoyant/providers/openai_compat"
)

// keyEnvVars maps provider names to the environment variable consulted when
// no key is given on the command line or in the config file.
var keyEnvVars = map[string]string{
	"openai":   "OPENAI_API_KEY",
	"deepseek": "DEEPSEEK_API_KEY",
	"groq":     "GROQ_API_KEY",
}

// resolveSettings folds config file, flags, and environment into the
// effective connection settings, flags winning over the file.
func resolveSettings() (config.ProviderSettings, error) {
	var s config.ProviderSettings
	if configPath != "" {
		store, err := config.LoadSettings(configPath)
		if err != nil {
			return s, fmt.Errorf("load config: %w", err)
		}
		s = store.Get().Provider(providerName)
	}
	if apiKey != "" {
		s.APIKey = apiKey
	}
	if s.APIKey == "" {
		s.APIKey = os.Getenv(keyEnvVars[providerName])
	}
	if baseURL != "" {
		s.BaseURL = baseURL
	}
	if modelName != "" {
		s.Model = modelName
	}
	return s, nil
}

func newClient() (*chatoyant.Client, error) {
	s, err := resolveSettings()
	if err != nil {
		return nil, err
	}

	var provider chatoyant.Provider
	switch providerName {
	case "openai":
		provider, err = openai.New(s.APIKey, compatOptions(s)...)
	case "deepseek":
		provider, err = deepseek.New(s.APIKey, compatOptions(s)...)
	case "groq":
		provider, err = groq.New(s.APIKey, compatOptions(s)...)
	case "anthropic":
		opts := []anthropic.Option{}
		if s.APIKey != "" {
			opts = append(opts, anthropic.WithAPIKey(s.APIKey))
		}
		if s.Model != "" {
			opts = append(opts, anthropic.WithDefaultModel(s.Model))
		}
		provider, err = anthropic.New(opts...)
	default:
		return nil, fmt.Errorf("unknown provider %q", providerName)
	}
	if err != nil {
		return nil, err
	}
	return chatoyant.New(provider), nil
}

func compatOptions(s config.ProviderSettings) []openai_compat.Option {
	var opts []openai_compat.Option
	if s.BaseURL != "" {
		opts = append(opts, openai_compat.WithBaseURL(s.BaseURL))
	}
	if s.Model != "" {
		opts = append(opts, openai_compat.WithDefaultModel(s.Model))
	}
	return opts
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatoyant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeConfig(t, `
default_provider: openai
providers:
  openai:
    api_key: sk-test
    model: gpt-4o-mini
  deepseek:
    api_key: dk-test
    base_url: https://api.deepseek.com
`)

	store, err := LoadSettings(path)
	require.NoError(t, err)

	s := store.Get()
	assert.Equal(t, "openai", s.DefaultProvider)
	assert.Equal(t, "sk-test", s.Provider("openai").APIKey)
	assert.Equal(t, "gpt-4o-mini", s.Provider("openai").Model)
	assert.Equal(t, "https://api.deepseek.com", s.Provider("deepseek").BaseURL)
	assert.Zero(t, s.Provider("unknown"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWithDefaults(t *testing.T) {
	path := writeConfig(t, `providers: {}`)

	store, err := Load(path, WithDefaults[Settings](map[string]any{
		"default_provider": "openai",
	}))
	require.NoError(t, err)
	assert.Equal(t, "openai", store.Get().DefaultProvider)
}

func TestGetReturnsCopy(t *testing.T) {
	path := writeConfig(t, `
providers:
  openai:
    api_key: sk-test
`)
	store, err := LoadSettings(path)
	require.NoError(t, err)

	a := store.Get()
	a.Providers["openai"] = ProviderSettings{APIKey: "mutated"}

	assert.Equal(t, "sk-test", store.Get().Provider("openai").APIKey)
}

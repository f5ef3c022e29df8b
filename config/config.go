// Package config loads SDK settings from a config file and the environment,
// with hot reload on file changes. It is generic over the settings type so
// applications embedding the SDK can extend Settings with their own fields.
package config

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix is the default environment variable prefix: a key such as
// "providers.openai.api_key" binds to CHATOYANT_PROVIDERS_OPENAI_API_KEY.
const EnvPrefix = "CHATOYANT"

// reloadDebounce coalesces the editor save-then-rename event bursts fsnotify
// delivers into a single reload.
const reloadDebounce = 100 * time.Millisecond

// ProviderSettings holds the connection settings for one provider.
type ProviderSettings struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Settings is the SDK's standard configuration shape.
type Settings struct {
	DefaultProvider string                      `mapstructure:"default_provider"`
	Providers       map[string]ProviderSettings `mapstructure:"providers"`
}

// Provider returns the settings block for a named provider, or a zero block
// when it is not configured.
func (s Settings) Provider(name string) ProviderSettings {
	return s.Providers[name]
}

// Store is a live, watched configuration value. Get is safe for concurrent
// use and always returns a copy, so callers can never observe a reload
// mid-read.
type Store[T any] struct {
	v        *viper.Viper
	value    *T
	mu       sync.RWMutex
	onChange []func(old, new T)
}

// Option customizes a Store before the first load.
type Option[T any] func(*Store[T])

// WithDefaults seeds default values applied below file and environment.
func WithDefaults[T any](defaults map[string]any) Option[T] {
	return func(s *Store[T]) {
		for k, v := range defaults {
			s.v.SetDefault(k, v)
		}
	}
}

// WithEnv binds environment variables under the given prefix. Dots in keys
// map to underscores in variable names.
func WithEnv[T any](prefix string) Option[T] {
	return func(s *Store[T]) {
		s.v.SetEnvPrefix(prefix)
		s.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		s.v.AutomaticEnv()
	}
}

// Load reads the config file at path, unmarshals it into T, and starts
// watching the file for changes.
func Load[T any](path string, opts ...Option[T]) (*Store[T], error) {
	v := viper.New()
	v.SetConfigFile(path)

	s := &Store[T]{v: v}
	for _, opt := range opts {
		opt(s)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var val T
	if err := v.Unmarshal(&val); err != nil {
		return nil, err
	}
	s.value = &val

	s.watch()
	return s, nil
}

// LoadSettings loads the SDK's standard Settings shape with CHATOYANT_*
// environment binding enabled.
func LoadSettings(path string) (*Store[Settings], error) {
	return Load(path, WithEnv[Settings](EnvPrefix))
}

// Get returns a copy of the current configuration.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(*s.value)
}

// OnChange registers a callback invoked after the file changes and the new
// value differs from the old one. Callbacks run on the watcher goroutine.
func (s *Store[T]) OnChange(fn func(old, new T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *Store[T]) watch() {
	var (
		timer   *time.Timer
		timerMu sync.Mutex
	)
	s.v.OnConfigChange(func(_ fsnotify.Event) {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(reloadDebounce, s.reload)
		timerMu.Unlock()
	})
	s.v.WatchConfig()
}

func (s *Store[T]) reload() {
	old := s.Get()

	next, callbacks, ok := s.reread()
	if !ok {
		return
	}
	if reflect.DeepEqual(old, next) {
		return
	}
	for _, fn := range callbacks {
		func() {
			defer func() { _ = recover() }()
			fn(old, next)
		}()
	}
}

// reread re-reads and re-unmarshals the file. A file that fails to parse
// mid-edit leaves the previous value in place.
func (s *Store[T]) reread() (T, []func(old, new T), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if err := s.v.ReadInConfig(); err != nil {
		return zero, nil, false
	}
	var val T
	if err := s.v.Unmarshal(&val); err != nil {
		return zero, nil, false
	}
	s.value = &val

	callbacks := make([]func(old, new T), len(s.onChange))
	copy(callbacks, s.onChange)
	return deepCopy(val), callbacks, true
}

func deepCopy[T any](src T) T {
	var dst T
	data, _ := json.Marshal(src)
	_ = json.Unmarshal(data, &dst)
	return dst
}

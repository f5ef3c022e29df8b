// Package modelinfo carries static metadata about known models: context
// window sizes, per-token pricing, and a cheap token estimator for budget
// checks before a request is sent. Lookups are by exact model identifier.
package modelinfo

import "strings"

// contextWindows maps model identifiers to their context window in tokens.
// Values follow the vendors' published limits.
var contextWindows = map[string]int{
	"gpt-4o":                      128000,
	"gpt-4o-mini":                 128000,
	"gpt-4.1":                     1047576,
	"gpt-4.1-mini":                1047576,
	"gpt-4-turbo":                 128000,
	"gpt-3.5-turbo":               16385,
	"o3":                          200000,
	"o3-mini":                     200000,
	"o4-mini":                     200000,
	"deepseek-chat":               65536,
	"deepseek-reasoner":           65536,
	"llama-3.3-70b-versatile":     131072,
	"llama-3.1-8b-instant":        131072,
	"mixtral-8x7b-32768":          32768,
	"claude-sonnet-4-5-20250929":  200000,
	"claude-opus-4-1-20250805":    200000,
	"claude-3-5-haiku-20241022":   200000,
}

// Price is the cost per million tokens in USD.
type Price struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

var prices = map[string]Price{
	"gpt-4o":                     {InputPerMTok: 2.50, OutputPerMTok: 10.00},
	"gpt-4o-mini":                {InputPerMTok: 0.15, OutputPerMTok: 0.60},
	"gpt-4.1":                    {InputPerMTok: 2.00, OutputPerMTok: 8.00},
	"gpt-4.1-mini":               {InputPerMTok: 0.40, OutputPerMTok: 1.60},
	"o3":                         {InputPerMTok: 2.00, OutputPerMTok: 8.00},
	"o3-mini":                    {InputPerMTok: 1.10, OutputPerMTok: 4.40},
	"deepseek-chat":              {InputPerMTok: 0.27, OutputPerMTok: 1.10},
	"deepseek-reasoner":          {InputPerMTok: 0.55, OutputPerMTok: 2.19},
	"llama-3.3-70b-versatile":    {InputPerMTok: 0.59, OutputPerMTok: 0.79},
	"llama-3.1-8b-instant":       {InputPerMTok: 0.05, OutputPerMTok: 0.08},
	"claude-sonnet-4-5-20250929": {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-opus-4-1-20250805":   {InputPerMTok: 15.00, OutputPerMTok: 75.00},
	"claude-3-5-haiku-20241022":  {InputPerMTok: 0.80, OutputPerMTok: 4.00},
}

// ContextWindow returns the context window for a known model. The second
// result is false when the model is not in the table.
func ContextWindow(model string) (int, bool) {
	n, ok := contextWindows[model]
	return n, ok
}

// ContextWindowOr returns the context window for a known model, or fallback
// for unknown ones.
func ContextWindowOr(model string, fallback int) int {
	if n, ok := contextWindows[model]; ok {
		return n
	}
	return fallback
}

// HasContextWindow reports whether the model has a documented context window.
func HasContextWindow(model string) bool {
	_, ok := contextWindows[model]
	return ok
}

// Pricing returns the published per-million-token price for a known model.
func Pricing(model string) (Price, bool) {
	p, ok := prices[model]
	return p, ok
}

// EstimateCost computes the USD cost of a request from its token counts.
// The second result is false when the model has no published pricing.
func EstimateCost(model string, inputTokens, outputTokens int) (float64, bool) {
	p, ok := prices[model]
	if !ok {
		return 0, false
	}
	cost := float64(inputTokens)*p.InputPerMTok/1e6 + float64(outputTokens)*p.OutputPerMTok/1e6
	return cost, true
}

// EstimateTokens approximates the token count of a text without a tokenizer.
// It uses the common chars/4 heuristic with a word-count floor, which is
// accurate enough for context-budget checks.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	byChars := (len(text) + 3) / 4
	if words := len(strings.Fields(text)); words > byChars {
		return words
	}
	return byChars
}

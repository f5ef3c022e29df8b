package deepseek

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Anonyfox/chatoyant"
	"github.com/Anonyfox/chatoyant/providers/openai_compat"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestPresetWiring(t *testing.T) {
	var gotURL string
	httpClient := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"id":"x","model":"deepseek-chat","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`)),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})}

	p, err := New("key", openai_compat.WithHTTPClient(httpClient))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	if p.ProviderName() != "deepseek" {
		t.Fatalf("ProviderName()=%q", p.ProviderName())
	}

	_, err = p.Chat(context.Background(), chatoyant.ChatRequest{
		Model:    "deepseek-chat",
		Messages: []chatoyant.Message{chatoyant.User("hi")},
	})
	if err != nil {
		t.Fatalf("Chat() err=%v", err)
	}
	if gotURL != "https://api.deepseek.com/chat/completions" {
		t.Fatalf("url=%q", gotURL)
	}
}

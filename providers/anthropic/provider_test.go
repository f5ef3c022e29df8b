package anthropic

import (
	"context"
	"testing"

	"github.com/Anonyfox/chatoyant"
)

func TestMapStopReason(t *testing.T) {
	tests := []struct {
		in   string
		want chatoyant.FinishReason
	}{
		{"end_turn", chatoyant.FinishReasonStop},
		{"stop_sequence", chatoyant.FinishReasonStop},
		{"max_tokens", chatoyant.FinishReasonLength},
		{"tool_use", chatoyant.FinishReasonToolCalls},
		{"weird", chatoyant.FinishReasonUnknown},
	}
	for _, tt := range tests {
		if got := mapStopReason(tt.in); got != tt.want {
			t.Errorf("mapStopReason(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChatStreamNotSupported(t *testing.T) {
	p, err := New(WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	_, err = p.ChatStream(context.Background(), chatoyant.ChatRequest{})
	ae, ok := chatoyant.AsAPIError(err)
	if !ok || ae.Kind != chatoyant.ErrKindInvalidRequest {
		t.Fatalf("err=%v", err)
	}
}

func TestChatRejectsTools(t *testing.T) {
	p, err := New(WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	_, err = p.Chat(context.Background(), chatoyant.ChatRequest{
		Messages: []chatoyant.Message{chatoyant.User("hi")},
		Tools:    []chatoyant.ToolDefinition{{Name: "t"}},
	})
	if _, ok := chatoyant.AsAPIError(err); !ok {
		t.Fatalf("err=%v", err)
	}
}

func TestDefaultModel(t *testing.T) {
	p, err := New(WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	if p.model != DefaultModel {
		t.Fatalf("model=%q", p.model)
	}
}

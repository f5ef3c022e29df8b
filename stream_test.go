package chatoyant

import (
	"errors"
	"io"
	"testing"
)

type sliceStream struct {
	events []StreamEvent
	closed bool
}

func (s *sliceStream) Recv() (StreamEvent, error) {
	if s.closed {
		return StreamEvent{}, ErrStreamClosed
	}
	if len(s.events) == 0 {
		return StreamEvent{}, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func (s *sliceStream) Close() error {
	s.closed = true
	return nil
}

func TestAccumulator_TextAndReasoning(t *testing.T) {
	var acc Accumulator
	acc.Apply(StreamEvent{Kind: StreamEventReasoningDelta, ReasoningDelta: "Think"})
	acc.Apply(StreamEvent{Kind: StreamEventTextDelta, TextDelta: "Hello"})
	acc.Apply(StreamEvent{Kind: StreamEventTextDelta, TextDelta: " world"})
	acc.Apply(StreamEvent{Kind: StreamEventUsage, Usage: &Usage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3}})
	acc.Apply(StreamEvent{Kind: StreamEventDone, FinishReason: FinishReasonStop})

	resp := acc.FinalResponse()
	if got := resp.FirstText(); got != "Hello world" {
		t.Fatalf("FirstText=%q", got)
	}
	msg := resp.Choices[0].Message
	if msg.Reasoning() != "Think" {
		t.Fatalf("Reasoning=%q", msg.Reasoning())
	}
	if resp.Choices[0].FinishReason != FinishReasonStop {
		t.Fatalf("finish=%q", resp.Choices[0].FinishReason)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 3 {
		t.Fatalf("usage=%+v", resp.Usage)
	}
}

func TestAccumulator_ToolCallAssembly(t *testing.T) {
	var acc Accumulator
	acc.Apply(StreamEvent{Kind: StreamEventToolCallDelta, ToolCallDelta: &ToolCallDelta{Index: 0, ID: "call_1", Name: "lookup", ArgumentsDelta: `{"q":`}})
	acc.Apply(StreamEvent{Kind: StreamEventToolCallDelta, ToolCallDelta: &ToolCallDelta{Index: 0, ArgumentsDelta: `"x"}`}})
	acc.Apply(StreamEvent{Kind: StreamEventDone, FinishReason: FinishReasonToolCalls})

	msg := acc.FinalMessage()
	if len(msg.ToolCalls) != 1 {
		t.Fatalf("ToolCalls=%d", len(msg.ToolCalls))
	}
	tc := msg.ToolCalls[0]
	if tc.ID != "call_1" || tc.Name != "lookup" {
		t.Fatalf("tc=%+v", tc)
	}
	if tc.ArgumentsText != `{"q":"x"}` {
		t.Fatalf("ArgumentsText=%q", tc.ArgumentsText)
	}
	if string(tc.Arguments) != `{"q":"x"}` {
		t.Fatalf("Arguments=%q", tc.Arguments)
	}
}

func TestAccumulator_SparseToolCallIndexes(t *testing.T) {
	var acc Accumulator
	acc.Apply(StreamEvent{Kind: StreamEventToolCallDelta, ToolCallDelta: &ToolCallDelta{Index: 1, ID: "call_2", Name: "b"}})

	if got := len(acc.ToolCalls); got != 2 {
		t.Fatalf("ToolCalls=%d", got)
	}
	if acc.ToolCalls[1].Name != "b" {
		t.Fatalf("ToolCalls[1]=%+v", acc.ToolCalls[1])
	}
}

func TestDrainStream_BuildsResponse(t *testing.T) {
	s := &sliceStream{events: []StreamEvent{
		{Kind: StreamEventTextDelta, TextDelta: "Hello"},
		{Kind: StreamEventTextDelta, TextDelta: " world"},
		{Kind: StreamEventDone, FinishReason: FinishReasonStop},
	}}

	resp, err := DrainStream(s)
	if err != nil {
		t.Fatalf("DrainStream err=%v", err)
	}
	if got := resp.FirstText(); got != "Hello world" {
		t.Fatalf("FirstText=%q", got)
	}
	if !s.closed {
		t.Fatal("DrainStream should close the stream")
	}
}

func TestConsumeText_DeliversDeltasInOrder(t *testing.T) {
	s := &sliceStream{events: []StreamEvent{
		{Kind: StreamEventTextDelta, TextDelta: "a"},
		{Kind: StreamEventReasoningDelta, ReasoningDelta: "skip"},
		{Kind: StreamEventTextDelta, TextDelta: "b"},
		{Kind: StreamEventDone, FinishReason: FinishReasonStop},
	}}

	var got []string
	resp, err := ConsumeText(s, func(delta string) error {
		got = append(got, delta)
		return nil
	})
	if err != nil {
		t.Fatalf("ConsumeText err=%v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("deltas=%v", got)
	}
	if resp.FirstText() != "ab" {
		t.Fatalf("FirstText=%q", resp.FirstText())
	}
}

func TestConsumeText_HandlerErrorAborts(t *testing.T) {
	s := &sliceStream{events: []StreamEvent{
		{Kind: StreamEventTextDelta, TextDelta: "a"},
		{Kind: StreamEventTextDelta, TextDelta: "b"},
	}}

	sentinel := errors.New("stop here")
	_, err := ConsumeText(s, func(string) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("err=%v", err)
	}
	if !s.closed {
		t.Fatal("handler error should close the stream")
	}
}

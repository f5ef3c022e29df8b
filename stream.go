package chatoyant

import (
	"encoding/json"
	"errors"
	"io"
)

// Stream yields StreamEvent values until io.EOF.
//
// Implementations should return io.EOF once the stream finishes normally.
type Stream interface {
	Recv() (StreamEvent, error)
	Close() error
}

type StreamEventKind string

const (
	StreamEventTextDelta      StreamEventKind = "text_delta"
	StreamEventReasoningDelta StreamEventKind = "reasoning_delta"
	StreamEventToolCallDelta  StreamEventKind = "tool_call_delta"
	StreamEventUsage          StreamEventKind = "usage"
	StreamEventDone           StreamEventKind = "done"
)

type ToolCallDelta struct {
	Index int
	ID    string
	Name  string

	ArgumentsDelta string
}

type StreamEvent struct {
	Kind        StreamEventKind
	ChoiceIndex int

	TextDelta      string
	ReasoningDelta string
	ToolCallDelta  *ToolCallDelta
	Usage          *Usage

	FinishReason FinishReason
	RawJSON      json.RawMessage
}

func (e StreamEvent) Done() bool { return e.Kind == StreamEventDone }

var ErrStreamClosed = errors.New("chatoyant: stream closed")

// Accumulator helps build a final assistant message from a stream.
//
// It is intentionally tolerant to partial tool call deltas.
type Accumulator struct {
	Text         string
	Reasoning    string
	ToolCalls    []ToolCall
	FinishReason FinishReason
	Usage        *Usage
}

func (a *Accumulator) Apply(ev StreamEvent) {
	switch ev.Kind {
	case StreamEventTextDelta:
		a.Text += ev.TextDelta
	case StreamEventReasoningDelta:
		a.Reasoning += ev.ReasoningDelta
	case StreamEventToolCallDelta:
		if ev.ToolCallDelta == nil {
			return
		}
		idx := ev.ToolCallDelta.Index
		for len(a.ToolCalls) <= idx {
			a.ToolCalls = append(a.ToolCalls, ToolCall{})
		}
		tc := &a.ToolCalls[idx]
		if ev.ToolCallDelta.ID != "" {
			tc.ID = ev.ToolCallDelta.ID
		}
		if ev.ToolCallDelta.Name != "" {
			tc.Name = ev.ToolCallDelta.Name
		}
		tc.ArgumentsText += ev.ToolCallDelta.ArgumentsDelta
	case StreamEventUsage:
		if ev.Usage != nil {
			cpy := *ev.Usage
			a.Usage = &cpy
		}
	case StreamEventDone:
		if ev.FinishReason != "" {
			a.FinishReason = ev.FinishReason
		}
	}
}

func (a *Accumulator) FinalMessage() Message {
	msg := Message{Role: RoleAssistant}
	if a.Text != "" {
		msg.Parts = append(msg.Parts, TextPart(a.Text))
	}
	if a.Reasoning != "" {
		msg.Parts = append(msg.Parts, ReasoningPart(a.Reasoning))
	}
	if len(a.ToolCalls) > 0 {
		msg.ToolCalls = append([]ToolCall(nil), a.ToolCalls...)
		// Best-effort: convert ArgumentsText to JSON bytes.
		for i := range msg.ToolCalls {
			if len(msg.ToolCalls[i].Arguments) == 0 && msg.ToolCalls[i].ArgumentsText != "" {
				if json.Valid([]byte(msg.ToolCalls[i].ArgumentsText)) {
					msg.ToolCalls[i].Arguments = json.RawMessage(msg.ToolCalls[i].ArgumentsText)
				}
			}
		}
	}
	return msg
}

func (a *Accumulator) FinalResponse() ChatResponse {
	return ChatResponse{
		Choices: []ChatChoice{{Index: 0, Message: a.FinalMessage(), FinishReason: a.FinishReason}},
		Usage:   a.Usage,
	}
}

// DrainStream consumes a stream to completion and reconstructs a ChatResponse.
func DrainStream(stream Stream) (ChatResponse, error) {
	defer stream.Close()

	var acc Accumulator
	for {
		ev, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return ChatResponse{}, err
		}
		acc.Apply(ev)
	}

	return acc.FinalResponse(), nil
}

// TextHandler receives sequential text deltas from a stream, in order,
// exactly once each.
type TextHandler func(delta string) error

// ConsumeText forwards each text delta to fn and returns the fully
// accumulated response once the stream ends. An error from fn aborts the stream.
func ConsumeText(stream Stream, fn TextHandler) (ChatResponse, error) {
	defer stream.Close()

	var acc Accumulator
	for {
		ev, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return ChatResponse{}, err
		}
		acc.Apply(ev)
		if ev.Kind == StreamEventTextDelta && fn != nil {
			if err := fn(ev.TextDelta); err != nil {
				return ChatResponse{}, err
			}
		}
	}

	return acc.FinalResponse(), nil
}

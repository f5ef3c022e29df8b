package openai_compat

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Anonyfox/chatoyant"
)

type stream struct {
	provider string
	resp     *http.Response
	dec      *sseDecoder

	closed bool
	done   bool

	pending []chatoyant.StreamEvent
}

func newStream(provider string, resp *http.Response) *stream {
	return &stream{
		provider: provider,
		resp:     resp,
		dec:      newSSEDecoder(resp.Body),
	}
}

func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.resp != nil && s.resp.Body != nil {
		return s.resp.Body.Close()
	}
	return nil
}

func (s *stream) Recv() (chatoyant.StreamEvent, error) {
	for {
		if s.closed {
			return chatoyant.StreamEvent{}, chatoyant.ErrStreamClosed
		}
		if len(s.pending) > 0 {
			ev := s.pending[0]
			s.pending = s.pending[1:]
			return ev, nil
		}
		if s.done {
			return chatoyant.StreamEvent{}, io.EOF
		}

		data, err := s.dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Some providers close the connection without sending [DONE].
				s.done = true
				return chatoyant.StreamEvent{Kind: chatoyant.StreamEventDone}, nil
			}
			return chatoyant.StreamEvent{}, err
		}

		data = bytes.TrimSpace(data)
		if bytes.Equal(data, []byte("[DONE]")) {
			s.done = true
			return chatoyant.StreamEvent{Kind: chatoyant.StreamEventDone}, nil
		}

		if err := s.decodeChunk(data); err != nil {
			return chatoyant.StreamEvent{}, err
		}
		// Nothing meaningful in this chunk; read the next one.
	}
}

func (s *stream) decodeChunk(data []byte) error {
	var chunk chatCompletionChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return &chatoyant.APIError{
			Provider: s.provider,
			Kind:     chatoyant.ErrKindParse,
			Message:  "failed to decode stream chunk",
			Raw:      append([]byte(nil), data...),
			Cause:    err,
		}
	}
	if chunk.Error != nil {
		return &chatoyant.APIError{
			Provider: s.provider,
			Kind:     chatoyant.ErrKindServerError,
			Message:  chunk.Error.Message,
			Raw:      append([]byte(nil), data...),
		}
	}

	if chunk.Usage != nil {
		s.pending = append(s.pending, chatoyant.StreamEvent{
			Kind:  chatoyant.StreamEventUsage,
			Usage: mapUsage(chunk.Usage),
		})
	}

	for _, choice := range chunk.Choices {
		idx := choice.Index
		if choice.Delta.ReasoningContent != "" {
			s.pending = append(s.pending, chatoyant.StreamEvent{
				Kind:           chatoyant.StreamEventReasoningDelta,
				ChoiceIndex:    idx,
				ReasoningDelta: choice.Delta.ReasoningContent,
			})
		}
		text, reasoning := splitContent(choice.Delta.Content)
		if text != "" {
			s.pending = append(s.pending, chatoyant.StreamEvent{
				Kind:        chatoyant.StreamEventTextDelta,
				ChoiceIndex: idx,
				TextDelta:   text,
			})
		}
		if reasoning != "" {
			s.pending = append(s.pending, chatoyant.StreamEvent{
				Kind:           chatoyant.StreamEventReasoningDelta,
				ChoiceIndex:    idx,
				ReasoningDelta: reasoning,
			})
		}
		for _, tc := range choice.Delta.ToolCalls {
			s.pending = append(s.pending, chatoyant.StreamEvent{
				Kind:        chatoyant.StreamEventToolCallDelta,
				ChoiceIndex: idx,
				ToolCallDelta: &chatoyant.ToolCallDelta{
					Index:          tc.Index,
					ID:             tc.ID,
					Name:           tc.Function.Name,
					ArgumentsDelta: tc.Function.Arguments,
				},
			})
		}
		if choice.FinishReason != "" {
			s.pending = append(s.pending, chatoyant.StreamEvent{
				Kind:         chatoyant.StreamEventDone,
				ChoiceIndex:  idx,
				FinishReason: mapFinishReason(choice.FinishReason),
			})
		}
	}
	return nil
}

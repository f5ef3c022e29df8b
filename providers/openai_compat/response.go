package openai_compat

import (
	"strings"

	"github.com/Anonyfox/chatoyant"
)

func (p *Provider) mapResponse(r chatCompletionResponse) chatoyant.ChatResponse {
	out := chatoyant.ChatResponse{
		ID:      r.ID,
		Model:   r.Model,
		Created: r.CreatedTime(),
		Choices: make([]chatoyant.ChatChoice, 0, len(r.Choices)),
	}
	if r.Usage != nil {
		out.Usage = mapUsage(r.Usage)
	}

	for _, c := range r.Choices {
		msg := chatoyant.Message{Role: chatoyant.RoleAssistant}
		if c.Message.Role != "" {
			msg.Role = chatoyant.Role(c.Message.Role)
		}
		text, reasoningFromContent := splitContent(c.Message.Content)
		reasoning := reasoningFromContent
		if c.Message.ReasoningContent != "" {
			reasoning = c.Message.ReasoningContent + reasoning
		}
		if text != "" {
			msg.Parts = append(msg.Parts, chatoyant.TextPart(text))
		}
		if reasoning != "" {
			msg.Parts = append(msg.Parts, chatoyant.ReasoningPart(reasoning))
		}
		msg.Name = c.Message.Name
		if len(c.Message.ToolCalls) > 0 {
			msg.ToolCalls = make([]chatoyant.ToolCall, 0, len(c.Message.ToolCalls))
			for _, tc := range c.Message.ToolCalls {
				msg.ToolCalls = append(msg.ToolCalls, chatoyant.ToolCall{
					ID:            tc.ID,
					Name:          tc.Function.Name,
					ArgumentsText: tc.Function.Arguments,
				})
			}
		}
		out.Choices = append(out.Choices, chatoyant.ChatChoice{
			Index:        c.Index,
			Message:      msg,
			FinishReason: mapFinishReason(c.FinishReason),
		})
	}
	return out
}

func mapUsage(u *chatCompletionUsage) *chatoyant.Usage {
	out := &chatoyant.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
	d := chatoyant.UsageDetails{
		PromptCacheHitTokens:  u.intField("prompt_cache_hit_tokens"),
		PromptCacheMissTokens: u.intField("prompt_cache_miss_tokens"),
	}
	cachedTokens := u.intField("cached_tokens")
	if d.PromptCacheHitTokens == 0 && cachedTokens != 0 {
		// Some providers only report a single cache number.
		d.PromptCacheHitTokens = cachedTokens
	}
	d.ReasoningTokens = u.intFieldInObject("completion_tokens_details", "reasoning_tokens")
	if d.PromptCacheHitTokens != 0 || d.PromptCacheMissTokens != 0 || d.ReasoningTokens != 0 {
		out.Details = &d
	}
	return out
}

func mapFinishReason(fr string) chatoyant.FinishReason {
	switch fr {
	case "stop":
		return chatoyant.FinishReasonStop
	case "length":
		return chatoyant.FinishReasonLength
	case "tool_calls", "function_call":
		return chatoyant.FinishReasonToolCalls
	case "":
		return ""
	default:
		return chatoyant.FinishReasonUnknown
	}
}

func splitContent(v any) (text string, reasoning string) {
	switch x := v.(type) {
	case nil:
		return "", ""
	case string:
		return x, ""
	case []any:
		var b strings.Builder
		var r strings.Builder
		for _, it := range x {
			if m, ok := it.(map[string]any); ok {
				typeStr, _ := m["type"].(string)
				if t, ok := m["text"].(string); ok {
					switch typeStr {
					case "reasoning", "thinking":
						r.WriteString(t)
					default:
						b.WriteString(t)
					}
				}
			}
		}
		return b.String(), r.String()
	case map[string]any:
		typeStr, _ := x["type"].(string)
		if t, ok := x["text"].(string); ok {
			switch typeStr {
			case "reasoning", "thinking":
				return "", t
			default:
				return t, ""
			}
		}
		return "", ""
	default:
		return "", ""
	}
}

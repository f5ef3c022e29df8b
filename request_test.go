package chatoyant

import "testing"

func TestBuildChatRequest(t *testing.T) {
	msgs := []Message{System("be brief"), User("hi")}
	req := BuildChatRequest("m", msgs,
		WithTemperature(0.7),
		WithMaxTokens(256),
		WithSeed(42),
		WithStop("END"),
		WithStreamIncludeUsage(true),
	)

	if req.Model != "m" {
		t.Fatalf("Model=%q", req.Model)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("Messages=%d", len(req.Messages))
	}
	if *req.Temperature != 0.7 || *req.MaxTokens != 256 || *req.Seed != 42 {
		t.Fatalf("req=%+v", req)
	}
	if len(req.Stop) != 1 || req.Stop[0] != "END" {
		t.Fatalf("Stop=%v", req.Stop)
	}
	if req.StreamOptions == nil || !req.StreamOptions.IncludeUsage {
		t.Fatalf("StreamOptions=%+v", req.StreamOptions)
	}
}

func TestBuildChatRequestClonesMessages(t *testing.T) {
	msgs := []Message{User("original")}
	req := BuildChatRequest("m", msgs)

	msgs[0].Parts[0].Text = "mutated"
	if got := req.Messages[0].Text(); got != "original" {
		t.Fatalf("request should not alias caller messages, got %q", got)
	}
}

func TestWithResponseFormatJSONSchema(t *testing.T) {
	schemaJSON := []byte(`{"type":"object"}`)
	req := BuildChatRequest("m", nil, WithResponseFormatJSONSchema(schemaJSON))

	if req.ResponseFormat == nil || req.ResponseFormat.Type != ResponseFormatJSONSchema {
		t.Fatalf("ResponseFormat=%+v", req.ResponseFormat)
	}

	schemaJSON[0] = 'X'
	if string(req.ResponseFormat.JSONSchema) != `{"type":"object"}` {
		t.Fatalf("JSONSchema aliased the caller slice: %s", req.ResponseFormat.JSONSchema)
	}
}

func TestWithHeader(t *testing.T) {
	req := BuildChatRequest("m", nil, WithHeader("X-Org", "acme"))
	if req.Transport == nil {
		t.Fatal("missing transport options")
	}
	if got := req.Transport.Headers.Get("X-Org"); got != "acme" {
		t.Fatalf("header=%q", got)
	}
}

func TestChatRequestClone(t *testing.T) {
	temp := 0.5
	req := ChatRequest{
		Model:       "m",
		Messages:    []Message{User("hi")},
		Temperature: &temp,
		Extra:       map[string]any{"a": 1},
	}

	cp := req.Clone()
	other := 0.9
	cp.Temperature = &other
	cp.Extra["a"] = 2
	cp.Messages[0].Parts[0].Text = "bye"

	if *req.Temperature != 0.5 {
		t.Fatalf("Temperature=%v", *req.Temperature)
	}
	if req.Extra["a"] != 1 {
		t.Fatalf("Extra=%v", req.Extra)
	}
	if req.Messages[0].Text() != "hi" {
		t.Fatalf("Messages=%+v", req.Messages)
	}
}

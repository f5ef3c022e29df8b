package openai_compat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Anonyfox/chatoyant"
	"github.com/Anonyfox/chatoyant/internal/transport"
)

func (p *Provider) mapError(err error, raw []byte) error {
	if errors.Is(err, context.Canceled) {
		return &chatoyant.APIError{Provider: p.name, Kind: chatoyant.ErrKindCanceled, Message: "request canceled", Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &chatoyant.APIError{Provider: p.name, Kind: chatoyant.ErrKindTimeout, Message: "request deadline exceeded", Cause: err}
	}

	var se *transport.HTTPStatusError
	if errors.As(err, &se) {
		msg, typ, param, code := parseErrorEnvelope(se.Body)
		if msg == "" {
			msg = http.StatusText(se.StatusCode)
		}
		retryAfter, _ := se.RetryAfter()
		requestID := ""
		if se.Header != nil {
			requestID = se.Header.Get("X-Request-Id")
		}
		return &chatoyant.APIError{
			Provider:   p.name,
			StatusCode: se.StatusCode,
			Kind:       chatoyant.ClassifyStatus(se.StatusCode),
			Code:       code,
			Type:       typ,
			Param:      param,
			Message:    msg,
			RequestID:  requestID,
			RetryAfter: retryAfter,
			Header:     se.Header,
			Raw:        append([]byte(nil), se.Body...),
			Cause:      err,
		}
	}

	// Transport failure without a response: synthetic zero status.
	return &chatoyant.APIError{
		Provider: p.name,
		Kind:     chatoyant.ErrKindServerError,
		Message:  err.Error(),
		Raw:      raw,
		Cause:    err,
	}
}

func parseErrorEnvelope(raw []byte) (message, typ, param, code string) {
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error == nil {
		return "", "", "", ""
	}
	message = env.Error.Message
	typ = env.Error.Type
	param = env.Error.Param
	if env.Error.Code != nil {
		code = stringify(env.Error.Code)
	}
	return message, typ, param, code
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

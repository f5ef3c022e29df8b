package openai_compat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Anonyfox/chatoyant"
)

// GenerateImage calls the OpenAI-compatible image generations endpoint.
func (p *Provider) GenerateImage(ctx context.Context, req chatoyant.ImageRequest) (chatoyant.ImageResponse, error) {
	if req.Prompt == "" {
		return chatoyant.ImageResponse{}, &chatoyant.APIError{
			Provider: p.name,
			Kind:     chatoyant.ErrKindInvalidRequest,
			Message:  "prompt is required",
		}
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	wreq := map[string]any{
		"prompt": req.Prompt,
	}
	if model != "" {
		wreq["model"] = model
	}
	if req.N > 0 {
		wreq["n"] = req.N
	}
	if req.Size != "" {
		wreq["size"] = req.Size
	}
	if req.Quality != "" {
		wreq["quality"] = req.Quality
	}
	if req.Style != "" {
		wreq["style"] = req.Style
	}
	if req.ResponseFormat != "" {
		wreq["response_format"] = req.ResponseFormat
	}
	for k, v := range req.Extra {
		wreq[k] = v
	}

	hdr := p.defaultHeaders("application/json", req.Transport)
	_, raw, err := p.tr.DoJSON(ctx, http.MethodPost, p.imagesPath, hdr, wreq)
	if err != nil {
		return chatoyant.ImageResponse{}, p.mapError(err, raw)
	}

	var wresp imageGenerationResponse
	if err := json.Unmarshal(raw, &wresp); err != nil {
		return chatoyant.ImageResponse{}, &chatoyant.APIError{
			Provider: p.name,
			Kind:     chatoyant.ErrKindParse,
			Message:  "failed to decode image response",
			Raw:      raw,
			Cause:    err,
		}
	}

	out := chatoyant.ImageResponse{
		RawJSON: append([]byte(nil), raw...),
	}
	if wresp.Created > 0 {
		out.Created = time.Unix(wresp.Created, 0).UTC()
	}
	for _, d := range wresp.Data {
		out.Images = append(out.Images, chatoyant.GeneratedImage{
			URL:           d.URL,
			B64JSON:       d.B64JSON,
			RevisedPrompt: d.RevisedPrompt,
		})
	}
	return out, nil
}

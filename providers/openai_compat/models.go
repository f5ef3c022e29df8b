package openai_compat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Anonyfox/chatoyant"
)

// ListModels fetches the provider's model catalog.
func (p *Provider) ListModels(ctx context.Context) ([]chatoyant.ModelInfo, error) {
	hdr := p.defaultHeaders("application/json", nil)
	_, raw, err := p.tr.DoJSON(ctx, http.MethodGet, p.modelsPath, hdr, nil)
	if err != nil {
		return nil, p.mapError(err, raw)
	}

	var wresp modelListResponse
	if err := json.Unmarshal(raw, &wresp); err != nil {
		return nil, &chatoyant.APIError{
			Provider: p.name,
			Kind:     chatoyant.ErrKindParse,
			Message:  "failed to decode model list",
			Raw:      raw,
			Cause:    err,
		}
	}

	out := make([]chatoyant.ModelInfo, 0, len(wresp.Data))
	for _, d := range wresp.Data {
		mi := chatoyant.ModelInfo{ID: d.ID, OwnedBy: d.OwnedBy}
		if d.Created > 0 {
			mi.Created = time.Unix(d.Created, 0).UTC()
		}
		out = append(out, mi)
	}
	return out, nil
}

package chatoyant

import "context"

// Provider is the minimal interface an LLM backend must implement.
//
// Implementations are expected to:
// - treat ChatRequest as read-only
// - return an *APIError (or wrap one) for provider/HTTP errors
// - honor ctx cancellation
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	ChatStream(ctx context.Context, req ChatRequest) (Stream, error)
}

// ImageGenerator is an optional capability for providers with an image API.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (ImageResponse, error)
}

// ModelLister is an optional capability for providers with a model listing endpoint.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// ProviderNamer is an optional interface for discovering which vendor a
// Provider instance talks to.
type ProviderNamer interface {
	ProviderName() string
}

func ProviderNameOf(p Provider) string {
	if n, ok := p.(ProviderNamer); ok {
		return n.ProviderName()
	}
	return "unknown"
}

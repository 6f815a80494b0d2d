// Package vendors selects the wire codec for a provider. The provider set
// is closed, supporting a new one means extending the switch.
package vendors

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/dlai/internal/vendors/ollama"
	"github.com/baalimago/dlai/internal/vendors/openai"
)

const requestTimeout = 10 * time.Second

// NewHTTPClient returns the client shared by all outbound provider calls.
// The timeout bounds the full request, streaming reads included, so no call
// can hang.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// Codec translates between the canonical conversation model and one
// provider's wire format.
type Codec interface {
	// Chat performs one non-streaming round trip.
	Chat(ctx context.Context, conn models.ProviderConnection, model string, messages []models.ChatMessage, toolDefs []models.ToolDescriptor) (models.AssistantTurn, error)
	// Stream performs one streaming round trip. The returned channel
	// carries string deltas and exactly one terminal element, an error or
	// models.StreamDone, then closes.
	Stream(ctx context.Context, conn models.ProviderConnection, model string, messages []models.ChatMessage, toolDefs []models.ToolDescriptor) (<-chan models.CompletionEvent, error)
	// ListModels queries the provider for its available models.
	ListModels(ctx context.Context, conn models.ProviderConnection) ([]models.Model, error)
}

// CodecFor matches the provider tag to its codec.
func CodecFor(p models.Provider, client *http.Client) (Codec, error) {
	switch p {
	case models.ProviderVllm:
		return openai.New(client), nil
	case models.ProviderOllama:
		return ollama.New(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedProvider, p)
	}
}

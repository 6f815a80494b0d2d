package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/baalimago/dlai/internal/models"
)

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ListModels fetches the provider's model inventory. The id doubles as the
// label, OpenAI-compatible servers expose nothing friendlier.
func (c Codec) ListModels(ctx context.Context, conn models.ProviderConnection) ([]models.Model, error) {
	req, err := c.newRequest(ctx, conn, http.MethodGet, modelsPath, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var decoded modelsResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode models response: %w", err)
	}

	out := make([]models.Model, 0, len(decoded.Data))
	for _, m := range decoded.Data {
		out = append(out, models.Model{ID: m.ID, Label: m.ID, Provider: models.ProviderVllm})
	}
	return out, nil
}

package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/baalimago/dlai/internal/models"
)

type tagsResponse struct {
	Models []struct {
		Name    string `json:"name"`
		Details struct {
			ParameterSize string `json:"parameter_size"`
		} `json:"details"`
	} `json:"models"`
}

// ListModels queries the local tag registry. Labels carry the parameter
// size when Ollama reports one, so a UI can tell llama3:8b from llama3:70b
// at a glance.
func (c Codec) ListModels(ctx context.Context, conn models.ProviderConnection) ([]models.Model, error) {
	req, err := c.newRequest(ctx, conn, http.MethodGet, tagsPath, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var decoded tagsResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode tags response: %w", err)
	}
	found := make([]models.Model, 0, len(decoded.Models))
	for _, m := range decoded.Models {
		label := m.Name
		if m.Details.ParameterSize != "" {
			label = fmt.Sprintf("%v · %v", m.Name, m.Details.ParameterSize)
		}
		found = append(found, models.Model{
			ID:       m.Name,
			Label:    label,
			Provider: models.ProviderOllama,
		})
	}
	return found, nil
}

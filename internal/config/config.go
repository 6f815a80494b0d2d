package config

import (
	"fmt"
	"strings"

	"github.com/baalimago/dlai/internal/models"
)

const (
	DefaultVllmBaseURL   = "http://127.0.0.1:8000"
	DefaultOllamaBaseURL = "http://127.0.0.1:11434"
)

// Configuration is the persisted provider setup. It is the full document
// written to disk, camelCase keys, null for unset optionals.
type Configuration struct {
	ActiveProvider models.Provider                               `json:"activeProvider"`
	SelectedModel  *string                                       `json:"selectedModel"`
	Providers      map[models.Provider]models.ProviderConnection `json:"providers"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		ActiveProvider: models.ProviderVllm,
		Providers: map[models.Provider]models.ProviderConnection{
			models.ProviderVllm:   {BaseURL: DefaultVllmBaseURL},
			models.ProviderOllama: {BaseURL: DefaultOllamaBaseURL},
		},
	}
}

// Clone deep-copies the configuration so snapshots never alias store state.
func (c Configuration) Clone() Configuration {
	out := c
	out.SelectedModel = clonePtr(c.SelectedModel)
	out.Providers = make(map[models.Provider]models.ProviderConnection, len(c.Providers))
	for p, conn := range c.Providers {
		conn.APIKey = clonePtr(conn.APIKey)
		out.Providers[p] = conn
	}
	return out
}

// Validate rejects unknown provider tags. Empty activeProvider is allowed
// here, Normalize fills it with the default.
func (c Configuration) Validate() error {
	if c.ActiveProvider != "" && !c.ActiveProvider.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnsupportedProvider, c.ActiveProvider)
	}
	for p := range c.Providers {
		if !p.Valid() {
			return fmt.Errorf("%w: %q", models.ErrUnsupportedProvider, p)
		}
	}
	return nil
}

// Normalize makes the configuration canonical: trimmed base URLs without
// trailing slashes, defaults for empty fields, nil for empty optionals and
// both provider entries present. It is idempotent.
func (c *Configuration) Normalize() {
	if c.ActiveProvider == "" {
		c.ActiveProvider = models.ProviderVllm
	}
	c.SelectedModel = sanitizeOptional(c.SelectedModel)
	if c.Providers == nil {
		c.Providers = map[models.Provider]models.ProviderConnection{}
	}
	for _, p := range []models.Provider{models.ProviderVllm, models.ProviderOllama} {
		conn := c.Providers[p]
		conn.BaseURL = strings.TrimRight(strings.TrimSpace(conn.BaseURL), "/")
		if conn.BaseURL == "" {
			conn.BaseURL = defaultBaseURL(p)
		}
		conn.APIKey = sanitizeOptional(conn.APIKey)
		c.Providers[p] = conn
	}
}

// Connection returns the connection for p, reporting absence so callers can
// fail before any network call.
func (c Configuration) Connection(p models.Provider) (models.ProviderConnection, bool) {
	conn, ok := c.Providers[p]
	return conn, ok
}

func defaultBaseURL(p models.Provider) string {
	if p == models.ProviderOllama {
		return DefaultOllamaBaseURL
	}
	return DefaultVllmBaseURL
}

func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

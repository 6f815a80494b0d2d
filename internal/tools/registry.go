package tools

import (
	"os"
	"slices"

	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"golang.org/x/exp/maps"
)

// Registry is the static set of local tools. It is immutable after
// construction, which keeps concurrent dialogue and stream requests free of
// tool-set races.
type Registry struct {
	tools map[string]Tool
	debug bool
}

// NewRegistry builds a registry from the given tools, keyed by their
// descriptor names.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{
		tools: make(map[string]Tool, len(tools)),
		debug: misc.Truthy(os.Getenv("DEBUG")),
	}
	for _, t := range tools {
		r.tools[t.Descriptor().Name] = t
	}
	return r
}

// DefaultRegistry returns the built-in tool set.
func DefaultRegistry() *Registry {
	return NewRegistry(Echo, WebsiteText, Shell)
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := maps.Keys(r.tools)
	slices.Sort(names)
	return names
}

// Descriptors returns the advertised schemas in name order. This is what
// goes out to the provider on every call.
func (r *Registry) Descriptors() []models.ToolDescriptor {
	out := make([]models.ToolDescriptor, 0, len(r.tools))
	for _, name := range r.Names() {
		out = append(out, r.tools[name].Descriptor())
	}
	return out
}

// Execute dispatches call to the tool registered under its exact name.
func (r *Registry) Execute(call models.ToolCall) (string, error) {
	tool, ok := r.Get(call.Name)
	if !ok {
		return "", NewUnknownToolError(call.Name)
	}
	if r.debug {
		ancli.Okf("executing tool: %v\n", call.Name)
	}
	return tool.Call(call.ArgumentsMap())
}

package tools

import (
	"fmt"

	"github.com/baalimago/dlai/internal/models"
)

// Tool is a local capability the assistant may invoke during a dialogue
// turn. Calls are synchronous and return a single string result.
type Tool interface {
	// Descriptor returns the schema advertised to the providers.
	Descriptor() models.ToolDescriptor
	// Call invokes the tool. Missing or mistyped arguments degrade to
	// sensible defaults where possible.
	Call(args map[string]any) (string, error)
}

// ErrUnknownTool signals a dispatch to a name the registry does not hold.
// It propagates and fails the dialogue turn.
type ErrUnknownTool struct {
	Name string
}

func NewUnknownToolError(name string) error {
	return &ErrUnknownTool{Name: name}
}

func (e *ErrUnknownTool) Error() string {
	return fmt.Sprintf("unknown tool: %v", e.Name)
}

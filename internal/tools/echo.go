package tools

import (
	"fmt"

	"github.com/baalimago/dlai/internal/models"
)

type EchoTool models.ToolDescriptor

// Echo is a deterministic diagnostic tool, it lets the tool loop be
// exercised without touching the host system.
var Echo = EchoTool{
	Name:        "mock_echo",
	Description: "Echo the provided text back to the caller.",
	Parameters: models.ParameterSchema{
		Type: "object",
		Properties: map[string]models.ParameterProperty{
			"text": {
				Type:        "string",
				Description: "The text to echo.",
			},
		},
		Required: []string{"text"},
	},
}

func (e EchoTool) Call(args map[string]any) (string, error) {
	text, _ := args["text"].(string)
	return fmt.Sprintf("Echo: %v", text), nil
}

func (e EchoTool) Descriptor() models.ToolDescriptor {
	return models.ToolDescriptor(Echo)
}

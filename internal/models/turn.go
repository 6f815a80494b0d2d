package models

import "encoding/json"

// ToolCall is an assistant's request to invoke a local tool. Arguments is
// either a decoded JSON object or, when the provider sent something
// undecodable, the raw string it arrived as.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments any    `json:"arguments"`
}

// NormalizeArguments decodes string-encoded arguments. Some providers send
// the arguments object as a JSON string, decode it when possible and keep
// the raw string when not. Normalization never fails a turn.
func NormalizeArguments(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return s
	}
	return decoded
}

// ArgumentsMap projects the arguments to a map, returning an empty map for
// absent or non-object arguments so tools can degrade to defaults.
func (t ToolCall) ArgumentsMap() map[string]any {
	if m, ok := t.Arguments.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// AssistantTurn is one provider response: optional text plus zero or more
// tool calls in provider order.
type AssistantTurn struct {
	Content   string
	ToolCalls []ToolCall
}

// ParameterProperty describes a single tool parameter.
type ParameterProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ParameterSchema is the JSON Schema subset both providers accept for tool
// parameter declarations.
type ParameterSchema struct {
	Type       string                       `json:"type"`
	Properties map[string]ParameterProperty `json:"properties"`
	Required   []string                     `json:"required"`
}

// ToolDescriptor advertises one local tool to the providers.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  ParameterSchema `json:"parameters"`
}

package models

import (
	"errors"
	"fmt"
)

// Role is the canonical author of a ChatMessage. The set is closed, matching
// the roles both providers understand.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}

// ChatMessage is one entry of a conversation, independent of any provider
// wire format. ToolCallID is set exactly when Role is RoleTool, linking the
// message to the assistant tool call it answers.
type ChatMessage struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	Content    string `json:"content"`
	ToolCallID string `json:"toolCallId,omitempty"`
}

func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{ID: NextID("msg"), Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) ChatMessage {
	return ChatMessage{ID: NextID("msg"), Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string) ChatMessage {
	return ChatMessage{ID: NextID("msg"), Role: RoleAssistant, Content: content}
}

func NewToolMessage(toolCallID, content string) ChatMessage {
	return ChatMessage{ID: NextID("msg"), Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// Provider tags one of the supported LLM backends. The set is closed, codecs
// are selected by an explicit switch on this tag.
type Provider string

const (
	ProviderVllm   Provider = "vllm"
	ProviderOllama Provider = "ollama"
)

func (p Provider) Valid() bool {
	return p == ProviderVllm || p == ProviderOllama
}

// ErrUnsupportedProvider marks a provider tag outside the closed set. It is
// a caller error, not a transport one.
var ErrUnsupportedProvider = errors.New("unsupported provider")

func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, s)
	}
	return p, nil
}

// ProviderConnection is the read-only connection info a codec needs. BaseURL
// is expected to be normalized (trimmed, no trailing slash) by the
// configuration layer before it gets here.
type ProviderConnection struct {
	BaseURL string  `json:"baseUrl"`
	APIKey  *string `json:"apiKey"`
}

// Model describes one model a provider advertises.
type Model struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Provider Provider `json:"provider"`
}

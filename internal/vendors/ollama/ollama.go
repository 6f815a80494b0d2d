// Package ollama implements the wire codec for Ollama's native chat API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

const (
	chatPath = "/api/chat"
	tagsPath = "/api/tags"
)

type Codec struct {
	client *http.Client
	debug  bool
}

func New(client *http.Client) Codec {
	return Codec{client: client, debug: misc.Truthy(os.Getenv("DEBUG"))}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
	Tools    []wireTool    `json:"tools,omitempty"`
	Stream   bool          `json:"stream"`
}

// wireMessage drops the tool call id, Ollama's wire format has none.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireTool struct {
	Type     string                `json:"type"`
	Function models.ToolDescriptor `json:"function"`
}

type wireToolCall struct {
	Function struct {
		Name      string `json:"name"`
		Arguments any    `json:"arguments"`
	} `json:"function"`
}

type wireResponseMessage struct {
	Content   string         `json:"content"`
	ToolCalls []wireToolCall `json:"tool_calls"`
}

type chatResponse struct {
	Message *wireResponseMessage `json:"message"`
}

func toWireMessages(messages []models.ChatMessage) []wireMessage {
	out := make([]wireMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, wireMessage{Role: string(msg.Role), Content: msg.Content})
	}
	return out
}

func wrapTools(toolDefs []models.ToolDescriptor) []wireTool {
	out := make([]wireTool, 0, len(toolDefs))
	for _, def := range toolDefs {
		out = append(out, wireTool{Type: "function", Function: def})
	}
	return out
}

// Chat performs one non-streaming round trip. Tool call ids are synthesized,
// the wire carries none.
func (c Codec) Chat(ctx context.Context, conn models.ProviderConnection, model string, messages []models.ChatMessage, toolDefs []models.ToolDescriptor) (models.AssistantTurn, error) {
	payload := chatRequest{
		Model:    model,
		Messages: toWireMessages(messages),
		Tools:    wrapTools(toolDefs),
		Stream:   false,
	}
	if c.debug {
		ancli.Okf("ollama chat request: %v\n", debug.IndentedJsonFmt(payload))
	}
	req, err := c.newRequest(ctx, conn, http.MethodPost, chatPath, payload)
	if err != nil {
		return models.AssistantTurn{}, err
	}
	res, err := c.do(req)
	if err != nil {
		return models.AssistantTurn{}, err
	}
	defer res.Body.Close()

	var decoded chatResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return models.AssistantTurn{}, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if decoded.Message == nil {
		return models.AssistantTurn{}, fmt.Errorf("no response from provider")
	}

	turn := models.AssistantTurn{Content: decoded.Message.Content}
	for _, tc := range decoded.Message.ToolCalls {
		turn.ToolCalls = append(turn.ToolCalls, models.ToolCall{
			ID:        models.NextID("tool-call"),
			Name:      tc.Function.Name,
			Arguments: models.NormalizeArguments(tc.Function.Arguments),
		})
	}
	return turn, nil
}

func (c Codec) newRequest(ctx context.Context, conn models.ProviderConnection, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}
	req, err := http.NewRequestWithContext(ctx, method, conn.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if conn.APIKey != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", *conn.APIKey))
	}
	return req, nil
}

func (c Codec) do(req *http.Request) (*http.Response, error) {
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		return nil, models.NewBadStatusError(res.Status, string(body))
	}
	return res, nil
}

package dialogue

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baalimago/dlai/internal/config"
	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/dlai/internal/tools"
	"github.com/baalimago/dlai/internal/vendors"
)

func testStore(t *testing.T, modelID string) *config.Store {
	t.Helper()
	store, err := config.NewStore(filepath.Join(t.TempDir(), "llm-config.json"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if modelID != "" {
		if _, err := store.SelectModel(modelID); err != nil {
			t.Fatalf("failed to select model: %v", err)
		}
	}
	return store
}

func testEngine(t *testing.T, codec vendors.Codec) *Engine {
	t.Helper()
	return &Engine{
		store:    testStore(t, "demo-model"),
		registry: tools.NewRegistry(tools.Echo),
		codecFor: func(models.Provider) (vendors.Codec, error) { return codec, nil },
	}
}

func TestRunReturnsAssistantMessage(t *testing.T) {
	mock := &vendors.Mock{Turns: []models.AssistantTurn{{Content: "hello there"}}}
	engine := testEngine(t, mock)

	history := []models.ChatMessage{
		models.NewSystemMessage("be brief"),
		models.NewUserMessage("earlier"),
	}
	appended, err := engine.Run(context.Background(), history, "  question  ")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(appended) != 1 {
		t.Fatalf("got %d appended messages, want 1", len(appended))
	}
	if appended[0].Role != models.RoleAssistant || appended[0].Content != "hello there" {
		t.Errorf("unexpected appended message: %+v", appended[0])
	}
	if !strings.HasPrefix(appended[0].ID, "msg-") {
		t.Errorf("got id %q, want msg prefix", appended[0].ID)
	}

	sent := mock.Sent[0]
	if len(sent) != 3 {
		t.Fatalf("got %d sent messages, want history plus user message", len(sent))
	}
	last := sent[len(sent)-1]
	if last.Role != models.RoleUser || last.Content != "question" {
		t.Errorf("user message not appended trimmed: %+v", last)
	}
}

func TestRunRejectsEmptyInput(t *testing.T) {
	mock := &vendors.Mock{}
	engine := testEngine(t, mock)

	_, err := engine.Run(context.Background(), nil, "   \n\t ")
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("got %v, want ErrEmptyInput", err)
	}
	if mock.Calls != 0 {
		t.Errorf("empty input must fail before any provider call, got %d", mock.Calls)
	}
}

func TestRunRequiresSelectedModel(t *testing.T) {
	mock := &vendors.Mock{}
	engine := testEngine(t, mock)
	engine.store = testStore(t, "")

	_, err := engine.Run(context.Background(), nil, "hi")
	if !errors.Is(err, ErrNoModelSelected) {
		t.Fatalf("got %v, want ErrNoModelSelected", err)
	}
	if mock.Calls != 0 {
		t.Errorf("missing model must fail before any provider call, got %d", mock.Calls)
	}
}

func TestRunExecutesToolCalls(t *testing.T) {
	mock := &vendors.Mock{Turns: []models.AssistantTurn{
		{
			Content: "let me check",
			ToolCalls: []models.ToolCall{
				{ID: "tc-1", Name: "mock_echo", Arguments: map[string]any{"text": "ping"}},
			},
		},
		{Content: "the echo said ping"},
	}}
	engine := testEngine(t, mock)

	appended, err := engine.Run(context.Background(), nil, "run the echo")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(appended) != 3 {
		t.Fatalf("got %d appended messages, want 3", len(appended))
	}
	if appended[0].Role != models.RoleAssistant || appended[0].Content != "let me check" {
		t.Errorf("unexpected first message: %+v", appended[0])
	}
	if appended[1].Role != models.RoleTool || appended[1].ToolCallID != "tc-1" {
		t.Errorf("tool result not linked to its call: %+v", appended[1])
	}
	if appended[1].Content != "Echo: ping" {
		t.Errorf("got tool result %q, want Echo: ping", appended[1].Content)
	}
	if appended[2].Role != models.RoleAssistant || appended[2].Content != "the echo said ping" {
		t.Errorf("unexpected final message: %+v", appended[2])
	}

	if mock.Calls != 2 {
		t.Fatalf("got %d provider calls, want 2", mock.Calls)
	}
	followUp := mock.Sent[1]
	last := followUp[len(followUp)-1]
	if last.Role != models.RoleTool {
		t.Errorf("follow-up request must end with the tool result, got %+v", last)
	}
}

func TestRunBoundsToolLoop(t *testing.T) {
	mock := &vendors.Mock{Turns: []models.AssistantTurn{
		{ToolCalls: []models.ToolCall{
			{ID: "tc-loop", Name: "mock_echo", Arguments: map[string]any{"text": "again"}},
		}},
	}}
	engine := testEngine(t, mock)

	appended, err := engine.Run(context.Background(), nil, "loop forever")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if mock.Calls != 4 {
		t.Errorf("got %d provider calls, want at most 4", mock.Calls)
	}
	if len(appended) == 0 {
		t.Error("truncated dialogue must still return the appended messages")
	}
	for _, msg := range appended {
		if msg.Role != models.RoleTool {
			t.Errorf("expected only tool results, got %+v", msg)
		}
	}
}

func TestRunUnknownToolFailsTurn(t *testing.T) {
	mock := &vendors.Mock{Turns: []models.AssistantTurn{
		{ToolCalls: []models.ToolCall{{ID: "tc-1", Name: "rm_everything"}}},
	}}
	engine := testEngine(t, mock)

	_, err := engine.Run(context.Background(), nil, "try it")
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	var unknownErr *tools.ErrUnknownTool
	if !errors.As(err, &unknownErr) {
		t.Fatalf("got %v, want ErrUnknownTool", err)
	}
	if unknownErr.Name != "rm_everything" {
		t.Errorf("got tool name %q, want rm_everything", unknownErr.Name)
	}
	if mock.Calls != 1 {
		t.Errorf("turn must abort without a follow-up call, got %d", mock.Calls)
	}
}

func TestRunSkipsWhitespaceOnlyContent(t *testing.T) {
	mock := &vendors.Mock{Turns: []models.AssistantTurn{{Content: "   \n"}}}
	engine := testEngine(t, mock)

	appended, err := engine.Run(context.Background(), nil, "hi")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(appended) != 0 {
		t.Errorf("whitespace-only content must not be appended, got %+v", appended)
	}
}

func TestRunProviderErrorPropagates(t *testing.T) {
	mock := &vendors.Mock{Err: errors.New("connection refused")}
	engine := testEngine(t, mock)

	_, err := engine.Run(context.Background(), nil, "hi")
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	if !strings.Contains(err.Error(), "failed to complete chat") {
		t.Errorf("unexpected error: %v", err)
	}
}

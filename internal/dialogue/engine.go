// Package dialogue drives conversations against the configured provider,
// executing local tool calls between round trips.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/baalimago/dlai/internal/config"
	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/dlai/internal/tools"
	"github.com/baalimago/dlai/internal/vendors"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// maxToolRounds bounds the follow-up requests after the initial one, four
// requests in total. A provider that keeps calling tools gets cut off, the
// bound is what guarantees termination.
const maxToolRounds = 3

var (
	ErrEmptyInput      = errors.New("message cannot be empty")
	ErrNoModelSelected = errors.New("select a model before chatting")
)

// Engine runs the bounded request/tool loop. The codec is resolved per call
// from the active provider, so configuration changes apply to the next turn
// without a restart.
type Engine struct {
	store    *config.Store
	registry *tools.Registry
	codecFor func(models.Provider) (vendors.Codec, error)
	debug    bool
}

func NewEngine(store *config.Store, registry *tools.Registry, client *http.Client) *Engine {
	return &Engine{
		store:    store,
		registry: registry,
		codecFor: func(p models.Provider) (vendors.Codec, error) {
			return vendors.CodecFor(p, client)
		},
		debug: misc.Truthy(os.Getenv("DEBUG")),
	}
}

// target is everything preflight resolves before any network call.
type target struct {
	codec vendors.Codec
	conn  models.ProviderConnection
	model string
}

// preflight validates input and resolves the codec, connection and model.
// It fails without touching the network, so a misconfigured engine never
// produces a half-done request.
func (e *Engine) preflight(input string) (string, target, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", target{}, ErrEmptyInput
	}
	cfg := e.store.Configuration()
	if cfg.SelectedModel == nil {
		return "", target{}, ErrNoModelSelected
	}
	conn, ok := cfg.Connection(cfg.ActiveProvider)
	if !ok {
		return "", target{}, models.NewMissingProviderConfigError(cfg.ActiveProvider)
	}
	codec, err := e.codecFor(cfg.ActiveProvider)
	if err != nil {
		return "", target{}, err
	}
	return trimmed, target{codec: codec, conn: conn, model: *cfg.SelectedModel}, nil
}

// Run appends input as a user message and queries the provider until it
// stops calling tools or the round budget runs out, whichever comes first.
// It returns the messages appended after the user message, not the full
// history. Any tool failure, unknown names included, aborts the turn.
func (e *Engine) Run(ctx context.Context, history []models.ChatMessage, input string) ([]models.ChatMessage, error) {
	trimmed, tgt, err := e.preflight(input)
	if err != nil {
		return nil, err
	}

	conversation := append(slices.Clone(history), models.NewUserMessage(trimmed))
	toolDefs := e.registry.Descriptors()
	var appended []models.ChatMessage

	turn, err := tgt.codec.Chat(ctx, tgt.conn, tgt.model, conversation, toolDefs)
	if err != nil {
		return nil, fmt.Errorf("failed to complete chat: %w", err)
	}

	rounds := 0
	for {
		if e.debug {
			ancli.Okf("assistant turn with %v tool calls\n", len(turn.ToolCalls))
		}
		if strings.TrimSpace(turn.Content) != "" {
			msg := models.NewAssistantMessage(turn.Content)
			conversation = append(conversation, msg)
			appended = append(appended, msg)
		}
		if len(turn.ToolCalls) == 0 {
			break
		}
		for _, call := range turn.ToolCalls {
			result, err := e.registry.Execute(call)
			if err != nil {
				return nil, fmt.Errorf("failed to execute tool %v: %w", call.Name, err)
			}
			msg := models.NewToolMessage(call.ID, result)
			conversation = append(conversation, msg)
			appended = append(appended, msg)
		}
		rounds++
		if rounds > maxToolRounds {
			break
		}
		turn, err = tgt.codec.Chat(ctx, tgt.conn, tgt.model, conversation, toolDefs)
		if err != nil {
			return nil, fmt.Errorf("failed to complete chat: %w", err)
		}
	}
	return appended, nil
}

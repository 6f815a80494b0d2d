// Package app assembles the configuration store, tool registry and dialogue
// engine behind one facade. Every boundary, HTTP or CLI, goes through it.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/baalimago/dlai/internal/config"
	"github.com/baalimago/dlai/internal/dialogue"
	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/dlai/internal/tools"
	"github.com/baalimago/dlai/internal/vendors"
	"github.com/google/uuid"
)

type App struct {
	store    *config.Store
	registry *tools.Registry
	engine   *dialogue.Engine
	streamer *dialogue.Streamer
	codecFor func(models.Provider) (vendors.Codec, error)
}

// New wires the full application over store. Streaming turns deliver their
// events to sink.
func New(store *config.Store, sink dialogue.EventSink) *App {
	client := vendors.NewHTTPClient()
	registry := tools.DefaultRegistry()
	engine := dialogue.NewEngine(store, registry, client)
	return &App{
		store:    store,
		registry: registry,
		engine:   engine,
		streamer: dialogue.NewStreamer(engine, sink),
		codecFor: func(p models.Provider) (vendors.Codec, error) {
			return vendors.CodecFor(p, client)
		},
	}
}

// Configuration returns a snapshot of the current configuration.
func (a *App) Configuration() config.Configuration {
	return a.store.Configuration()
}

// ConfigPath returns the file the configuration persists to.
func (a *App) ConfigPath() string {
	return a.store.Path()
}

// SaveConfiguration validates, normalizes and persists next, returning the
// stored result.
func (a *App) SaveConfiguration(next config.Configuration) (config.Configuration, error) {
	return a.store.Replace(next)
}

// SelectModel persists the model selection, an empty id clears it.
func (a *App) SelectModel(modelID string) (config.Configuration, error) {
	return a.store.SelectModel(modelID)
}

// Tools returns the advertised tool schemas in name order.
func (a *App) Tools() []models.ToolDescriptor {
	return a.registry.Descriptors()
}

// ListModels queries the active provider, or the named one when override is
// non-empty, for its available models.
func (a *App) ListModels(ctx context.Context, override string) ([]models.Model, error) {
	return a.listModels(ctx, a.store.Configuration(), override)
}

func (a *App) listModels(ctx context.Context, cfg config.Configuration, override string) ([]models.Model, error) {
	provider := cfg.ActiveProvider
	if override != "" {
		parsed, err := models.ParseProvider(override)
		if err != nil {
			return nil, err
		}
		provider = parsed
	}
	conn, ok := cfg.Connection(provider)
	if !ok {
		return nil, models.NewMissingProviderConfigError(provider)
	}
	codec, err := a.codecFor(provider)
	if err != nil {
		return nil, err
	}
	found, err := codec.ListModels(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return found, nil
}

// RunDialogue appends input as a user message and runs the bounded dialogue
// loop, returning the newly appended messages.
func (a *App) RunDialogue(ctx context.Context, history []models.ChatMessage, input string) ([]models.ChatMessage, error) {
	return a.engine.Run(ctx, history, input)
}

// RunStream dispatches a streaming turn and returns the request id its
// events will be tagged with. A blank requestID gets a generated one.
func (a *App) RunStream(history []models.ChatMessage, input, requestID string) (string, error) {
	id := strings.TrimSpace(requestID)
	if id == "" {
		id = uuid.NewString()
	}
	if err := a.streamer.Run(history, input, id); err != nil {
		return "", err
	}
	return id, nil
}

package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baalimago/dlai/internal/dialogue"
	"github.com/baalimago/dlai/internal/models"
)

func setTestConfigPath(t *testing.T) {
	t.Helper()
	t.Setenv("DLAI_CONFIG_PATH", filepath.Join(t.TempDir(), "llm-config.json"))
}

func TestUsageListsAllCommands(t *testing.T) {
	for _, cmd := range []string{"help", "serve", "chat", "stream", "models", "config", "version"} {
		if !strings.Contains(usage, cmd) {
			t.Errorf("usage missing command %q", cmd)
		}
	}
}

func TestConfigureShowAndPath(t *testing.T) {
	setTestConfigPath(t)
	if err := configure([]string{"show"}); err != nil {
		t.Errorf("show failed: %v", err)
	}
	if err := configure([]string{"path"}); err != nil {
		t.Errorf("path failed: %v", err)
	}
}

func TestConfigureSelectsAndClearsModel(t *testing.T) {
	setTestConfigPath(t)
	if err := configure([]string{"model", "llama3:8b"}); err != nil {
		t.Fatalf("model selection failed: %v", err)
	}

	a, err := newApp(nil)
	if err != nil {
		t.Fatalf("failed to reload app: %v", err)
	}
	cfg := a.Configuration()
	if cfg.SelectedModel == nil || *cfg.SelectedModel != "llama3:8b" {
		t.Errorf("selection not persisted: %+v", cfg.SelectedModel)
	}

	if err := configure([]string{"model"}); err != nil {
		t.Fatalf("clearing selection failed: %v", err)
	}
	a, err = newApp(nil)
	if err != nil {
		t.Fatalf("failed to reload app: %v", err)
	}
	if got := a.Configuration().SelectedModel; got != nil {
		t.Errorf("selection not cleared: %v", *got)
	}
}

func TestConfigureSetsProvider(t *testing.T) {
	setTestConfigPath(t)
	if err := configure([]string{"provider", "ollama"}); err != nil {
		t.Fatalf("provider switch failed: %v", err)
	}
	a, err := newApp(nil)
	if err != nil {
		t.Fatalf("failed to reload app: %v", err)
	}
	if got := a.Configuration().ActiveProvider; got != models.ProviderOllama {
		t.Errorf("got provider %v, want ollama", got)
	}
}

func TestConfigureRejectsUnknownProvider(t *testing.T) {
	setTestConfigPath(t)
	if err := configure([]string{"provider", "anthropic"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestConfigureRejectsUnknownSubcommand(t *testing.T) {
	setTestConfigPath(t)
	if err := configure([]string{"frobnicate"}); err == nil {
		t.Error("expected error for unknown subcommand")
	}
}

func TestChatRequiresText(t *testing.T) {
	setTestConfigPath(t)
	if err := chat(context.Background(), nil); err == nil {
		t.Error("expected usage error without text")
	}
}

func TestChatRequiresSelectedModel(t *testing.T) {
	setTestConfigPath(t)
	err := chat(context.Background(), []string{"hi"})
	if !errors.Is(err, dialogue.ErrNoModelSelected) {
		t.Errorf("got %v, want ErrNoModelSelected", err)
	}
}

func TestStreamRequiresText(t *testing.T) {
	setTestConfigPath(t)
	if err := stream(context.Background(), nil); err == nil {
		t.Error("expected usage error without text")
	}
}

func TestListModelsRejectsUnknownProvider(t *testing.T) {
	setTestConfigPath(t)
	if err := listModels(context.Background(), []string{"bogus"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

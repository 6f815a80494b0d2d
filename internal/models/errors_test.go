package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMissingProviderConfigError(t *testing.T) {
	err := NewMissingProviderConfigError(ProviderOllama)
	mpc, ok := err.(*ErrMissingProviderConfig)
	if !ok {
		t.Fatalf("expected *ErrMissingProviderConfig, got %T", err)
	}
	if mpc.Provider != ProviderOllama {
		t.Fatalf("unexpected provider: %#v", mpc)
	}
	msg := mpc.Error()
	if !strings.Contains(msg, "no configuration for provider") || !strings.Contains(msg, "ollama") {
		t.Fatalf("unexpected error message: %q", msg)
	}
}

func TestMissingProviderConfigErrorMatchesWrapped(t *testing.T) {
	var target *ErrMissingProviderConfig
	wrapped := fmt.Errorf("failed to list models: %w", NewMissingProviderConfigError(ProviderVllm))
	if !errors.As(wrapped, &target) {
		t.Fatal("expected errors.As to match wrapped error")
	}
	if target.Provider != ProviderVllm {
		t.Fatalf("got provider %q, want vllm", target.Provider)
	}
}

func TestBadStatusErrorKeepsStatusAndBody(t *testing.T) {
	err := NewBadStatusError("404 Not Found", `{"error":"model not found"}`)
	var target *ErrBadStatus
	wrapped := fmt.Errorf("failed to complete chat: %w", err)
	if !errors.As(wrapped, &target) {
		t.Fatal("expected errors.As to match wrapped error")
	}
	if target.Status != "404 Not Found" {
		t.Fatalf("got status %q", target.Status)
	}
	msg := target.Error()
	if !strings.Contains(msg, "unexpected status code") || !strings.Contains(msg, "model not found") {
		t.Fatalf("unexpected error message: %q", msg)
	}
}

func TestUnsupportedProviderMatchesThroughParse(t *testing.T) {
	_, err := ParseProvider("anthropic")
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
	if !strings.Contains(err.Error(), `"anthropic"`) {
		t.Fatalf("expected offending tag in message, got %q", err.Error())
	}
}

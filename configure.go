package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// configure handles the config subcommands. Everything goes through the
// store, so every change lands on disk before the command returns.
func configure(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: dlai config <show|path|model|provider> [value]")
	}
	a, err := newApp(nil)
	if err != nil {
		return err
	}
	switch args[0] {
	case "show":
		doc, err := json.MarshalIndent(a.Configuration(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		fmt.Println(string(doc))
		return nil
	case "path":
		fmt.Println(a.ConfigPath())
		return nil
	case "model":
		modelID := ""
		if len(args) > 1 {
			modelID = args[1]
		}
		stored, err := a.SelectModel(modelID)
		if err != nil {
			return err
		}
		if stored.SelectedModel == nil {
			ancli.Okf("model selection cleared\n")
		} else {
			ancli.Okf("selected model: %v\n", *stored.SelectedModel)
		}
		return nil
	case "provider":
		if len(args) < 2 {
			return errors.New("usage: dlai config provider <vllm|ollama>")
		}
		provider, err := models.ParseProvider(args[1])
		if err != nil {
			return err
		}
		cfg := a.Configuration()
		cfg.ActiveProvider = provider
		if _, err := a.SaveConfiguration(cfg); err != nil {
			return err
		}
		ancli.Okf("active provider: %v\n", provider)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand: %v", args[0])
	}
}

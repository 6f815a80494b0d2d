package main

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/dlai/internal/app"
	"github.com/baalimago/dlai/internal/config"
	"github.com/baalimago/dlai/internal/dialogue"
	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/joho/godotenv"
)

const usage = `dlai - (d)esktop (l)ocal (a)rtificial (i)ntelligence

Backend for chatting with self-hosted models over vllm or Ollama.

Prerequisites:
  - A vllm server (default http://127.0.0.1:8000) or an Ollama
    server (default http://127.0.0.1:11434)
  - (Optional) Set DLAI_CONFIG_PATH to override the configuration location.
    A directory gets the default filename appended, anything else is used
    as the file path.
  - (Optional) Set DEBUG=true for verbose logging

Usage: dlai <command> [args]

Commands:
  h|help                      Display this help message
  s|serve [-addr host:port]   Serve the HTTP API and the websocket event
                              feed (default 127.0.0.1:8175)
  c|chat <text>               Run one dialogue turn against the active
                              provider and print the reply
  st|stream <text>            Stream one turn, printing text as it arrives
  m|models [provider]         List the models a provider advertises
  conf|config show            Print the current configuration
  conf|config path            Print the configuration file path
  conf|config model [id]      Select the model to chat with, no id clears
                              the selection
  conf|config provider <name> Set the active provider, vllm or ollama
  v|version                   Print the build version

Examples:
  - dlai serve -addr 127.0.0.1:9000
  - dlai models ollama
  - dlai config provider ollama
  - dlai config model llama3:8b
  - dlai chat What does the fox say?
`

// newApp resolves the configuration path and wires the application. Stream
// events go to sink, pass nil for commands that do not stream.
func newApp(sink dialogue.EventSink) (*app.App, error) {
	path, err := config.ResolvePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	store, err := config.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config store: %w", err)
	}
	if sink == nil {
		sink = func(models.StreamEvent) {}
	}
	return app.New(store, sink), nil
}

func main() {
	ancli.SetupSlog()
	// Most setups have no .env file, absence is fine.
	_ = godotenv.Load()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { shutdown.Monitor(cancel) }()

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "h", "help":
		fmt.Print(usage)
	case "s", "serve":
		err = serve(ctx, rest)
	case "c", "chat":
		err = chat(ctx, rest)
	case "st", "stream":
		err = stream(ctx, rest)
	case "m", "models":
		err = listModels(ctx, rest)
	case "conf", "config":
		err = configure(rest)
	case "v", "version":
		err = printVersion()
	default:
		fmt.Print(usage)
		err = fmt.Errorf("unknown command: %v", cmd)
	}
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to run %v: %v\n", cmd, err))
		os.Exit(1)
	}
	cancel()
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("all done, bye bye!\n")
	}
}

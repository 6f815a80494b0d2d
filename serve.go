package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/baalimago/dlai/internal/app"
	"github.com/baalimago/dlai/internal/bridge"
	"github.com/baalimago/dlai/internal/config"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

const defaultAddr = "127.0.0.1:8175"

// serve runs the HTTP API until ctx cancels, then drains connections for up
// to ten seconds.
func serve(ctx context.Context, args []string) error {
	flagSet := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flagSet.String("addr", defaultAddr, "host:port to bind the API server to")
	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("failed to parse serve flags: %w", err)
	}

	path, err := config.ResolvePath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	store, err := config.NewStore(path)
	if err != nil {
		return fmt.Errorf("failed to open config store: %w", err)
	}

	hub := bridge.NewHub()
	a := app.New(store, hub.Emit)
	server := &http.Server{Addr: *addr, Handler: bridge.NewRouter(a, hub)}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()
	ancli.Okf("serving on http://%v, config at %v\n", *addr, store.Path())

	select {
	case err := <-serveErr:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

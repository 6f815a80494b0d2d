package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// chat runs one dialogue turn and prints every appended message. Tool
// results show up between the assistant replies.
func chat(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: dlai chat <text>")
	}
	a, err := newApp(nil)
	if err != nil {
		return err
	}
	appended, err := a.RunDialogue(ctx, nil, strings.Join(args, " "))
	if err != nil {
		return err
	}
	for _, msg := range appended {
		printMessage(msg)
	}
	return nil
}

// stream runs one streaming turn, printing text as it arrives and blocking
// until the terminal event.
func stream(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: dlai stream <text>")
	}
	done := make(chan error, 1)
	sink := func(event models.StreamEvent) {
		switch event.Type {
		case models.StreamEventAnswer:
			fmt.Print(event.Delta)
		case models.StreamEventDone:
			fmt.Println()
			done <- nil
		case models.StreamEventError:
			fmt.Println()
			done <- errors.New(event.Message)
		}
	}
	a, err := newApp(sink)
	if err != nil {
		return err
	}
	if _, err := a.RunStream(nil, strings.Join(args, " "), ""); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// listModels prints what the active, or named, provider advertises.
func listModels(ctx context.Context, args []string) error {
	a, err := newApp(nil)
	if err != nil {
		return err
	}
	override := ""
	if len(args) > 0 {
		override = args[0]
	}
	found, err := a.ListModels(ctx, override)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		ancli.PrintWarn("no models found, is the provider running?\n")
		return nil
	}
	for _, m := range found {
		fmt.Printf("%v\t%v\n", m.ID, m.Label)
	}
	return nil
}

func printMessage(msg models.ChatMessage) {
	color := ancli.BLUE
	switch msg.Role {
	case models.RoleUser:
		color = ancli.CYAN
	case models.RoleTool:
		color = ancli.MAGENTA
	}
	fmt.Printf("%v: %v\n", ancli.ColoredMessage(color, string(msg.Role)), msg.Content)
}

package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"elide/internal/driver"
	"elide/internal/ui"
)

type batchOutcome struct {
	results []driver.Result
	err     error
}

// runWithUI runs the batch while a Bubble Tea program renders driver events.
func runWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		opts.Observer = func(ev driver.Event) { events <- ev }
		res, err := driver.Run(ctx, files, opts)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		cancel()
	}
	// keep draining so workers never block on a dead UI
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

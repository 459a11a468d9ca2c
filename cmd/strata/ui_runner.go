package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"strata/internal/driver"
	"strata/internal/ui"
)

type checkOutcome struct {
	results []*driver.Result
	err     error
}

func runCheckWithUI(ctx context.Context, title string, entries []string, opts driver.Options) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.Check(ctx, entries, opts)
		outcomeCh <- checkOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, entries, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

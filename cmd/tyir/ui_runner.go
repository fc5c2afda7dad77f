package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tyir/internal/driver"
	"tyir/internal/ui"
)

type lowerOutcome struct {
	results []driver.FileResult
	err     error
}

// runLowerWithUI runs LowerFiles in the background while a Bubble Tea
// progress view consumes its events.
func runLowerWithUI(ctx context.Context, title string, files []string, opts driver.LowerOptions) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lowerOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.LowerFiles(ctx, files, opts)
		outcomeCh <- lowerOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал: дочитываем события, чтобы воркеры не встали
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

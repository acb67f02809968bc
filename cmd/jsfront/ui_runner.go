package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"jsfront/internal/driver"
	"jsfront/internal/ui"
)

type analyzeOutcome struct {
	result *driver.DirResult
	err    error
}

// runCheckWithUI analyzes paths while a progress view follows the events of
// files. Closing the view early cancels the analysis.
func runCheckWithUI(ctx context.Context, out io.Writer, title string, files, paths []string, opts driver.Options) (*driver.DirResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.AnalyzePaths(ctx, paths, optsCopy)
		outcomeCh <- analyzeOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	final, uiErr := program.Run()
	if m, ok := final.(interface{ Interrupted() bool }); uiErr != nil || (ok && m.Interrupted()) {
		cancel()
	}
	// воркеры не должны зависнуть на полном канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

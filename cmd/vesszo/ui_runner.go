package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vesszo/internal/detector"
	"vesszo/internal/driver"
	"vesszo/internal/source"
	"vesszo/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.Result
	err     error
}

// runCheckWithUI checks files while a Bubble Tea view on stderr follows the
// driver events. Findings are rendered by the caller after the view quits.
func runCheckWithUI(ctx context.Context, title string, files []string, set detector.Set, opts driver.Options) (*source.FileSet, []driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		fs, results, err := driver.CheckPaths(ctx, files, set, optsCopy)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// канал должен опустошаться, иначе проверка заблокируется
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

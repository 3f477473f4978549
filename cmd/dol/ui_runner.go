package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"dol/internal/driver"
	"dol/internal/source"
	"dol/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runCheckWithUI analyzes files while a progress view renders to out.
func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options, out io.Writer) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChanSink(events)
		fs, results, err := driver.AnalyzePaths(ctx, files, o)
		outcomeCh <- checkOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	// the view may quit early (ctrl+c); keep the producer unblocked
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

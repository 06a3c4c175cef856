package main

import (
	"context"
	"fmt"
	"os"

	"focusflow/internal/config"
	"focusflow/internal/model"
	"focusflow/internal/motivator"
	"focusflow/internal/store"
	"focusflow/internal/timer"
	"focusflow/internal/tracker"
	"focusflow/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	backend, err := store.NewDiskBackend(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening data dir: %v\n", err)
		os.Exit(1)
	}

	s := store.New(backend)
	tr := tracker.Open(s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Watch(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: change watching disabled: %v\n", err)
	}

	if err := tr.EnsureLog(model.Today()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	eng := timer.New(tr.Settings())
	gen := motivator.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)

	app := tui.NewApp(tr, eng, gen, s.Changes())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

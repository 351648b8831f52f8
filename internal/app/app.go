package app

import (
	"errors"

	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	StartTab   string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model := ui.NewModel(cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, cfg.StartTab)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	events.App.Stop("program exit")
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/ports"
)

// Program runs the terminal form
type Program struct {
	program *tea.Program
	logger  *zap.Logger
}

var _ ports.Shell = (*Program)(nil)

// NewProgram creates a terminal shell. Nil in and out use the process terminal.
func NewProgram(model Model, in io.Reader, out io.Writer, logger *zap.Logger) *Program {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return &Program{
		program: tea.NewProgram(model, opts...),
		logger:  logger,
	}
}

// Start runs the program until the user quits
func (p *Program) Start() error {
	p.logger.Debug("Terminal shell starting")
	if _, err := p.program.Run(); err != nil {
		return fmt.Errorf("terminal shell failed: %w", err)
	}
	return nil
}

// Stop asks the program to quit
func (p *Program) Stop() error {
	p.program.Quit()
	return nil
}

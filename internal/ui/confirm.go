package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/vietdv277/stratus/internal/operation"
)

// confirmModel is a single y/N question.
type confirmModel struct {
	question string
	answered bool
	yes      bool
}

// Init implements tea.Model.
func (m confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
		m.answered = true
		return m, tea.Quit
	case tea.KeyRunes:
		switch key.String() {
		case "y", "Y":
			m.answered = true
			m.yes = true
			return m, tea.Quit
		case "n", "N":
			m.answered = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	return WarningStyle.Render("? ") + m.question + HintStyle.Render(" [y/N] ")
}

// Prompt confirms mutating operations on the terminal.
type Prompt struct {
	In  io.Reader
	Out io.Writer
	// Interactive is false when there is no terminal to ask on. Confirm then
	// declines with operation.ErrDeclined.
	Interactive bool
}

// NewPrompt returns a Prompt reading stdin and drawing on stderr.
func NewPrompt() *Prompt {
	fd := os.Stdin.Fd()
	return &Prompt{
		In:          os.Stdin,
		Out:         os.Stderr,
		Interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// Confirm implements operation.Confirmer.
func (p *Prompt) Confirm(ctx context.Context, d *operation.OperationDescriptor, target string) (bool, error) {
	if !p.Interactive {
		return false, fmt.Errorf("%w: stdin is not a terminal, use --force to run %s", operation.ErrDeclined, d.Command())
	}

	m := confirmModel{question: question(d, target)}
	prog := tea.NewProgram(m, tea.WithInput(p.In), tea.WithOutput(p.Out), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return false, fmt.Errorf("error running prompt: %w", err)
	}
	return final.(confirmModel).yes, nil
}

func question(d *operation.OperationDescriptor, target string) string {
	if target == "" {
		return fmt.Sprintf("Run %s?", NameStyle.Render(d.Command()))
	}
	return fmt.Sprintf("Run %s on %s?", NameStyle.Render(d.Command()), IDStyle.Render(target))
}

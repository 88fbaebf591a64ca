package picker

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/widget-remote/internal/theme"
)

// ErrCancelled is returned when the user leaves the picker without a choice.
var ErrCancelled = errors.New("picker: cancelled")

// Run shows entries on the terminal and blocks until one is chosen.
func Run(ctx context.Context, title string, entries []Entry, styles *theme.Styles, in io.Reader, out io.Writer) (Entry, error) {
	model := New(title, entries, styles)
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return Entry{}, err
	}
	m, ok := final.(*Model)
	if !ok {
		return Entry{}, ErrCancelled
	}
	if entry, ok := m.Chosen(); ok {
		return entry, nil
	}
	return Entry{}, ErrCancelled
}

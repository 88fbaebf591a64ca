package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atomicstack/widget-remote/internal/client"
	"github.com/atomicstack/widget-remote/internal/dispatcher"
	"github.com/atomicstack/widget-remote/internal/picker"
	"github.com/atomicstack/widget-remote/internal/widget"
)

var errNotInteractive = errors.New("pick needs an interactive terminal")

func newPickCommand(o *options) *cobra.Command {
	var value string
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a widget and an action interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, ok := cmd.InOrStdin().(*os.File)
			if !ok || !term.IsTerminal(int(in.Fd())) {
				return errNotInteractive
			}
			c, err := o.client()
			if err != nil {
				return err
			}
			widgets, err := c.Widgets(cmd.Context(), client.Selector{})
			if err != nil {
				return err
			}

			w, err := pickWidget(cmd, o, widgets)
			if err != nil {
				return err
			}
			name, err := pickFrom(cmd, o, "Action for "+widgetName(w), w.Actions)
			if err != nil {
				return err
			}
			action := client.Action{Selector: selectorFor(w), Name: name}
			switch {
			case cmd.Flags().Changed("value"):
				action.Value = ptr(value)
			case needsValue(name):
				v, err := promptValue(cmd, o, w, name)
				if err != nil {
					return err
				}
				action.Value = ptr(v)
			}

			if err := perform(cmd, c, action); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), o.styles.Success.Render("ok")+" "+
				o.styles.Action.Render(action.Name)+" "+selectorLabel(action.Selector))
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "value for enter_text or select instead of prompting")
	return cmd
}

func pickWidget(cmd *cobra.Command, o *options, widgets []client.Widget) (client.Widget, error) {
	var entries []picker.Entry
	for i, w := range widgets {
		if len(w.Actions) == 0 {
			continue
		}
		entries = append(entries, picker.Entry{ID: strconv.Itoa(i), Label: widgetName(w), Detail: w.Class})
	}
	if len(entries) == 0 {
		return client.Widget{}, errors.New("no widget accepts actions")
	}
	entry, err := picker.Run(cmd.Context(), "Widget", entries, o.styles, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return client.Widget{}, err
	}
	idx, err := strconv.Atoi(entry.ID)
	if err != nil {
		return client.Widget{}, err
	}
	return widgets[idx], nil
}

// pickFrom skips the picker when there is only one choice.
func pickFrom(cmd *cobra.Command, o *options, title string, choices []string) (string, error) {
	if len(choices) == 1 {
		return choices[0], nil
	}
	entries := make([]picker.Entry, len(choices))
	for i, c := range choices {
		entries[i] = picker.Entry{ID: c, Label: c}
	}
	entry, err := picker.Run(cmd.Context(), title, entries, o.styles, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

// selectorFor builds the narrowest selector for w: its id when set,
// otherwise its label, always with its class.
func selectorFor(w client.Widget) client.Selector {
	sel := client.Selector{Type: ptr(w.Class)}
	if w.ID != "" {
		sel.ID = ptr(w.ID)
	} else {
		sel.Label = ptr(w.Label)
	}
	return sel
}

func needsValue(action string) bool {
	return action == string(dispatcher.ActionEnterText) || action == string(dispatcher.ActionSelect)
}

// promptValue lets the user pick one of w's items for select, or reads a
// line of text. Tree and menu items are addressed by path, so they are typed.
func promptValue(cmd *cobra.Command, o *options, w client.Widget, action string) (string, error) {
	byPath := w.Kind == widget.KindTree.String() || w.Kind == widget.KindMenuButton.String()
	if action == string(dispatcher.ActionSelect) && len(w.Items) > 0 && !byPath {
		return pickFrom(cmd, o, "Item of "+widgetName(w), w.Items)
	}
	prompt := "value: "
	if byPath {
		prompt = "path (" + widget.PathDelimiter + " separated): "
	}
	fmt.Fprint(cmd.OutOrStdout(), o.styles.FilterPrompt.Render(prompt))
	return readLine(cmd.InOrStdin())
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

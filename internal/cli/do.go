package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomicstack/widget-remote/internal/client"
)

func newDoCommand(o *options) *cobra.Command {
	var (
		sel    selectorFlags
		value  string
		column int
	)
	cmd := &cobra.Command{
		Use:   "do ACTION",
		Short: "Perform an action on one widget",
		Long: `do sends ACTION (press, check, uncheck, toggle, enter_text or select) to
the single widget matched by --id, --label and --type.`,
		Example: `  widget-remote do press --label OK
  widget-remote do enter_text --id name --value "Ada"
  widget-remote do select --type Table --value vim --column 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			action := client.Action{Selector: sel.selector(cmd), Name: args[0]}
			if cmd.Flags().Changed("value") {
				action.Value = ptr(value)
			}
			if cmd.Flags().Changed("column") {
				action.Column = ptr(column)
			}
			if err := perform(cmd, c, action); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), o.styles.Success.Render("ok")+" "+
				o.styles.Action.Render(action.Name)+" "+selectorLabel(action.Selector))
			return nil
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVar(&value, "value", "", "text to enter or item to select (tree paths use ::)")
	cmd.Flags().IntVar(&column, "column", 0, "table column to match --value against")
	return cmd
}

// perform runs one action. A rejected action name gets the closest known
// action appended, an unmatched label the closest label in the dialog.
func perform(cmd *cobra.Command, c *client.Client, action client.Action) error {
	err := c.Do(cmd.Context(), action)
	if err == nil {
		return nil
	}
	var httpErr *client.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	if !knownAction(action.Name) {
		if s, ok := suggestAction(action.Name); ok {
			return fmt.Errorf("%w (did you mean %q?)", err, s)
		}
	}
	if httpErr.Message == msgWidgetNotFound && action.Selector.Label != nil {
		widgets, lerr := c.Widgets(cmd.Context(), client.Selector{})
		if lerr != nil {
			return err
		}
		labels := make([]string, 0, len(widgets))
		for _, w := range widgets {
			labels = append(labels, w.Label)
		}
		if s, ok := suggestLabel(*action.Selector.Label, labels); ok {
			return fmt.Errorf("%w (did you mean %q?)", err, s)
		}
	}
	return err
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/widget-remote/internal/client"
	"github.com/atomicstack/widget-remote/internal/format/table"
	"github.com/atomicstack/widget-remote/internal/picker"
	"github.com/atomicstack/widget-remote/internal/theme"
)

const maxValueWidth = 40

func newWidgetsCommand(o *options) *cobra.Command {
	var (
		sel    selectorFlags
		filter string
		items  bool
	)
	cmd := &cobra.Command{
		Use:     "widgets",
		Aliases: []string{"ls"},
		Short:   "List the widgets of the open dialog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			widgets, err := c.Widgets(cmd.Context(), sel.selector(cmd))
			if err != nil {
				return err
			}
			if filter != "" {
				widgets = filterWidgets(widgets, filter)
			}
			out := cmd.OutOrStdout()
			if len(widgets) == 0 {
				fmt.Fprintln(out, o.styles.Info.Render("no widgets"))
				return nil
			}
			for _, line := range widgetTable(widgets, o.styles) {
				fmt.Fprintln(out, line)
			}
			if items {
				for _, w := range widgets {
					writeItems(cmd, w, o.styles)
				}
			}
			return nil
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "fuzzy filter on label and id")
	cmd.Flags().BoolVar(&items, "items", false, "also list the items of list-like widgets")
	return cmd
}

// filterWidgets keeps widgets whose label or id fuzzily matches query.
func filterWidgets(widgets []client.Widget, query string) []client.Widget {
	byKey := make(map[string]client.Widget, len(widgets))
	entries := make([]picker.Entry, len(widgets))
	for i, w := range widgets {
		key := fmt.Sprintf("%d", i)
		byKey[key] = w
		entries[i] = picker.Entry{ID: key, Label: widgetName(w)}
	}
	var out []client.Widget
	for _, e := range picker.FilterEntries(entries, query) {
		out = append(out, byKey[e.ID])
	}
	return out
}

func widgetName(w client.Widget) string {
	switch {
	case w.Label != "" && w.ID != "":
		return w.Label + " " + w.ID
	case w.Label != "":
		return w.Label
	default:
		return w.ID
	}
}

func widgetTable(widgets []client.Widget, styles *theme.Styles) []string {
	rows := [][]string{{"CLASS", "ID", "LABEL", "VALUE", "ACTIONS"}}
	for _, w := range widgets {
		rows = append(rows, []string{w.Class, w.ID, w.Label, w.Value, strings.Join(w.Actions, ",")})
	}
	return table.Format(rows, []table.Column{
		{Style: styles.Class},
		{Style: styles.ID},
		{Style: styles.Label, MaxWidth: maxValueWidth},
		{Style: styles.Value, MaxWidth: maxValueWidth},
		{Style: styles.Action},
	})
}

func writeItems(cmd *cobra.Command, w client.Widget, styles *theme.Styles) {
	if len(w.Items) == 0 {
		return
	}
	selected := make(map[string]bool, len(w.Selected))
	for _, s := range w.Selected {
		selected[s] = true
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render(widgetName(w)))
	for _, item := range w.Items {
		mark := "  "
		if selected[item] {
			mark = styles.Success.Render("* ")
		}
		fmt.Fprintln(out, mark+styles.Item.Render(item))
	}
}

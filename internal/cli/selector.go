package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/widget-remote/internal/client"
)

// selectorFlags binds --id, --label and --type. A flag that was given with
// an empty value still selects, so `--label ""` matches unlabeled widgets.
type selectorFlags struct {
	id, label, kind string
}

func (s *selectorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.id, "id", "", "match the widget id")
	cmd.Flags().StringVar(&s.label, "label", "", "match the widget label")
	cmd.Flags().StringVar(&s.kind, "type", "", "match the widget class (YCheckBox) or kind (CheckBox)")
}

func (s *selectorFlags) selector(cmd *cobra.Command) client.Selector {
	var sel client.Selector
	if cmd.Flags().Changed("id") {
		sel.ID = ptr(s.id)
	}
	if cmd.Flags().Changed("label") {
		sel.Label = ptr(s.label)
	}
	if cmd.Flags().Changed("type") {
		sel.Type = ptr(s.kind)
	}
	return sel
}

func selectorLabel(sel client.Selector) string {
	var parts []string
	if sel.ID != nil {
		parts = append(parts, "id="+*sel.ID)
	}
	if sel.Label != nil {
		parts = append(parts, "label="+*sel.Label)
	}
	if sel.Type != nil {
		parts = append(parts, "type="+*sel.Type)
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func ptr[T any](v T) *T { return &v }

package dispatcher

import (
	"io"

	"github.com/atomicstack/widget-remote/internal/widget"
)

// SelectorState is the target state for an item selector entry.
type SelectorState int

const (
	// SelectorToggle flips the current state. It is the zero value.
	SelectorToggle SelectorState = iota
	SelectorDeselect
	SelectorSelect
)

func (s SelectorState) String() string {
	switch s {
	case SelectorToggle:
		return "toggle"
	case SelectorDeselect:
		return "deselect"
	case SelectorSelect:
		return "select"
	}
	return "unknown"
}

// next computes the new selected flag from the current one.
func (s SelectorState) next(current bool) bool {
	switch s {
	case SelectorToggle:
		return !current
	case SelectorDeselect:
		return false
	case SelectorSelect:
		return true
	}
	return current
}

func (d *Dispatcher) setItemSelectorState(w widget.Widget, action Action, value string, body io.Writer, state SelectorState) (Status, error) {
	return withWidgetAs(w, func(sel widget.ItemSelector) error {
		item, ok := sel.FindItem(value)
		if !ok {
			return itemNotFound(body, value, "item selector")
		}
		d.performed(action, sel, value)
		sel.SetKeyboardFocus()
		selected := state.next(item.Selected())
		item.SetSelected(selected)
		sel.SelectItem(item, selected)
		sel.ActivateItem(item)
		return nil
	})
}

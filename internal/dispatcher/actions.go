package dispatcher

import (
	"io"

	"github.com/atomicstack/widget-remote/internal/widget"
)

// Item lookups report misses with a plain-text line naming the value and the
// widget it was searched in.
func itemNotFound(body io.Writer, value, where string) error {
	writeLine(body, `"`+value+`" item cannot be found in the `+where)
	return newError(CodeItemNotFound, "item %q cannot be found in the %s", value, where).
		WithDetail("value", value)
}

func menuItemNotFound(body io.Writer, value string) error {
	writeLine(body, `Item with path: "`+value+`" cannot be found in the MenuButton widget`)
	return newError(CodeItemNotFound, "item with path %q cannot be found in the MenuButton widget", value).
		WithDetail("value", value)
}

func (d *Dispatcher) press(w widget.Widget, p Params, body io.Writer) (Status, error) {
	switch w.Kind() {
	case widget.KindPushButton:
		return withWidgetAs(w, func(b widget.PushButton) error {
			d.performed(ActionPress, b, b.Label())
			b.SetKeyboardFocus()
			b.Activate()
			return nil
		})
	case widget.KindRichText:
		return withWidgetAs(w, func(rt widget.RichText) error {
			d.performed(ActionPress, rt, p.Value)
			rt.SetKeyboardFocus()
			rt.ActivateLink(p.Value)
			return nil
		})
	case widget.KindMenuButton:
		return withWidgetAs(w, func(mb widget.MenuButton) error {
			item, ok := mb.FindMenuItem(widget.SplitPath(p.Value))
			if !ok {
				return menuItemNotFound(body, p.Value)
			}
			d.performed(ActionPress, mb, p.Value)
			mb.SetKeyboardFocus()
			mb.ActivateItem(item)
			return nil
		})
	case widget.KindUnknown, widget.KindCheckBox, widget.KindInputField, widget.KindIntField,
		widget.KindMultiLineEdit, widget.KindComboBox, widget.KindTable, widget.KindTree,
		widget.KindDumbTab, widget.KindRadioButton, widget.KindSelectionBox,
		widget.KindItemSelector, widget.KindLabel:
		return unsupported(w, body)
	}
	return unhandledKind(w, body)
}

func (d *Dispatcher) check(w widget.Widget, p Params, body io.Writer) (Status, error) {
	switch w.Kind() {
	case widget.KindCheckBox:
		return withWidgetAs(w, func(cb widget.CheckBox) error {
			if cb.IsChecked() {
				d.skipped(ActionCheck, cb)
				return nil
			}
			d.performed(ActionCheck, cb, cb.Label())
			cb.SetKeyboardFocus()
			cb.SetChecked(true)
			return nil
		})
	case widget.KindItemSelector:
		return d.setItemSelectorState(w, ActionCheck, p.Value, body, SelectorSelect)
	case widget.KindUnknown, widget.KindPushButton, widget.KindRichText, widget.KindMenuButton,
		widget.KindInputField, widget.KindIntField, widget.KindMultiLineEdit, widget.KindComboBox,
		widget.KindTable, widget.KindTree, widget.KindDumbTab, widget.KindRadioButton,
		widget.KindSelectionBox, widget.KindLabel:
		return unsupported(w, body)
	}
	return unhandledKind(w, body)
}

func (d *Dispatcher) uncheck(w widget.Widget, p Params, body io.Writer) (Status, error) {
	switch w.Kind() {
	case widget.KindCheckBox:
		return withWidgetAs(w, func(cb widget.CheckBox) error {
			if !cb.IsChecked() {
				d.skipped(ActionUncheck, cb)
				return nil
			}
			d.performed(ActionUncheck, cb, cb.Label())
			cb.SetKeyboardFocus()
			cb.SetChecked(false)
			return nil
		})
	case widget.KindItemSelector:
		return d.setItemSelectorState(w, ActionUncheck, p.Value, body, SelectorDeselect)
	case widget.KindUnknown, widget.KindPushButton, widget.KindRichText, widget.KindMenuButton,
		widget.KindInputField, widget.KindIntField, widget.KindMultiLineEdit, widget.KindComboBox,
		widget.KindTable, widget.KindTree, widget.KindDumbTab, widget.KindRadioButton,
		widget.KindSelectionBox, widget.KindLabel:
		return unsupported(w, body)
	}
	return unhandledKind(w, body)
}

func (d *Dispatcher) toggle(w widget.Widget, p Params, body io.Writer) (Status, error) {
	switch w.Kind() {
	case widget.KindCheckBox:
		return withWidgetAs(w, func(cb widget.CheckBox) error {
			d.performed(ActionToggle, cb, cb.Label())
			cb.SetKeyboardFocus()
			cb.SetChecked(!cb.IsChecked())
			return nil
		})
	case widget.KindItemSelector:
		return d.setItemSelectorState(w, ActionToggle, p.Value, body, SelectorToggle)
	case widget.KindUnknown, widget.KindPushButton, widget.KindRichText, widget.KindMenuButton,
		widget.KindInputField, widget.KindIntField, widget.KindMultiLineEdit, widget.KindComboBox,
		widget.KindTable, widget.KindTree, widget.KindDumbTab, widget.KindRadioButton,
		widget.KindSelectionBox, widget.KindLabel:
		return unsupported(w, body)
	}
	return unhandledKind(w, body)
}

func (d *Dispatcher) enterText(w widget.Widget, p Params, body io.Writer) (Status, error) {
	switch w.Kind() {
	case widget.KindInputField:
		return withWidgetAs(w, func(f widget.InputField) error {
			d.performed(ActionEnterText, f, f.Label())
			f.SetKeyboardFocus()
			f.SetValue(p.Value)
			return nil
		})
	case widget.KindIntField:
		return withWidgetAs(w, func(f widget.IntField) error {
			d.performed(ActionEnterText, f, f.Label())
			f.SetKeyboardFocus()
			f.SetIntValue(Atoi(p.Value))
			return nil
		})
	case widget.KindMultiLineEdit:
		return withWidgetAs(w, func(f widget.MultiLineEdit) error {
			d.performed(ActionEnterText, f, f.Label())
			f.SetKeyboardFocus()
			f.SetValue(p.Value)
			return nil
		})
	case widget.KindUnknown, widget.KindPushButton, widget.KindRichText, widget.KindMenuButton,
		widget.KindCheckBox, widget.KindComboBox, widget.KindTable, widget.KindTree,
		widget.KindDumbTab, widget.KindRadioButton, widget.KindSelectionBox,
		widget.KindItemSelector, widget.KindLabel:
		return unsupported(w, body)
	}
	return unhandledKind(w, body)
}

func (d *Dispatcher) selectItem(w widget.Widget, p Params, body io.Writer) (Status, error) {
	switch w.Kind() {
	case widget.KindComboBox:
		return withWidgetAs(w, func(cb widget.ComboBox) error {
			// combo boxes take focus before the lookup, unlike the other lists
			cb.SetKeyboardFocus()
			item, ok := cb.FindItem(p.Value)
			if !ok {
				return itemNotFound(body, p.Value, "combo box")
			}
			d.performed(ActionSelect, cb, cb.Label())
			cb.SelectItem(item)
			cb.Activate()
			return nil
		})
	case widget.KindTable:
		return withWidgetAs(w, func(tb widget.Table) error {
			item, ok := tb.FindItemInColumn(p.Value, p.Column)
			if !ok {
				return itemNotFound(body, p.Value, "table")
			}
			d.performed(ActionSelect, tb, tb.Label())
			tb.SetKeyboardFocus()
			tb.SelectItem(item)
			return nil
		})
	case widget.KindTree:
		return withWidgetAs(w, func(tr widget.Tree) error {
			item, ok := tr.FindItemByPath(widget.SplitPath(p.Value))
			if !ok {
				return itemNotFound(body, p.Value, "tree")
			}
			d.performed(ActionSelect, tr, item.Label())
			tr.SetKeyboardFocus()
			tr.SelectItem(item)
			tr.Activate()
			return nil
		})
	case widget.KindDumbTab:
		return withWidgetAs(w, func(tab widget.DumbTab) error {
			item, ok := tab.FindItem(p.Value)
			if !ok {
				return itemNotFound(body, p.Value, "tab")
			}
			d.performed(ActionSelect, tab, item.Label())
			tab.SetKeyboardFocus()
			tab.SelectItem(item)
			tab.Activate()
			return nil
		})
	case widget.KindRadioButton:
		return withWidgetAs(w, func(rb widget.RadioButton) error {
			d.performed(ActionSelect, rb, rb.Label())
			rb.SetKeyboardFocus()
			rb.SetSelected(true)
			return nil
		})
	case widget.KindSelectionBox:
		return withWidgetAs(w, func(sb widget.SelectionBox) error {
			item, ok := sb.FindItem(p.Value)
			if !ok {
				return itemNotFound(body, p.Value, "selection box")
			}
			d.performed(ActionSelect, sb, sb.Label())
			sb.SetKeyboardFocus()
			sb.SelectItem(item)
			return nil
		})
	case widget.KindItemSelector:
		return d.setItemSelectorState(w, ActionSelect, p.Value, body, SelectorSelect)
	case widget.KindUnknown, widget.KindPushButton, widget.KindRichText, widget.KindMenuButton,
		widget.KindCheckBox, widget.KindInputField, widget.KindIntField,
		widget.KindMultiLineEdit, widget.KindLabel:
		return unsupported(w, body)
	}
	return unhandledKind(w, body)
}

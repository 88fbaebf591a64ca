package dispatcher

import (
	"github.com/atomicstack/widget-remote/internal/widget"
	"github.com/tidwall/sjson"
)

// SupportedActions returns the actions Do accepts for kind.
func SupportedActions(kind widget.Kind) []Action {
	switch kind {
	case widget.KindPushButton, widget.KindRichText, widget.KindMenuButton:
		return []Action{ActionPress}
	case widget.KindCheckBox:
		return []Action{ActionCheck, ActionUncheck, ActionToggle}
	case widget.KindItemSelector:
		return []Action{ActionCheck, ActionUncheck, ActionToggle, ActionSelect}
	case widget.KindInputField, widget.KindIntField, widget.KindMultiLineEdit:
		return []Action{ActionEnterText}
	case widget.KindComboBox, widget.KindTable, widget.KindTree, widget.KindDumbTab,
		widget.KindRadioButton, widget.KindSelectionBox:
		return []Action{ActionSelect}
	case widget.KindUnknown, widget.KindLabel:
		return nil
	}
	return nil
}

// Describe dumps the widgets matching c as a JSON array. It shares the
// dialog and lookup checks of Handle but never mutates anything.
func (d *Dispatcher) Describe(c widget.Criteria) Result {
	if !d.locator.HasDialog() {
		return failure(ErrNoDialogOpen)
	}
	widgets := d.candidates(c)
	if len(widgets) == 0 {
		return failure(ErrWidgetNotFound)
	}

	doc := "[]"
	for _, w := range widgets {
		entry, err := describeWidget(w)
		if err != nil {
			d.log.Error().Err(err).Str("class", w.Class()).Msg("describe widget")
			continue
		}
		if doc, err = sjson.SetRaw(doc, "-1", entry); err != nil {
			d.log.Error().Err(err).Msg("append widget description")
		}
	}
	return Result{Status: StatusOK, Body: doc + "\n"}
}

type field struct {
	path  string
	value interface{}
}

func describeWidget(w widget.Widget) (string, error) {
	entry, err := sjson.Set("", "class", w.Class())
	if err != nil {
		return "", err
	}
	fields := []field{
		{"id", w.ID()},
		{"label", w.Label()},
		{"kind", w.Kind().String()},
		{"actions", actionNames(SupportedActions(w.Kind()))},
	}
	if v, ok := w.(widget.Valuer); ok {
		fields = append(fields, field{"value", v.CurrentValue()})
	}
	for _, f := range fields {
		if entry, err = sjson.Set(entry, f.path, f.value); err != nil {
			return "", err
		}
	}
	if lister, ok := w.(widget.ItemLister); ok {
		items := "[]"
		for _, item := range lister.Items() {
			raw, err := sjson.Set("", "label", item.Label())
			if err != nil {
				return "", err
			}
			if raw, err = sjson.Set(raw, "selected", item.Selected()); err != nil {
				return "", err
			}
			if items, err = sjson.SetRaw(items, "-1", raw); err != nil {
				return "", err
			}
		}
		if entry, err = sjson.SetRaw(entry, "items", items); err != nil {
			return "", err
		}
	}
	return entry, nil
}

func actionNames(actions []Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}

// Package memory is a headless widget toolkit. Widgets keep their state in
// memory and record every side effect in a Journal, which makes the host
// usable both as a scriptable sandbox and as a test double.
package memory

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/atomicstack/widget-remote/internal/layout"
	"github.com/atomicstack/widget-remote/internal/widget"
)

// Host owns at most one open dialog.
type Host struct {
	mu      sync.Mutex
	open    bool
	title   string
	widgets []widget.Widget
	journal *Journal
	redraws int

	// run serialises Do callers, standing in for a UI thread.
	run sync.Mutex
}

func NewHost() *Host {
	return &Host{journal: &Journal{}}
}

// Open replaces the current dialog.
func (h *Host) Open(title string, widgets ...widget.Widget) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, w := range widgets {
		if a, ok := w.(attacher); ok {
			a.attach(h.journal)
		}
	}
	h.open = true
	h.title = title
	h.widgets = append([]widget.Widget(nil), widgets...)
}

// Close removes the dialog.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open = false
	h.title = ""
	h.widgets = nil
}

func (h *Host) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

func (h *Host) HasDialog() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

func (h *Host) All() []widget.Widget {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]widget.Widget(nil), h.widgets...)
}

func (h *Host) Find(c widget.Criteria) []widget.Widget {
	return c.Filter(h.All())
}

// Do runs fn while holding the host's UI lock.
func (h *Host) Do(fn func()) {
	h.run.Lock()
	defer h.run.Unlock()
	fn()
}

// Redraw counts redraw requests; there is no screen to refresh.
func (h *Host) Redraw() {
	h.mu.Lock()
	h.redraws++
	h.mu.Unlock()
}

func (h *Host) Redraws() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.redraws
}

func (h *Host) Journal() *Journal {
	return h.journal
}

// FromLayout opens a dialog built from d.
func FromLayout(d layout.Dialog) (*Host, error) {
	widgets, err := Build(d)
	if err != nil {
		return nil, err
	}
	h := NewHost()
	h.Open(d.Title, widgets...)
	return h, nil
}

// Build creates widgets for every entry in d.
func Build(d layout.Dialog) ([]widget.Widget, error) {
	out := make([]widget.Widget, 0, len(d.Widgets))
	groups := make(map[string][]*RadioButton)
	var order []string
	for i, def := range d.Widgets {
		w, err := build(def)
		if err != nil {
			return nil, fmt.Errorf("widget %d: %w", i, err)
		}
		if rb, ok := w.(*RadioButton); ok && def.Group != "" {
			if _, seen := groups[def.Group]; !seen {
				order = append(order, def.Group)
			}
			groups[def.Group] = append(groups[def.Group], rb)
		}
		out = append(out, w)
	}
	for _, name := range order {
		Group(groups[name]...)
	}
	return out, nil
}

func build(def layout.Widget) (widget.Widget, error) {
	switch kind := def.Kind(); kind {
	case widget.KindPushButton:
		return NewPushButton(def.ID, def.Label), nil
	case widget.KindLabel:
		return NewLabel(def.ID, def.Label), nil
	case widget.KindRichText:
		return NewRichText(def.ID, def.Label, def.Value, def.Links...), nil
	case widget.KindMenuButton:
		return NewMenuButton(def.ID, def.Label, def.Items...), nil
	case widget.KindCheckBox:
		return NewCheckBox(def.ID, def.Label, def.Checked), nil
	case widget.KindInputField:
		return NewInputField(def.ID, def.Label, def.Value), nil
	case widget.KindIntField:
		lo, hi := def.Bounds()
		value, _ := strconv.Atoi(def.Value)
		return NewIntField(def.ID, def.Label, value, lo, hi), nil
	case widget.KindMultiLineEdit:
		return NewMultiLineEdit(def.ID, def.Label, def.Value), nil
	case widget.KindComboBox:
		cb := NewComboBox(def.ID, def.Label, def.Items...)
		preselect(&cb.list, def.Selected)
		return cb, nil
	case widget.KindSelectionBox:
		sb := NewSelectionBox(def.ID, def.Label, def.Items...)
		preselect(&sb.list, def.Selected)
		return sb, nil
	case widget.KindDumbTab:
		tab := NewDumbTab(def.ID, def.Label, def.Items...)
		preselect(&tab.list, def.Selected)
		return tab, nil
	case widget.KindTable:
		return NewTable(def.ID, def.Label, def.Columns, def.Rows...), nil
	case widget.KindTree:
		return NewTree(def.ID, def.Label, def.Items...), nil
	case widget.KindRadioButton:
		return NewRadioButton(def.ID, def.Label, def.Checked), nil
	case widget.KindItemSelector:
		sel := NewItemSelector(def.ID, def.Label, def.Items...)
		for _, label := range def.Selected {
			if it, ok := findByLabel(sel.items, label); ok {
				it.selected = true
			}
		}
		return sel, nil
	case widget.KindUnknown:
		return nil, fmt.Errorf("unknown type %q", def.Type)
	}
	return nil, fmt.Errorf("unknown type %q", def.Type)
}

// preselect marks the first listed label as current without recording an
// event.
func preselect(l *list, labels []string) {
	if len(labels) == 0 {
		return
	}
	if it, ok := findByLabel(l.items, labels[0]); ok {
		it.selected = true
		l.current = it
	}
}

package memory

import (
	"strconv"
	"strings"

	"github.com/atomicstack/widget-remote/internal/widget"
)

type base struct {
	kind    widget.Kind
	id      string
	label   string
	journal *Journal
}

func (b *base) Kind() widget.Kind { return b.kind }
func (b *base) Class() string     { return b.kind.Class() }
func (b *base) ID() string        { return b.id }
func (b *base) Label() string     { return b.label }

func (b *base) SetKeyboardFocus() bool {
	b.record("focus", "")
	return true
}

func (b *base) attach(j *Journal) { b.journal = j }

func (b *base) record(op, detail string) {
	key := b.id
	if key == "" {
		key = b.label
	}
	b.journal.record(key, op, detail)
}

type attacher interface {
	attach(*Journal)
}

type PushButton struct{ base }

func NewPushButton(id, label string) *PushButton {
	return &PushButton{base{kind: widget.KindPushButton, id: id, label: label}}
}

func (b *PushButton) Activate() { b.record("activate", "") }

type Label struct{ base }

func NewLabel(id, text string) *Label {
	return &Label{base{kind: widget.KindLabel, id: id, label: text}}
}

type RichText struct {
	base
	text  string
	links []string
}

func NewRichText(id, label, text string, links ...string) *RichText {
	return &RichText{base: base{kind: widget.KindRichText, id: id, label: label}, text: text, links: links}
}

// ActivateLink emits a link event whether or not url appears in the text,
// matching how rich text widgets forward hyperlink activations.
func (r *RichText) ActivateLink(url string)   { r.record("link", url) }
func (r *RichText) CurrentValue() interface{} { return r.text }

type CheckBox struct {
	base
	checked bool
}

func NewCheckBox(id, label string, checked bool) *CheckBox {
	return &CheckBox{base: base{kind: widget.KindCheckBox, id: id, label: label}, checked: checked}
}

func (c *CheckBox) IsChecked() bool { return c.checked }

func (c *CheckBox) SetChecked(checked bool) {
	c.checked = checked
	c.record("set", strconv.FormatBool(checked))
}

func (c *CheckBox) CurrentValue() interface{} { return c.checked }

type InputField struct {
	base
	value string
}

func NewInputField(id, label, value string) *InputField {
	return &InputField{base: base{kind: widget.KindInputField, id: id, label: label}, value: value}
}

func (f *InputField) Value() string { return f.value }

func (f *InputField) SetValue(v string) {
	f.value = v
	f.record("set", v)
}

func (f *InputField) CurrentValue() interface{} { return f.value }

type MultiLineEdit struct {
	base
	value string
}

func NewMultiLineEdit(id, label, value string) *MultiLineEdit {
	return &MultiLineEdit{base: base{kind: widget.KindMultiLineEdit, id: id, label: label}, value: value}
}

func (f *MultiLineEdit) Value() string { return f.value }

func (f *MultiLineEdit) SetValue(v string) {
	f.value = v
	f.record("set", v)
}

func (f *MultiLineEdit) CurrentValue() interface{} { return f.value }

// IntField clamps values to [min, max].
type IntField struct {
	base
	value    int
	min, max int
}

func NewIntField(id, label string, value, min, max int) *IntField {
	f := &IntField{base: base{kind: widget.KindIntField, id: id, label: label}, min: min, max: max}
	f.value = f.clamp(value)
	return f
}

func (f *IntField) IntValue() int { return f.value }

func (f *IntField) SetIntValue(v int) {
	f.value = f.clamp(v)
	f.record("set", strconv.Itoa(f.value))
}

func (f *IntField) CurrentValue() interface{} { return f.value }

func (f *IntField) clamp(v int) int {
	if v < f.min {
		return f.min
	}
	if v > f.max {
		return f.max
	}
	return v
}

// list holds single-selection items shared by combo boxes, tabs and
// selection boxes.
type list struct {
	base
	items   []*Item
	current *Item
}

func (l *list) FindItem(label string) (widget.Item, bool) {
	it, ok := findByLabel(l.items, label)
	if !ok {
		return nil, false
	}
	return it, true
}

func (l *list) SelectItem(item widget.Item) {
	for _, it := range l.items {
		it.selected = it == item
		if it.selected {
			l.current = it
		}
	}
	l.record("select", item.Label())
}

func (l *list) Items() []widget.Item { return asWidgetItems(l.items) }

func (l *list) CurrentValue() interface{} {
	if l.current == nil {
		return ""
	}
	return l.current.label
}

type ComboBox struct{ list }

func NewComboBox(id, label string, items ...string) *ComboBox {
	return &ComboBox{list{base: base{kind: widget.KindComboBox, id: id, label: label}, items: newItems(items)}}
}

func (c *ComboBox) Activate() { c.record("activate", "") }

type DumbTab struct{ list }

func NewDumbTab(id, label string, items ...string) *DumbTab {
	return &DumbTab{list{base: base{kind: widget.KindDumbTab, id: id, label: label}, items: newItems(items)}}
}

func (t *DumbTab) Activate() { t.record("activate", "") }

type SelectionBox struct{ list }

func NewSelectionBox(id, label string, items ...string) *SelectionBox {
	return &SelectionBox{list{base: base{kind: widget.KindSelectionBox, id: id, label: label}, items: newItems(items)}}
}

type Table struct {
	base
	columns []string
	rows    []*Item
	current *Item
}

func NewTable(id, label string, columns []string, rows ...[]string) *Table {
	t := &Table{base: base{kind: widget.KindTable, id: id, label: label}, columns: columns}
	for _, cells := range rows {
		first := ""
		if len(cells) > 0 {
			first = cells[0]
		}
		t.rows = append(t.rows, NewItem(first, cells...))
	}
	return t
}

func (t *Table) FindItemInColumn(value string, column int) (widget.Item, bool) {
	for _, row := range t.rows {
		if cell, ok := row.Cell(column); ok && cell == value {
			return row, true
		}
	}
	return nil, false
}

func (t *Table) SelectItem(item widget.Item) {
	for _, row := range t.rows {
		row.selected = row == item
		if row.selected {
			t.current = row
		}
	}
	t.record("select", item.Label())
}

func (t *Table) Items() []widget.Item { return asWidgetItems(t.rows) }

func (t *Table) CurrentValue() interface{} {
	if t.current == nil {
		return ""
	}
	return t.current.label
}

type Tree struct {
	base
	tree    *itemTree
	current *Item
}

func NewTree(id, label string, paths ...string) *Tree {
	return &Tree{base: base{kind: widget.KindTree, id: id, label: label}, tree: buildTree(paths)}
}

func (t *Tree) FindItemByPath(path []string) (widget.Item, bool) {
	it, ok := t.tree.find(path)
	if !ok {
		return nil, false
	}
	return it, true
}

func (t *Tree) SelectItem(item widget.Item) {
	for _, it := range t.tree.flatten() {
		it.selected = it == item
		if it.selected {
			t.current = it
		}
	}
	t.record("select", item.Label())
}

func (t *Tree) Activate()           { t.record("activate", "") }
func (t *Tree) Items() []widget.Item { return asWidgetItems(t.tree.flatten()) }

func (t *Tree) CurrentValue() interface{} {
	if t.current == nil {
		return ""
	}
	return widget.JoinPath(t.current.Path())
}

type MenuButton struct {
	base
	tree *itemTree
}

func NewMenuButton(id, label string, paths ...string) *MenuButton {
	return &MenuButton{base: base{kind: widget.KindMenuButton, id: id, label: label}, tree: buildTree(paths)}
}

func (m *MenuButton) FindMenuItem(path []string) (widget.Item, bool) {
	it, ok := m.tree.find(path)
	if !ok {
		return nil, false
	}
	return it, true
}

func (m *MenuButton) ActivateItem(item widget.Item) {
	detail := item.Label()
	if it, ok := item.(*Item); ok {
		detail = widget.JoinPath(it.Path())
	}
	m.record("activate-item", detail)
}

func (m *MenuButton) Items() []widget.Item { return asWidgetItems(m.tree.flatten()) }

// ItemSelector allows any number of selected items.
type ItemSelector struct {
	base
	items []*Item
}

func NewItemSelector(id, label string, items ...string) *ItemSelector {
	return &ItemSelector{base: base{kind: widget.KindItemSelector, id: id, label: label}, items: newItems(items)}
}

func (s *ItemSelector) FindItem(label string) (widget.Item, bool) {
	it, ok := findByLabel(s.items, label)
	if !ok {
		return nil, false
	}
	return it, true
}

func (s *ItemSelector) SelectItem(item widget.Item, selected bool) {
	item.SetSelected(selected)
	s.record("select", item.Label()+"="+strconv.FormatBool(selected))
}

func (s *ItemSelector) ActivateItem(item widget.Item) { s.record("activate-item", item.Label()) }
func (s *ItemSelector) Items() []widget.Item          { return asWidgetItems(s.items) }

func (s *ItemSelector) CurrentValue() interface{} {
	var selected []string
	for _, it := range s.items {
		if it.selected {
			selected = append(selected, it.label)
		}
	}
	return strings.Join(selected, ",")
}

// RadioButton clears the other members of its group when selected.
type RadioButton struct {
	base
	selected bool
	group    *[]*RadioButton
}

func NewRadioButton(id, label string, selected bool) *RadioButton {
	return &RadioButton{base: base{kind: widget.KindRadioButton, id: id, label: label}, selected: selected}
}

// Group links buttons so that at most one is selected.
func Group(buttons ...*RadioButton) {
	members := append([]*RadioButton(nil), buttons...)
	for _, b := range buttons {
		b.group = &members
	}
}

func (r *RadioButton) IsSelected() bool { return r.selected }

func (r *RadioButton) SetSelected(selected bool) {
	if selected && r.group != nil {
		for _, other := range *r.group {
			if other != r {
				other.selected = false
			}
		}
	}
	r.selected = selected
	r.record("set", strconv.FormatBool(selected))
}

func (r *RadioButton) CurrentValue() interface{} { return r.selected }

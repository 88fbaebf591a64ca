// Package widget describes the widget model the dispatcher acts on: a base
// Widget interface, one capability interface per Kind, items and lookup
// criteria. Toolkits implement these interfaces; nothing here renders.
package widget

// Widget is the common surface of every widget in an open dialog.
type Widget interface {
	Kind() Kind
	Class() string
	ID() string
	Label() string
	SetKeyboardFocus() bool
}

// Item is an entry inside a list-like widget (combo box, table row, tree
// node, tab, menu entry, selector entry).
type Item interface {
	Label() string
	Selected() bool
	SetSelected(bool)
}

type PushButton interface {
	Widget
	Activate()
}

type RichText interface {
	Widget
	ActivateLink(url string)
}

type MenuButton interface {
	Widget
	FindMenuItem(path []string) (Item, bool)
	ActivateItem(Item)
}

type CheckBox interface {
	Widget
	IsChecked() bool
	SetChecked(bool)
}

type InputField interface {
	Widget
	Value() string
	SetValue(string)
}

type IntField interface {
	Widget
	IntValue() int
	SetIntValue(int)
}

type MultiLineEdit interface {
	Widget
	Value() string
	SetValue(string)
}

type ComboBox interface {
	Widget
	FindItem(label string) (Item, bool)
	SelectItem(Item)
	Activate()
}

// Table rows are matched against the cell text in a single column.
type Table interface {
	Widget
	FindItemInColumn(value string, column int) (Item, bool)
	SelectItem(Item)
}

type Tree interface {
	Widget
	FindItemByPath(path []string) (Item, bool)
	SelectItem(Item)
	Activate()
}

type DumbTab interface {
	Widget
	FindItem(label string) (Item, bool)
	SelectItem(Item)
	Activate()
}

type RadioButton interface {
	Widget
	IsSelected() bool
	SetSelected(bool)
}

type SelectionBox interface {
	Widget
	FindItem(label string) (Item, bool)
	SelectItem(Item)
}

// ItemSelector holds independently selectable items.
type ItemSelector interface {
	Widget
	FindItem(label string) (Item, bool)
	SelectItem(item Item, selected bool)
	ActivateItem(Item)
}

// ItemLister is implemented by widgets that can enumerate their items.
// Used for describing widgets, never for acting on them.
type ItemLister interface {
	Items() []Item
}

// Valuer is implemented by widgets whose state can be rendered as a value.
type Valuer interface {
	CurrentValue() interface{}
}

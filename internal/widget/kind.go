package widget

import "strings"

// Kind identifies the runtime type of a widget. The set is closed: every
// switch over Kind in this module lists all values explicitly.
type Kind int

const (
	KindUnknown Kind = iota
	KindPushButton
	KindRichText
	KindMenuButton
	KindCheckBox
	KindInputField
	KindIntField
	KindMultiLineEdit
	KindComboBox
	KindTable
	KindTree
	KindDumbTab
	KindRadioButton
	KindSelectionBox
	KindItemSelector
	KindLabel
)

var kindNames = map[Kind]string{
	KindUnknown:       "Unknown",
	KindPushButton:    "PushButton",
	KindRichText:      "RichText",
	KindMenuButton:    "MenuButton",
	KindCheckBox:      "CheckBox",
	KindInputField:    "InputField",
	KindIntField:      "IntField",
	KindMultiLineEdit: "MultiLineEdit",
	KindComboBox:      "ComboBox",
	KindTable:         "Table",
	KindTree:          "Tree",
	KindDumbTab:       "DumbTab",
	KindRadioButton:   "RadioButton",
	KindSelectionBox:  "SelectionBox",
	KindItemSelector:  "ItemSelector",
	KindLabel:         "Label",
}

// Kinds returns every known kind except KindUnknown, in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for k := KindPushButton; k <= KindLabel; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Class returns the widget class name reported to clients, e.g. "YPushButton".
func (k Kind) Class() string {
	return "Y" + k.String()
}

// ParseKind accepts either the bare kind name or the class name, ignoring case.
func ParseKind(name string) (Kind, bool) {
	trimmed := strings.TrimSpace(name)
	for k, n := range kindNames {
		if k == KindUnknown {
			continue
		}
		if strings.EqualFold(trimmed, n) || strings.EqualFold(trimmed, "Y"+n) {
			return k, true
		}
	}
	return KindUnknown, false
}

package dispatcher

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/widget-remote/internal/logging"
	"github.com/atomicstack/widget-remote/internal/toolkit/memory"
	"github.com/atomicstack/widget-remote/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fixture struct {
	host *memory.Host
	d    *Dispatcher

	button   *memory.PushButton
	check    *memory.CheckBox
	input    *memory.InputField
	number   *memory.IntField
	notes    *memory.MultiLineEdit
	combo    *memory.ComboBox
	table    *memory.Table
	tree     *memory.Tree
	tabs     *memory.DumbTab
	small    *memory.RadioButton
	large    *memory.RadioButton
	box      *memory.SelectionBox
	selector *memory.ItemSelector
	help     *memory.RichText
	menu     *memory.MenuButton
	label    *memory.Label
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		host:     memory.NewHost(),
		button:   memory.NewPushButton("ok", "OK"),
		check:    memory.NewCheckBox("remember", "Remember me", false),
		input:    memory.NewInputField("name", "Name", ""),
		number:   memory.NewIntField("count", "Count", 1, -1000, 1000),
		notes:    memory.NewMultiLineEdit("notes", "Notes", ""),
		combo:    memory.NewComboBox("shell", "Shell", "bash", "zsh"),
		table:    memory.NewTable("pkgs", "Packages", []string{"name", "version"}, []string{"vim", "9.1"}, []string{"nano", "8.2"}),
		tree:     memory.NewTree("settings", "Settings", "System::Network::Proxy", "Software"),
		tabs:     memory.NewDumbTab("pages", "Pages", "Overview", "Details"),
		small:    memory.NewRadioButton("small", "Small", true),
		large:    memory.NewRadioButton("large", "Large", false),
		box:      memory.NewSelectionBox("editor", "Editor", "vim", "emacs"),
		selector: memory.NewItemSelector("features", "Features", "ssh", "docs"),
		help:     memory.NewRichText("help", "Help", `<a href="docs">docs</a>`, "docs"),
		menu:     memory.NewMenuButton("actions", "Actions", "Import", "Export::CSV"),
		label:    memory.NewLabel("intro", "Intro"),
	}
	memory.Group(f.small, f.large)
	f.host.Open("Test", f.button, f.check, f.input, f.number, f.notes, f.combo, f.table,
		f.tree, f.tabs, f.small, f.large, f.box, f.selector, f.help, f.menu, f.label)
	f.d = New(f.host)
	return f
}

func (f *fixture) act(id, action, value string) Result {
	return f.d.Handle(Request{
		Criteria: widget.Criteria{ID: widget.Ptr(id)},
		Action:   widget.Ptr(action),
		Params:   Params{Value: value},
	})
}

func (f *fixture) ops() []string {
	return f.host.Journal().Ops()
}

func TestHandleNoDialog(t *testing.T) {
	host := memory.NewHost()
	res := New(host).Handle(Request{Action: widget.Ptr("press")})

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "{\"error\":\"No dialog is open\"}\n", res.Body)
	assert.False(t, res.Redraw)
	assert.ErrorIs(t, res.Err, ErrNoDialogOpen)
}

func TestHandleWidgetNotFound(t *testing.T) {
	f := newFixture(t)
	res := f.act("missing", "press", "")

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "{\"error\":\"Widget not found\"}\n", res.Body)
	assert.ErrorIs(t, res.Err, ErrWidgetNotFound)
}

func TestHandleEmptyDialogWithoutCriteria(t *testing.T) {
	host := memory.NewHost()
	host.Open("Empty")
	res := New(host).Handle(Request{Action: widget.Ptr("press")})
	assert.ErrorIs(t, res.Err, ErrWidgetNotFound)
}

func TestHandleMissingAction(t *testing.T) {
	f := newFixture(t)

	res := f.d.Handle(Request{Criteria: widget.Criteria{ID: widget.Ptr("ok")}})
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "{\"error\":\"Missing action parameter\"}\n", res.Body)

	// reported before ambiguity
	res = f.d.Handle(Request{})
	assert.ErrorIs(t, res.Err, ErrMissingAction)
	assert.Empty(t, f.ops())
}

func TestHandleAmbiguousSelectionDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	res := f.d.Handle(Request{
		Criteria: widget.Criteria{Type: widget.Ptr("YRadioButton")},
		Action:   widget.Ptr("select"),
	})

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "{\"error\":\"Multiple widgets found to act on, try using multicriteria search (label+id+type)\"}\n", res.Body)
	assert.False(t, res.Redraw)
	assert.ErrorIs(t, res.Err, ErrAmbiguousSelection)
	assert.Empty(t, f.ops())
	assert.True(t, f.small.IsSelected())
	assert.False(t, f.large.IsSelected())
}

func TestHandleUnknownAction(t *testing.T) {
	f := newFixture(t)
	for _, action := range []string{"click", "Press", ""} {
		res := f.act("ok", action, "")
		assert.Equal(t, StatusNotFound, res.Status, action)
		assert.Equal(t, "{\"error\":\"Unknown action\"}\n", res.Body, action)
		assert.ErrorIs(t, res.Err, ErrUnknownAction, action)
	}
	assert.Empty(t, f.ops())
}

func TestHandleUnsupportedAction(t *testing.T) {
	f := newFixture(t)
	res := f.act("intro", "press", "")

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "Action is not supported for the selected widget: YLabel\n", res.Body)
	assert.False(t, res.Redraw)
	assert.ErrorIs(t, res.Err, ErrUnsupportedActionForType)

	res = f.act("remember", "enter_text", "x")
	assert.Equal(t, "Action is not supported for the selected widget: YCheckBox\n", res.Body)
	assert.Empty(t, f.ops())
}

func TestPressButton(t *testing.T) {
	f := newFixture(t)
	res := f.d.Handle(Request{
		Criteria: widget.Criteria{Label: widget.Ptr("OK"), Type: widget.Ptr("YPushButton")},
		Action:   widget.Ptr("press"),
	})

	assert.Equal(t, StatusOK, res.Status)
	assert.Empty(t, res.Body)
	assert.True(t, res.Redraw)
	assert.NoError(t, res.Err)
	assert.Equal(t, []string{"ok:focus", "ok:activate"}, f.ops())
}

func TestPressRichTextLink(t *testing.T) {
	f := newFixture(t)
	res := f.act("help", "press", "faq")
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, []string{"help:focus", "help:link(faq)"}, f.ops())
}

func TestPressMenuButton(t *testing.T) {
	f := newFixture(t)

	res := f.act("actions", "press", "Export::CSV")
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, []string{"actions:focus", "actions:activate-item(Export::CSV)"}, f.ops())

	f.host.Journal().Reset()
	res = f.act("actions", "press", "Export::XML")
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "Item with path: \"Export::XML\" cannot be found in the MenuButton widget\n", res.Body)
	assert.False(t, res.Redraw)
	assert.ErrorIs(t, res.Err, ErrItemNotFound)
	assert.Empty(t, f.ops())
}

func TestCheckBoxActions(t *testing.T) {
	f := newFixture(t)

	res := f.act("remember", "uncheck", "")
	assert.Equal(t, StatusOK, res.Status)
	assert.True(t, res.Redraw, "a no-op still counts as success")
	assert.Empty(t, f.ops(), "already unchecked boxes are not focused")

	f.act("remember", "check", "")
	assert.True(t, f.check.IsChecked())
	assert.Equal(t, []string{"remember:focus", "remember:set(true)"}, f.ops())

	f.host.Journal().Reset()
	res = f.act("remember", "check", "")
	assert.Equal(t, StatusOK, res.Status)
	assert.Empty(t, f.ops())

	f.act("remember", "toggle", "")
	assert.False(t, f.check.IsChecked())
	f.act("remember", "toggle", "")
	assert.True(t, f.check.IsChecked())
	assert.Equal(t, []string{"remember:focus", "remember:set(false)", "remember:focus", "remember:set(true)"}, f.ops())

	f.host.Journal().Reset()
	f.act("remember", "uncheck", "")
	assert.False(t, f.check.IsChecked())
	assert.Equal(t, []string{"remember:focus", "remember:set(false)"}, f.ops())
}

func TestEnterText(t *testing.T) {
	f := newFixture(t)

	res := f.act("name", "enter_text", "Ada")
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "Ada", f.input.Value())

	f.act("notes", "enter_text", "line one\nline two")
	assert.Equal(t, "line one\nline two", f.notes.Value())

	f.act("name", "enter_text", "")
	assert.Equal(t, "", f.input.Value(), "absent value clears the field")

	tests := []struct {
		value string
		want  int
	}{
		{"42", 42},
		{"abc", 0},
		{"12abc", 12},
		{"  -7", -7},
		{"", 0},
	}
	for _, tt := range tests {
		res := f.act("count", "enter_text", tt.value)
		assert.Equal(t, StatusOK, res.Status, tt.value)
		assert.Equal(t, tt.want, f.number.IntValue(), tt.value)
	}
}

func TestSelectComboBoxFocusesBeforeLookup(t *testing.T) {
	f := newFixture(t)

	res := f.act("shell", "select", "fish")
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "\"fish\" item cannot be found in the combo box\n", res.Body)
	assert.Equal(t, []string{"shell:focus"}, f.ops())

	f.host.Journal().Reset()
	res = f.act("shell", "select", "zsh")
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "zsh", f.combo.CurrentValue())
	assert.Equal(t, []string{"shell:focus", "shell:select(zsh)", "shell:activate"}, f.ops())
}

func TestSelectTableByColumn(t *testing.T) {
	f := newFixture(t)

	res := f.d.Handle(Request{
		Criteria: widget.Criteria{ID: widget.Ptr("pkgs")},
		Action:   widget.Ptr("select"),
		Params:   Params{Value: "8.2", Column: 1},
	})
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "nano", f.table.CurrentValue())
	assert.Equal(t, []string{"pkgs:focus", "pkgs:select(nano)"}, f.ops())

	f.host.Journal().Reset()
	res = f.act("pkgs", "select", "8.2")
	assert.Equal(t, StatusNotFound, res.Status, "column defaults to 0")
	assert.Equal(t, "\"8.2\" item cannot be found in the table\n", res.Body)
	assert.Empty(t, f.ops(), "tables focus only after a match")
}

func TestSelectTableColumnOmittedMatchesColumnZero(t *testing.T) {
	results := make([]Result, 2)
	journals := make([][]string, 2)
	for i, params := range []Params{{Value: "vim"}, {Value: "vim", Column: 0}} {
		f := newFixture(t)
		results[i] = f.d.Handle(Request{
			Criteria: widget.Criteria{ID: widget.Ptr("pkgs")},
			Action:   widget.Ptr("select"),
			Params:   params,
		})
		assert.Equal(t, "vim", f.table.CurrentValue())
		journals[i] = f.ops()
	}
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, journals[0], journals[1])
}

func TestPressCheckBoxNamesItsClass(t *testing.T) {
	f := newFixture(t)
	res := f.act("remember", "press", "")

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Contains(t, res.Body, "YCheckBox")
	assert.ErrorIs(t, res.Err, ErrUnsupportedActionForType)
	assert.False(t, f.check.IsChecked())
	assert.Empty(t, f.ops())
}

func TestSelectMissingTreePath(t *testing.T) {
	f := newFixture(t)
	res := f.act("settings", "select", "Region::City")

	assert.Equal(t, StatusNotFound, res.Status)
	assert.False(t, res.Redraw)
	assert.Contains(t, res.Body, `"Region::City"`)
	assert.Contains(t, res.Body, "tree")
	assert.ErrorIs(t, res.Err, ErrItemNotFound)
	assert.Equal(t, "", f.tree.CurrentValue())
	assert.Empty(t, f.ops())
}

func TestItemSelectorTracesRequestedAction(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	logging.SetTraceEnabled(true)
	t.Cleanup(func() {
		logging.SetOutput(nil)
		logging.SetTraceEnabled(false)
	})

	f := newFixture(t)
	res := f.act("features", "select", "docs")
	require.Equal(t, StatusOK, res.Status)

	var actions []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if gjson.Get(line, "event").String() == "action.performed" {
			actions = append(actions, gjson.Get(line, "payload.action").String())
		}
	}
	assert.Equal(t, []string{"select"}, actions)
}

func TestSelectTreePath(t *testing.T) {
	f := newFixture(t)

	res := f.act("settings", "select", "System::Network::Proxy")
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "System::Network::Proxy", f.tree.CurrentValue())
	assert.Equal(t, []string{"settings:focus", "settings:select(Proxy)", "settings:activate"}, f.ops())

	f.host.Journal().Reset()
	res = f.act("settings", "select", "Network")
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "\"Network\" item cannot be found in the tree\n", res.Body)
	assert.Empty(t, f.ops())
}

func TestSelectDumbTab(t *testing.T) {
	f := newFixture(t)

	res := f.act("pages", "select", "Details")
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, []string{"pages:focus", "pages:select(Details)", "pages:activate"}, f.ops())

	res = f.act("pages", "select", "Summary")
	assert.Equal(t, "\"Summary\" item cannot be found in the tab\n", res.Body)
}

func TestSelectRadioButtonIgnoresValue(t *testing.T) {
	f := newFixture(t)

	res := f.act("large", "select", "anything")
	assert.Equal(t, StatusOK, res.Status)
	assert.True(t, f.large.IsSelected())
	assert.False(t, f.small.IsSelected())
	assert.Equal(t, []string{"large:focus", "large:set(true)"}, f.ops())
}

func TestSelectSelectionBox(t *testing.T) {
	f := newFixture(t)

	res := f.act("editor", "select", "emacs")
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "emacs", f.box.CurrentValue())

	f.host.Journal().Reset()
	res = f.act("editor", "select", "ed")
	assert.Equal(t, "\"ed\" item cannot be found in the selection box\n", res.Body)
	assert.Empty(t, f.ops())
}

func TestItemSelectorStates(t *testing.T) {
	f := newFixture(t)
	docs, ok := f.selector.FindItem("docs")
	require.True(t, ok)

	f.act("features", "toggle", "docs")
	assert.True(t, docs.Selected())
	assert.Equal(t, []string{"features:focus", "features:select(docs=true)", "features:activate-item(docs)"}, f.ops())

	f.act("features", "toggle", "docs")
	assert.False(t, docs.Selected())

	f.act("features", "check", "docs")
	assert.True(t, docs.Selected())
	f.act("features", "select", "docs")
	assert.True(t, docs.Selected(), "select is idempotent")

	f.act("features", "uncheck", "docs")
	assert.False(t, docs.Selected())
	f.act("features", "uncheck", "docs")
	assert.False(t, docs.Selected(), "uncheck is idempotent")

	f.host.Journal().Reset()
	res := f.act("features", "check", "kdump")
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "\"kdump\" item cannot be found in the item selector\n", res.Body)
	assert.Empty(t, f.ops())
}

type countingItem struct {
	selected bool
	reads    int
}

func (c *countingItem) Label() string      { return "x" }
func (c *countingItem) SetSelected(s bool) { c.selected = s }
func (c *countingItem) Selected() bool {
	c.reads++
	return c.selected
}

type singleItemSelector struct {
	fakeWidget
	item *countingItem
}

func (s *singleItemSelector) FindItem(string) (widget.Item, bool) { return s.item, true }
func (s *singleItemSelector) SelectItem(widget.Item, bool)        {}
func (s *singleItemSelector) ActivateItem(widget.Item)            {}

func TestItemSelectorReadsStateOnce(t *testing.T) {
	sel := &singleItemSelector{fakeWidget: fakeWidget{kind: widget.KindItemSelector}, item: &countingItem{}}
	d := New(memory.NewHost())

	var body nopWriter
	status, err := d.setItemSelectorState(sel, ActionToggle, "x", &body, SelectorToggle)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.True(t, sel.item.selected)
	assert.Equal(t, 1, sel.item.reads)
}

type fakeWidget struct {
	kind widget.Kind
}

func (f fakeWidget) Kind() widget.Kind      { return f.kind }
func (f fakeWidget) Class() string          { return f.kind.Class() }
func (f fakeWidget) ID() string             { return "fake" }
func (f fakeWidget) Label() string          { return "Fake" }
func (f fakeWidget) SetKeyboardFocus() bool { return true }

type nopWriter struct{ n int }

func (w *nopWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

func unhandled(err error) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	_, ok := de.Details[detailUnhandledKind]
	return ok
}

func TestWidgetWithoutCapabilityIsUnsupported(t *testing.T) {
	host := memory.NewHost()
	host.Open("Test", fakeWidget{kind: widget.KindTree})
	d := New(host)

	res := d.Handle(Request{
		Criteria: widget.Criteria{ID: widget.Ptr("fake")},
		Action:   widget.Ptr("select"),
		Params:   Params{Value: "Region::City"},
	})
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "Action is not supported for the selected widget: YTree\n", res.Body)
	assert.ErrorIs(t, res.Err, ErrUnsupportedActionForType)
	assert.False(t, res.Redraw)
}

// fixtureIDs maps every kind to the fixture widget of that kind.
var fixtureIDs = map[widget.Kind]string{
	widget.KindPushButton:    "ok",
	widget.KindRichText:      "help",
	widget.KindMenuButton:    "actions",
	widget.KindCheckBox:      "remember",
	widget.KindInputField:    "name",
	widget.KindIntField:      "count",
	widget.KindMultiLineEdit: "notes",
	widget.KindComboBox:      "shell",
	widget.KindTable:         "pkgs",
	widget.KindTree:          "settings",
	widget.KindDumbTab:       "pages",
	widget.KindRadioButton:   "small",
	widget.KindSelectionBox:  "editor",
	widget.KindItemSelector:  "features",
	widget.KindLabel:         "intro",
}

func TestSupportedActionsMatchesDispatch(t *testing.T) {
	for _, kind := range widget.Kinds() {
		id, ok := fixtureIDs[kind]
		require.True(t, ok, "no fixture widget for %s", kind)

		supported := make(map[Action]bool)
		for _, a := range SupportedActions(kind) {
			supported[a] = true
		}
		for _, action := range Actions() {
			f := newFixture(t)
			res := f.act(id, string(action), "")
			if supported[action] {
				assert.False(t, errors.Is(res.Err, ErrUnsupportedActionForType), "%s on %s", action, kind)
			} else {
				assert.ErrorIs(t, res.Err, ErrUnsupportedActionForType, "%s on %s", action, kind)
				assert.Equal(t, "Action is not supported for the selected widget: "+kind.Class()+"\n", res.Body)
			}
		}
	}
}

func TestEveryActionListsEveryKind(t *testing.T) {
	d := New(memory.NewHost())
	for _, kind := range append(widget.Kinds(), widget.KindUnknown) {
		for _, action := range Actions() {
			var body nopWriter
			_, err := d.Do(fakeWidget{kind: kind}, string(action), Params{}, &body)
			assert.ErrorIs(t, err, ErrUnsupportedActionForType, "%s on %s", action, kind)
			assert.False(t, unhandled(err), "%s has no case for %s", action, kind)
			assert.NotZero(t, body.n, "%s on %s", action, kind)
		}
	}
}

func TestUnlistedKindIsFlagged(t *testing.T) {
	d := New(memory.NewHost())
	var body nopWriter
	_, err := d.Do(fakeWidget{kind: widget.Kind(99)}, string(ActionPress), Params{}, &body)

	assert.ErrorIs(t, err, ErrUnsupportedActionForType)
	assert.True(t, unhandled(err))
	assert.NotZero(t, body.n)
}

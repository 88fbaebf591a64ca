package tviewkit

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/atomicstack/widget-remote/internal/toolkit/memory"
	"github.com/atomicstack/widget-remote/internal/widget"
)

const statusHint = "[yellow::b]widget-remote[-:-:-] | ↑↓:navigate | q:quit"

var columns = []string{"Class", "ID", "Label", "Value"}

// view mirrors the dialog's widgets. It is only touched from the tview
// event loop, or directly while the loop is not running.
type view struct {
	root    *tview.Flex
	table   *tview.Table
	details *tview.TextView
	status  *tview.TextView

	widgets []widget.Widget
}

func newView(title string) *view {
	v := &view{}

	v.status = tview.NewTextView().
		SetDynamicColors(true).
		SetText(statusHint)

	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	v.table.SetBorder(true).
		SetTitle(title).
		SetTitleAlign(tview.AlignLeft)

	v.details = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	v.details.SetBorder(true).
		SetTitle("Details").
		SetTitleAlign(tview.AlignLeft)

	v.table.SetSelectionChangedFunc(func(row, _ int) {
		v.showDetails(row)
	})

	body := tview.NewFlex().
		AddItem(v.table, 0, 2, true).
		AddItem(v.details, 0, 1, false)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.status, 1, 0, false).
		AddItem(body, 0, 1, true)
	return v
}

// render rebuilds the widget table from current widget state and puts the
// most recent journal event in the status line.
func (v *view) render(widgets []widget.Widget, last memory.Event, hasLast bool) {
	v.widgets = widgets
	row, _ := v.table.GetSelection()

	v.table.Clear()
	for col, name := range columns {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
	for i, w := range widgets {
		cells := []string{w.Class(), w.ID(), w.Label(), valueText(w)}
		for col, text := range cells {
			v.table.SetCell(i+1, col, tview.NewTableCell(tview.Escape(text)).
				SetReference(w).
				SetExpansion(1))
		}
	}

	if hasLast {
		if focused := rowOf(widgets, last.Widget); focused > 0 && last.Op == "focus" {
			row = focused
		}
		v.status.SetText(statusHint + " | [green]" + tview.Escape(last.String()) + "[-]")
	} else {
		v.status.SetText(statusHint)
	}

	if row < 1 || row > len(widgets) {
		row = 1
	}
	if len(widgets) > 0 {
		v.table.Select(row, 0)
	}
	v.showDetails(row)
}

func (v *view) showDetails(row int) {
	if row < 1 || row > len(v.widgets) {
		v.details.SetText("")
		return
	}
	w := v.widgets[row-1]
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]%s[-] %s\n", w.Class(), tview.Escape(w.ID()))
	if w.Label() != "" {
		fmt.Fprintf(&b, "label: %s\n", tview.Escape(w.Label()))
	}
	if val := valueText(w); val != "" {
		fmt.Fprintf(&b, "value: %s\n", tview.Escape(val))
	}
	if lister, ok := w.(widget.ItemLister); ok {
		b.WriteString("\n")
		for _, item := range lister.Items() {
			mark := "[ ]"
			if item.Selected() {
				mark = "[x[]"
			}
			fmt.Fprintf(&b, "%s %s\n", mark, tview.Escape(item.Label()))
		}
	}
	v.details.SetText(b.String())
}

// rowOf returns the table row of the widget a journal event refers to, or 0.
func rowOf(widgets []widget.Widget, key string) int {
	for i, w := range widgets {
		if w.ID() == key || (w.ID() == "" && w.Label() == key) {
			return i + 1
		}
	}
	return 0
}

func valueText(w widget.Widget) string {
	valuer, ok := w.(widget.Valuer)
	if !ok {
		return ""
	}
	switch v := valuer.CurrentValue().(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

package table

import (
	"reflect"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"CLASS", "ID", "VALUE"},
		{"YCheckBox", "remember", "true"},
		{"YIntField", "count", "42"},
	}
	got := Format(rows, []Column{{}, {}, {Align: AlignRight}})
	want := []string{
		"CLASS      ID        VALUE",
		"YCheckBox  remember   true",
		"YIntField  count        42",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatClipsWideCells(t *testing.T) {
	rows := [][]string{{"label", "a very long description"}}
	got := Format(rows, []Column{{}, {MaxWidth: 6}})
	if got[0] != "label  a ver…" {
		t.Fatalf("unexpected clipped row %q", got[0])
	}
}

func TestFormatHandlesRaggedRows(t *testing.T) {
	got := Format([][]string{{"a", "b"}, {"ccc"}}, nil)
	want := []string{"a    b", "ccc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatMeasuresStyledCells(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)
	rows := [][]string{{style.Render("ab"), "x"}, {"abcd", "y"}}
	got := Format(rows, nil)
	if lipgloss.Width(got[0]) != lipgloss.Width(got[1]) {
		t.Fatalf("styled and plain rows should align: %q vs %q", got[0], got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

// Package layout reads dialog descriptions used to populate a toolkit host.
package layout

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/atomicstack/widget-remote/internal/widget"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDialog []byte

// Dialog is a flat list of widgets shown in one window.
type Dialog struct {
	Title   string   `yaml:"title"`
	Widgets []Widget `yaml:"widgets"`
}

// Widget describes one widget. Fields that do not apply to Type are ignored.
type Widget struct {
	Type     string     `yaml:"type"`
	ID       string     `yaml:"id,omitempty"`
	Label    string     `yaml:"label,omitempty"`
	Value    string     `yaml:"value,omitempty"`
	Checked  bool       `yaml:"checked,omitempty"`
	Min      *int       `yaml:"min,omitempty"`
	Max      *int       `yaml:"max,omitempty"`
	Items    []string   `yaml:"items,omitempty"`
	Selected []string   `yaml:"selected,omitempty"`
	Columns  []string   `yaml:"columns,omitempty"`
	Rows     [][]string `yaml:"rows,omitempty"`
	Links    []string   `yaml:"links,omitempty"`
	Group    string     `yaml:"group,omitempty"`
}

// Kind resolves Type. Unknown types yield KindUnknown.
func (w Widget) Kind() widget.Kind {
	k, _ := widget.ParseKind(w.Type)
	return k
}

// Bounds returns the IntField limits, defaulting to 0..100.
func (w Widget) Bounds() (int, int) {
	lo, hi := 0, 100
	if w.Min != nil {
		lo = *w.Min
	}
	if w.Max != nil {
		hi = *w.Max
	}
	return lo, hi
}

// Default returns the built-in sandbox dialog containing one widget of
// every kind.
func Default() Dialog {
	d, err := Parse(defaultDialog)
	if err != nil {
		panic(fmt.Sprintf("embedded default layout is invalid: %v", err))
	}
	return d
}

// Load reads and validates a dialog file. An empty path returns Default.
func Load(path string) (Dialog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Dialog{}, fmt.Errorf("read layout: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return Dialog{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates a dialog description.
func Parse(data []byte) (Dialog, error) {
	var d Dialog
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Dialog{}, fmt.Errorf("parse layout: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Dialog{}, err
	}
	return d, nil
}

// Validate checks widget types, id uniqueness and per-kind constraints.
func (d Dialog) Validate() error {
	seen := make(map[string]int, len(d.Widgets))
	for i, w := range d.Widgets {
		if _, ok := widget.ParseKind(w.Type); !ok {
			return fmt.Errorf("widget %d: unknown type %q", i, w.Type)
		}
		if w.ID != "" {
			if prev, dup := seen[w.ID]; dup {
				return fmt.Errorf("widget %d: id %q already used by widget %d", i, w.ID, prev)
			}
			seen[w.ID] = i
		}
		if lo, hi := w.Bounds(); w.Kind() == widget.KindIntField && lo > hi {
			return fmt.Errorf("widget %d: min %d exceeds max %d", i, lo, hi)
		}
		if w.Kind() == widget.KindTable && len(w.Columns) > 0 {
			for r, row := range w.Rows {
				if len(row) > len(w.Columns) {
					return fmt.Errorf("widget %d: row %d has %d cells for %d columns", i, r, len(row), len(w.Columns))
				}
			}
		}
	}
	return nil
}

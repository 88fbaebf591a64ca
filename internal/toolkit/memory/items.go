package memory

import (
	"strings"

	"github.com/atomicstack/widget-remote/internal/widget"
)

// Item is a list entry, table row or tree node.
type Item struct {
	label    string
	cells    []string
	selected bool
	children []*Item
	parent   *Item
}

// NewItem creates an item. Table rows pass their cells; the first cell is
// the label.
func NewItem(label string, cells ...string) *Item {
	return &Item{label: label, cells: cells}
}

func (i *Item) Label() string      { return i.label }
func (i *Item) Selected() bool     { return i.selected }
func (i *Item) SetSelected(s bool) { i.selected = s }
func (i *Item) Children() []*Item  { return i.children }

// Cell returns the text in column col.
func (i *Item) Cell(col int) (string, bool) {
	if col < 0 || col >= len(i.cells) {
		return "", false
	}
	return i.cells[col], true
}

// Path returns the labels from the root down to i.
func (i *Item) Path() []string {
	var out []string
	for n := i; n != nil; n = n.parent {
		out = append([]string{n.label}, out...)
	}
	return out
}

func newItems(labels []string) []*Item {
	out := make([]*Item, len(labels))
	for i, l := range labels {
		out[i] = NewItem(l)
	}
	return out
}

func findByLabel(items []*Item, label string) (*Item, bool) {
	for _, it := range items {
		if it.label == label {
			return it, true
		}
	}
	return nil, false
}

func asWidgetItems(items []*Item) []widget.Item {
	out := make([]widget.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// itemTree indexes nested items by their full "::" path.
type itemTree struct {
	roots []*Item
	nodes map[string]*Item
}

// buildTree creates every node named by paths, including missing parents,
// in first-seen order.
func buildTree(paths []string) *itemTree {
	t := &itemTree{nodes: make(map[string]*Item)}
	for _, p := range paths {
		t.ensure(p)
	}
	return t
}

func (t *itemTree) ensure(path string) *Item {
	if node, ok := t.nodes[path]; ok {
		return node
	}
	parentPath, label, nested := parentKey(path)
	node := &Item{label: label}
	if nested {
		parent := t.ensure(parentPath)
		node.parent = parent
		parent.children = append(parent.children, node)
	} else {
		t.roots = append(t.roots, node)
	}
	t.nodes[path] = node
	return node
}

func (t *itemTree) find(path []string) (*Item, bool) {
	node, ok := t.nodes[widget.JoinPath(path)]
	return node, ok
}

// flatten lists the tree depth first.
func (t *itemTree) flatten() []*Item {
	var out []*Item
	var walk func([]*Item)
	walk = func(items []*Item) {
		for _, it := range items {
			out = append(out, it)
			walk(it.children)
		}
	}
	walk(t.roots)
	return out
}

func parentKey(path string) (string, string, bool) {
	idx := strings.LastIndex(path, widget.PathDelimiter)
	if idx < 0 {
		return "", path, false
	}
	return path[:idx], path[idx+len(widget.PathDelimiter):], true
}

package widget

// Criteria selects widgets in the open dialog. A nil field is absent; a
// present field must match exactly. Type matches either the class name
// ("YPushButton") or the kind name ("PushButton").
type Criteria struct {
	Label *string
	ID    *string
	Type  *string
}

// IsZero reports whether no criterion was supplied.
func (c Criteria) IsZero() bool {
	return c.Label == nil && c.ID == nil && c.Type == nil
}

// Matches reports whether w satisfies every present criterion.
func (c Criteria) Matches(w Widget) bool {
	if w == nil {
		return false
	}
	if c.Label != nil && *c.Label != w.Label() {
		return false
	}
	if c.ID != nil && *c.ID != w.ID() {
		return false
	}
	if c.Type != nil && *c.Type != w.Class() && *c.Type != w.Kind().String() {
		return false
	}
	return true
}

// Filter returns the widgets in ws matching c, preserving order.
func (c Criteria) Filter(ws []Widget) []Widget {
	out := make([]Widget, 0, len(ws))
	for _, w := range ws {
		if c.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}

// Locator exposes the widgets of the topmost dialog.
type Locator interface {
	HasDialog() bool
	Find(Criteria) []Widget
	All() []Widget
}

// Ptr returns a pointer to s, for building Criteria literals.
func Ptr(s string) *string {
	return &s
}

package cmdline

import "strings"

// Action is one built-in entry of the command palette.
type Action struct {
	Name        string
	Description string
	// NeedsArg reports whether the action cannot execute without a typed
	// argument; selecting it from the palette fills the buffer instead of
	// executing.
	NeedsArg bool
}

// Actions is the fixed built-in action list, in palette display order.
func Actions() []Action {
	return []Action{
		{Name: "run", Description: "Run a repository command", NeedsArg: true},
		{Name: "repo", Description: "Jump to a repository", NeedsArg: true},
		{Name: "refresh", Description: "Re-scan all repositories"},
		{Name: "state", Description: "Refresh state summaries"},
		{Name: "help", Description: "Show keyboard shortcuts"},
		{Name: "quit", Description: "Exit graft"},
	}
}

// Palette filters the built-in actions by case-insensitive substring and
// tracks a wrapping selection cursor.
type Palette struct {
	actions  []Action
	visible  []Action
	selected int
}

// NewPalette returns a palette over the fixed built-in action list with an
// empty filter.
func NewPalette() *Palette {
	p := &Palette{actions: Actions()}
	p.Filter("")
	return p
}

// Filter narrows the visible actions to those whose name contains the query
// (case-insensitive). The selection is clamped into the new visible set.
func (p *Palette) Filter(query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	p.visible = p.visible[:0]
	for _, a := range p.actions {
		if q == "" || strings.Contains(strings.ToLower(a.Name), q) {
			p.visible = append(p.visible, a)
		}
	}
	if p.selected >= len(p.visible) {
		p.selected = 0
	}
}

// Visible returns the filtered actions in order.
func (p *Palette) Visible() []Action {
	return p.visible
}

// Selected returns the currently selected visible action.
func (p *Palette) Selected() (Action, bool) {
	if len(p.visible) == 0 {
		return Action{}, false
	}
	return p.visible[p.selected], true
}

// SelectedIndex returns the selection cursor within the visible set.
func (p *Palette) SelectedIndex() int {
	return p.selected
}

// MoveUp moves the selection up, wrapping at the top.
func (p *Palette) MoveUp() {
	if len(p.visible) == 0 {
		return
	}
	p.selected = (p.selected - 1 + len(p.visible)) % len(p.visible)
}

// MoveDown moves the selection down, wrapping at the bottom.
func (p *Palette) MoveDown() {
	if len(p.visible) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.visible)
}

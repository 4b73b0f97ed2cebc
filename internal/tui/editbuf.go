package tui

import "charm.land/lipgloss/v2"

// editBuffer is a cursor-addressed line editor shared by the argument-input
// and command-line overlays. All positions are character offsets, never
// bytes, so multi-byte input stays correct. Invariant: 0 <= cursor <=
// len(runes).
type editBuffer struct {
	runes  []rune
	cursor int
}

func (b *editBuffer) String() string {
	return string(b.runes)
}

func (b *editBuffer) Len() int {
	return len(b.runes)
}

func (b *editBuffer) Cursor() int {
	return b.cursor
}

func (b *editBuffer) Empty() bool {
	return len(b.runes) == 0
}

// insertRune splits at the cursor, inserts, and advances by one.
func (b *editBuffer) insertRune(r rune) {
	b.runes = append(b.runes[:b.cursor], append([]rune{r}, b.runes[b.cursor:]...)...)
	b.cursor++
}

// insertString inserts each character of s at the cursor (key input may
// carry more than one rune, e.g. a paste).
func (b *editBuffer) insertString(s string) {
	for _, r := range s {
		b.insertRune(r)
	}
}

// backspace removes the character before the cursor; a no-op at 0.
func (b *editBuffer) backspace() {
	if b.cursor == 0 {
		return
	}
	b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
	b.cursor--
}

func (b *editBuffer) moveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *editBuffer) moveRight() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}

func (b *editBuffer) home() {
	b.cursor = 0
}

func (b *editBuffer) end() {
	b.cursor = len(b.runes)
}

// handleKey applies a common editing key, reporting whether it consumed the
// key. Printable input is handled by the caller via insertString.
func (b *editBuffer) handleKey(key string) bool {
	switch key {
	case "backspace":
		b.backspace()
	case "left":
		b.moveLeft()
	case "right":
		b.moveRight()
	case "home", "ctrl+a":
		b.home()
	case "end", "ctrl+e":
		b.end()
	default:
		return false
	}
	return true
}

// renderEditBuffer draws the buffer with a visible cursor cell.
func renderEditBuffer(b *editBuffer) string {
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if b.cursor >= len(b.runes) {
		return string(b.runes) + cursorStyle.Render(" ")
	}
	return string(b.runes[:b.cursor]) +
		cursorStyle.Render(string(b.runes[b.cursor])) +
		string(b.runes[b.cursor+1:])
}

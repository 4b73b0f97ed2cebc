package tui

import "testing"

func TestEditBufferInsertAndCursor(t *testing.T) {
	var b editBuffer
	for _, r := range "hello" {
		b.insertRune(r)
	}
	if b.String() != "hello" {
		t.Errorf("buffer = %q, want %q", b.String(), "hello")
	}
	if b.Cursor() != 5 {
		t.Errorf("cursor = %d, want 5", b.Cursor())
	}

	b.home()
	b.insertString("> ")
	if b.String() != "> hello" {
		t.Errorf("buffer = %q, want %q", b.String(), "> hello")
	}
	if b.Cursor() != 2 {
		t.Errorf("cursor after home+insert = %d, want 2", b.Cursor())
	}
}

func TestEditBufferBackspaceAtStartIsNoop(t *testing.T) {
	var b editBuffer
	b.insertString("ab")
	b.home()
	b.backspace()
	if b.String() != "ab" {
		t.Errorf("buffer = %q, want %q", b.String(), "ab")
	}
	if b.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", b.Cursor())
	}
}

func TestEditBufferMidBufferEdits(t *testing.T) {
	var b editBuffer
	b.insertString("acd")
	b.home()
	b.moveRight()
	b.insertRune('b')
	if b.String() != "abcd" {
		t.Errorf("buffer = %q, want %q", b.String(), "abcd")
	}
	b.backspace()
	if b.String() != "acd" {
		t.Errorf("buffer after backspace = %q, want %q", b.String(), "acd")
	}
}

// Cursor stays within [0, length] under any move sequence.
func TestEditBufferCursorBounds(t *testing.T) {
	var b editBuffer
	b.insertString("xy")

	for i := 0; i < 10; i++ {
		b.moveRight()
	}
	if b.Cursor() != 2 {
		t.Errorf("cursor clamped right = %d, want 2", b.Cursor())
	}
	for i := 0; i < 10; i++ {
		b.moveLeft()
	}
	if b.Cursor() != 0 {
		t.Errorf("cursor clamped left = %d, want 0", b.Cursor())
	}
	b.end()
	if b.Cursor() != b.Len() {
		t.Errorf("cursor after end = %d, want %d", b.Cursor(), b.Len())
	}
}

func TestEditBufferMultibyte(t *testing.T) {
	var b editBuffer
	b.insertString("héllo")
	if b.Len() != 5 {
		t.Errorf("rune length = %d, want 5", b.Len())
	}
	b.home()
	b.moveRight()
	b.moveRight()
	b.backspace()
	if b.String() != "hllo" {
		t.Errorf("buffer = %q, want %q", b.String(), "hllo")
	}
}

func TestEditBufferHandleKey(t *testing.T) {
	var b editBuffer
	b.insertString("abc")

	if !b.handleKey("backspace") {
		t.Error("handleKey(backspace) = false, want true")
	}
	if b.String() != "ab" {
		t.Errorf("buffer = %q, want %q", b.String(), "ab")
	}
	if !b.handleKey("ctrl+a") {
		t.Error("handleKey(ctrl+a) = false, want true")
	}
	if b.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", b.Cursor())
	}
	if b.handleKey("x") {
		t.Error("handleKey(x) = true, want false (printable input)")
	}
}

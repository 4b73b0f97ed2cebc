package runner

// Output buffer caps. When either is exceeded the oldest lines are dropped
// and a single truncation notice is recorded.
const (
	MaxLines = 10000
	MaxBytes = 1 << 20
)

// Buffer holds the captured output lines of one execution. It is owned by
// the UI thread and only ever mutated in response to drained engine events.
type Buffer struct {
	lines     []string
	bytes     int
	truncated bool
}

// Append adds one output line, evicting the oldest lines once either cap is
// exceeded.
func (b *Buffer) Append(line string) {
	b.lines = append(b.lines, line)
	b.bytes += len(line)

	for len(b.lines) > MaxLines || (b.bytes > MaxBytes && len(b.lines) > 1) {
		b.bytes -= len(b.lines[0])
		b.lines = b.lines[1:]
		b.truncated = true
	}
}

// Lines returns the retained lines, oldest first.
func (b *Buffer) Lines() []string {
	return b.lines
}

// Len returns the number of retained lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Truncated reports whether any lines were dropped.
func (b *Buffer) Truncated() bool {
	return b.truncated
}

// Reset discards all content for reuse by a new execution.
func (b *Buffer) Reset() {
	b.lines = nil
	b.bytes = 0
	b.truncated = false
}

package display

import (
	"io"
	"strings"
	"sync"
)

const (
	cursorUp  = "\x1b[1A"
	clearLine = "\x1b[2K"
)

// terminalSurface overwrites its frame in place using ANSI cursor movement.
// It remembers how many lines the last frame occupied so the next write can
// move back over them.
//
// Mutable
type terminalSurface struct {
	mu        sync.Mutex
	out       io.Writer
	lastLines int
}

// NewTerminal creates a live surface over w. The caller is responsible for w
// actually honoring ANSI escapes; use Detect to decide automatically.
func NewTerminal(w io.Writer) Surface {
	return &terminalSurface{out: w}
}

func (t *terminalSurface) IsLiveCapable() bool { return true }

// WriteFrame erases the previous frame and writes the new one in its place.
// Frames are expected to end each row with a newline, leaving the cursor in
// column zero below the live region.
func (t *terminalSurface) WriteFrame(frame string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.eraseLocked()
	io.WriteString(t.out, frame)
	t.lastLines = strings.Count(frame, "\n")
}

func (t *terminalSurface) EraseLastFrame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.eraseLocked()
}

func (t *terminalSurface) eraseLocked() {
	for i := 0; i < t.lastLines; i++ {
		io.WriteString(t.out, cursorUp+clearLine)
	}
	t.lastLines = 0
}

func (t *terminalSurface) WriteLine(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	io.WriteString(t.out, text)
}

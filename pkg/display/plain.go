package display

import (
	"io"
	"strings"
	"sync"
)

// plainSurface is the degraded mode for non-interactive sinks: no cursor
// movement, frames appear as periodic snapshot lines. Identical consecutive
// frames are suppressed so a fast refresh loop does not flood the sink.
//
// Mutable
type plainSurface struct {
	mu        sync.Mutex
	out       io.Writer
	lastFrame string
}

// NewPlain creates an append-only surface over w.
func NewPlain(w io.Writer) Surface {
	return &plainSurface{out: w}
}

func (p *plainSurface) IsLiveCapable() bool { return false }

func (p *plainSurface) WriteFrame(frame string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if frame == p.lastFrame {
		return
	}
	io.WriteString(p.out, frame)
	p.lastFrame = frame
}

// EraseLastFrame only forgets the suppression state; written lines are not
// recalled on an append-only sink.
func (p *plainSurface) EraseLastFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastFrame = ""
}

func (p *plainSurface) WriteLine(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	io.WriteString(p.out, text)
}

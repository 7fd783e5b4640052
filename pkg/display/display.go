// Package display provides the output surfaces a progress session draws on:
// a live terminal surface that overwrites its frame in place, and a plain
// surface for non-interactive sinks that degrades to snapshot lines.
package display

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Detect picks a surface for w: a live terminal surface when w is an
// interactive terminal, a plain surface otherwise.
func Detect(w io.Writer) Surface {
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return NewTerminal(w)
		}
	}
	return NewPlain(w)
}

// Surface is what a session draws on. It mirrors the consumer-side interface
// in pkg/progress; implementations here satisfy both.
type Surface interface {
	IsLiveCapable() bool
	WriteFrame(frame string)
	EraseLastFrame()
	WriteLine(text string)
}

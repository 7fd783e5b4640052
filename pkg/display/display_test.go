package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalSurface(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewTerminal(buf)

	if !s.IsLiveCapable() {
		t.Fatal("terminal surface must be live-capable")
	}

	s.WriteFrame("one\ntwo\n")
	if got := buf.String(); got != "one\ntwo\n" {
		t.Errorf("first frame should write plainly, got %q", got)
	}

	buf.Reset()
	s.WriteFrame("three\n")
	// Two rows to erase: move up + clear line for each.
	if !strings.HasPrefix(buf.String(), "\x1b[1A\x1b[2K\x1b[1A\x1b[2K") {
		t.Errorf("expected ANSI clear codes, got: %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "three\n") {
		t.Errorf("expected new frame after erase, got: %q", buf.String())
	}

	buf.Reset()
	s.EraseLastFrame()
	if got := buf.String(); got != "\x1b[1A\x1b[2K" {
		t.Errorf("expected single-row erase, got: %q", got)
	}

	buf.Reset()
	s.WriteFrame("four\n")
	if got := buf.String(); got != "four\n" {
		t.Errorf("erase must reset the tracked region, got: %q", got)
	}
}

func TestTerminalWriteLine(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewTerminal(buf)

	s.WriteLine("hello")
	s.WriteLine("world\n")
	if got := buf.String(); got != "hello\nworld\n" {
		t.Errorf("lines must be newline-terminated exactly once, got: %q", got)
	}
}

func TestPlainSurface(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewPlain(buf)

	if s.IsLiveCapable() {
		t.Fatal("plain surface must not claim live capability")
	}

	s.WriteFrame("snap\n")
	s.WriteFrame("snap\n")
	if got := buf.String(); got != "snap\n" {
		t.Errorf("identical frames should be suppressed, got: %q", got)
	}

	s.WriteFrame("next\n")
	if got := buf.String(); got != "snap\nnext\n" {
		t.Errorf("changed frame should append, got: %q", got)
	}

	s.EraseLastFrame()
	s.WriteFrame("next\n")
	if got := buf.String(); got != "snap\nnext\nnext\n" {
		t.Errorf("erase resets suppression, got: %q", got)
	}
}

func TestDetectNonTerminal(t *testing.T) {
	s := Detect(&bytes.Buffer{})
	if s.IsLiveCapable() {
		t.Error("a plain buffer is not a live surface")
	}
}

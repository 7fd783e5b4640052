package progress

// Renderer turns an ordered list of visible task snapshots into one display
// frame. Implementations must be pure with respect to their input: rendering
// the same snapshot twice yields an identical frame.
type Renderer interface {
	Render(tasks []Task) (string, error)
}

// Column renders one cell of a task row. A column is either a literal
// template over task fields (TextColumn) or any RenderCell implementation;
// the renderer walks a fixed ordered list of them.
type Column interface {
	RenderCell(t Task) string
}

// Surface is the output target a session draws on. Implementations for a
// real terminal and for a plain log sink differ only here. While a session
// is active, only the refresh loop and the interleaving guard write to the
// surface, never concurrently.
type Surface interface {
	// IsLiveCapable reports whether frames can be overwritten in place.
	IsLiveCapable() bool
	// WriteFrame replaces the previously written frame with frame.
	WriteFrame(frame string)
	// EraseLastFrame removes the live region from the output.
	EraseLastFrame()
	// WriteLine writes one line of ad-hoc output, terminated by a newline.
	WriteLine(text string)
}

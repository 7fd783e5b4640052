package columns

import (
	"strings"
	"time"

	"tally/pkg/progress"
)

// Bar renders a progress bar of the given glyph width. Tasks without a total
// pulse instead: a band of highlighted glyphs sweeps across the bar, its
// position derived from the task's elapsed time so rendering stays pure over
// the snapshot.
func Bar(width int) progress.Column {
	if width <= 0 {
		width = 40
	}
	return barColumn{width: width, theme: DefaultTheme(), pulsePeriod: 120 * time.Millisecond}
}

type barColumn struct {
	width       int
	theme       *Theme
	pulsePeriod time.Duration
}

const pulseBand = 6

func (c barColumn) RenderCell(t progress.Task) string {
	if !t.HasPercentage {
		return c.renderPulse(t)
	}

	done := int(t.Percentage / 100 * float64(c.width))
	if t.Finished {
		done = c.width
	}
	if done > c.width {
		done = c.width
	}

	var sb strings.Builder
	if done > 0 {
		style := c.theme.BarDone
		if t.Finished {
			style = c.theme.Finished
		}
		sb.WriteString(style.Render(strings.Repeat(c.theme.BarDoneGlyph, done)))
	}
	if rest := c.width - done; rest > 0 {
		sb.WriteString(c.theme.BarRest.Render(strings.Repeat(c.theme.BarRestGlyph, rest)))
	}
	return sb.String()
}

func (c barColumn) renderPulse(t progress.Task) string {
	offset := 0
	if t.Started {
		offset = int(t.Elapsed/c.pulsePeriod) % c.width
	}

	var sb strings.Builder
	for i := 0; i < c.width; i++ {
		if (i-offset+c.width)%c.width < pulseBand {
			sb.WriteString(c.theme.BarPulse.Render(c.theme.BarDoneGlyph))
		} else {
			sb.WriteString(c.theme.BarRest.Render(c.theme.BarRestGlyph))
		}
	}
	return sb.String()
}

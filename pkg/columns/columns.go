// Package columns ships the styled cell formatters composed by the default
// renderer: description, bar, percentage, timing, transfer speed and size
// widgets. Every column is pure over the task snapshot it receives, so a
// frame re-rendered from the same snapshot is byte-identical.
package columns

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"tally/pkg/progress"
)

// Defaults is the standard column set: description, bar, percentage and
// elapsed time.
func Defaults() []progress.Column {
	return []progress.Column{
		Description(0),
		Bar(40),
		Percentage(),
		Elapsed(),
	}
}

// Description renders the task label, truncated to width when width > 0.
func Description(width int) progress.Column {
	return descriptionColumn{width: width, theme: DefaultTheme()}
}

type descriptionColumn struct {
	width int
	theme *Theme
}

func (c descriptionColumn) RenderCell(t progress.Task) string {
	desc := t.Description
	if c.width > 0 {
		desc = runewidth.Truncate(desc, c.width, "…")
	}
	return c.theme.Description.Render(desc)
}

// Percentage renders the completion percentage, right-aligned; "?" while the
// task has no defined total.
func Percentage() progress.Column {
	return percentageColumn{theme: DefaultTheme()}
}

type percentageColumn struct {
	theme *Theme
}

func (c percentageColumn) RenderCell(t progress.Task) string {
	if !t.HasPercentage {
		return c.theme.Percentage.Render("  ?%")
	}
	return c.theme.Percentage.Render(fmt.Sprintf("%3.0f%%", t.Percentage))
}

// Elapsed renders time since the task started as H:MM:SS.
func Elapsed() progress.Column {
	return elapsedColumn{theme: DefaultTheme()}
}

type elapsedColumn struct {
	theme *Theme
}

func (c elapsedColumn) RenderCell(t progress.Task) string {
	if !t.Started {
		return c.theme.Time.Render("-:--:--")
	}
	return c.theme.Time.Render(clock(t.Elapsed))
}

// Remaining renders the estimated time to completion; "-:--:--" while the
// estimate is unknown.
func Remaining() progress.Column {
	return remainingColumn{theme: DefaultTheme()}
}

type remainingColumn struct {
	theme *Theme
}

func (c remainingColumn) RenderCell(t progress.Task) string {
	if !t.HasRemaining || t.Remaining < 0 {
		return c.theme.Time.Render("-:--:--")
	}
	return c.theme.Time.Render(clock(t.Remaining))
}

// TransferSpeed renders throughput as bytes per second; "?" while the speed
// is unknown or not positive.
func TransferSpeed() progress.Column {
	return speedColumn{theme: DefaultTheme()}
}

type speedColumn struct {
	theme *Theme
}

func (c speedColumn) RenderCell(t progress.Task) string {
	if !t.HasSpeed || t.Speed <= 0 {
		return c.theme.Speed.Render("?")
	}
	return c.theme.Speed.Render(humanize.Bytes(uint64(t.Speed)) + "/s")
}

// DownloadSize renders completed/total as humanized byte counts.
func DownloadSize() progress.Column {
	return downloadColumn{theme: DefaultTheme()}
}

type downloadColumn struct {
	theme *Theme
}

func (c downloadColumn) RenderCell(t progress.Task) string {
	done := humanize.Bytes(uint64(max(t.Completed, 0)))
	if !t.HasTotal {
		return c.theme.Time.Render(done)
	}
	return c.theme.Time.Render(done + " / " + humanize.Bytes(uint64(max(t.Total, 0))))
}

// Spinner renders an activity indicator whose frame advances with the task's
// elapsed time, so it spins while work is ongoing and holds still once the
// task stops.
func Spinner() progress.Column {
	return spinnerColumn{theme: DefaultTheme(), period: 80 * time.Millisecond}
}

type spinnerColumn struct {
	theme  *Theme
	period time.Duration
}

func (c spinnerColumn) RenderCell(t progress.Task) string {
	if t.Finished {
		return c.theme.Finished.Render("✔")
	}
	frames := c.theme.SpinnerFrames
	idx := int(t.Elapsed/c.period) % len(frames)
	return c.theme.BarPulse.Render(frames[idx])
}

func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// Package progress implements a thread-safe registry of live tasks and the
// session machinery that renders them to a terminal at a fixed cadence.
// Rendering always happens on an immutable snapshot taken under the registry
// lock, so slow terminal I/O never blocks callers pushing updates.
package progress

import "time"

// TaskID identifies a task for its whole lifetime. IDs are assigned by the
// registry at Add and stay valid until Remove.
type TaskID string

// Value is a typed field value attached to a task. Columns look up the keys
// they know about; an unrecognized key is simply unused, never an error.
type Value struct {
	kind valueKind
	num  float64
	str  string
	b    bool
}

type valueKind int

const (
	kindNumber valueKind = iota
	kindText
	kindBool
)

// Number wraps a numeric field value.
func Number(v float64) Value { return Value{kind: kindNumber, num: v} }

// Text wraps a textual field value.
func Text(v string) Value { return Value{kind: kindText, str: v} }

// Bool wraps a boolean field value.
func Bool(v bool) Value { return Value{kind: kindBool, b: v} }

// Number returns the numeric value, or false if the value is not a number.
func (v Value) Number() (float64, bool) { return v.num, v.kind == kindNumber }

// Text returns the textual value, or false if the value is not text.
func (v Value) Text() (string, bool) { return v.str, v.kind == kindText }

// Bool returns the boolean value, or false if the value is not a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == kindBool }

// String renders the value for display regardless of its kind.
func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.str
	case kindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return formatNumber(v.num)
	}
}

// Sample is one (timestamp, completed) observation used for speed estimation.
type Sample struct {
	Time      time.Time
	Completed float64
}

// Task is an immutable point-in-time copy of one tracked unit of work, as
// handed to renderers and columns. The derived fields are computed once when
// the snapshot is taken, so rendering the same snapshot twice yields the same
// output.
type Task struct {
	ID          TaskID
	Description string
	Completed   float64
	Total       float64
	HasTotal    bool
	StartTime   time.Time
	StopTime    time.Time
	Visible     bool
	Fields      map[string]Value

	// Derived at snapshot time.
	Started       bool
	Finished      bool
	Percentage    float64
	HasPercentage bool
	Elapsed       time.Duration
	Speed         float64
	HasSpeed      bool
	Remaining     time.Duration
	HasRemaining  bool
}

// Field returns the named metadata value, or false if the key is unset.
func (t Task) Field(key string) (Value, bool) {
	v, ok := t.Fields[key]
	return v, ok
}

// taskState is the mutable task record owned by the registry. All access
// goes through the registry lock.
type taskState struct {
	id          TaskID
	description string
	completed   float64
	total       float64
	hasTotal    bool
	startTime   time.Time
	stopTime    time.Time
	visible     bool
	fields      map[string]Value
	samples     []Sample
}

func (ts *taskState) started() bool { return !ts.startTime.IsZero() }

func (ts *taskState) finished() bool {
	return ts.hasTotal && ts.completed >= ts.total
}

// recordSample appends a progress observation and evicts entries that fall
// outside the estimation window.
func (ts *taskState) recordSample(now time.Time) {
	ts.samples = append(ts.samples, Sample{Time: now, Completed: ts.completed})
	ts.samples = trimSamples(ts.samples, now)
}

// snapshot copies the task and computes its derived fields against now.
// Elapsed and the estimation freeze at stopTime once the task is stopped.
func (ts *taskState) snapshot(now time.Time) Task {
	t := Task{
		ID:          ts.id,
		Description: ts.description,
		Completed:   ts.completed,
		Total:       ts.total,
		HasTotal:    ts.hasTotal,
		StartTime:   ts.startTime,
		StopTime:    ts.stopTime,
		Visible:     ts.visible,
		Started:     ts.started(),
		Finished:    ts.finished(),
	}

	if len(ts.fields) > 0 {
		t.Fields = make(map[string]Value, len(ts.fields))
		for k, v := range ts.fields {
			t.Fields[k] = v
		}
	}

	switch {
	case t.Finished:
		// Finished tasks report exactly 100% regardless of float drift.
		t.Percentage, t.HasPercentage = 100, true
	case ts.hasTotal && ts.total > 0:
		pct := ts.completed / ts.total * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		t.Percentage, t.HasPercentage = pct, true
	}

	if t.Started {
		end := now
		if !ts.stopTime.IsZero() {
			end = ts.stopTime
		}
		if d := end.Sub(ts.startTime); d > 0 {
			t.Elapsed = d
		}

		if speed, ok := sampleSpeed(ts.samples); ok {
			t.Speed, t.HasSpeed = speed, true
		}
	}

	switch {
	case t.Finished:
		t.Remaining, t.HasRemaining = 0, true
	case t.HasSpeed && t.Speed > 0 && ts.hasTotal:
		secs := (ts.total - ts.completed) / t.Speed
		t.Remaining, t.HasRemaining = time.Duration(secs*float64(time.Second)), true
	}

	return t
}

package progress

import (
	"io"
	"log"
)

// TaskOption configures a task at creation time.
type TaskOption func(*taskOptions)

type taskOptions struct {
	total    float64
	hasTotal bool
	start    bool
	visible  bool
	fields   map[string]Value
}

// WithTotal sets the task's completion target. Tasks without a total are
// indeterminate and render a pulsing bar instead of a percentage.
func WithTotal(total float64) TaskOption {
	return func(o *taskOptions) {
		o.total = total
		o.hasTotal = true
	}
}

// NotStarted creates the task without a start time. Elapsed and speed stay
// undefined until StartTask is called.
func NotStarted() TaskOption {
	return func(o *taskOptions) { o.start = false }
}

// Hidden creates the task excluded from rendering. It still lives in the
// registry and can be made visible later.
func Hidden() TaskOption {
	return func(o *taskOptions) { o.visible = false }
}

// WithFields attaches caller-defined metadata consumed by custom columns.
func WithFields(fields map[string]Value) TaskOption {
	return func(o *taskOptions) {
		if o.fields == nil {
			o.fields = make(map[string]Value, len(fields))
		}
		for k, v := range fields {
			o.fields[k] = v
		}
	}
}

// UpdateOption mutates a subset of a task's fields in one atomic Update.
type UpdateOption func(*updateSpec)

type updateSpec struct {
	completed    *float64
	advance      float64
	hasAdvance   bool
	total        *float64
	description  *string
	visible      *bool
	fields       map[string]Value
	refresh      bool
}

// Completed sets the absolute progress counter. When combined with Advance
// in the same Update, the absolute value is applied first and the advance is
// added on top.
func Completed(v float64) UpdateOption {
	return func(s *updateSpec) { s.completed = &v }
}

// Advance adds amount to the progress counter.
func Advance(amount float64) UpdateOption {
	return func(s *updateSpec) {
		s.advance += amount
		s.hasAdvance = true
	}
}

// Total changes the completion target.
func Total(v float64) UpdateOption {
	return func(s *updateSpec) { s.total = &v }
}

// Description changes the display label.
func Description(d string) UpdateOption {
	return func(s *updateSpec) { s.description = &d }
}

// Visible toggles whether the task is rendered.
func Visible(v bool) UpdateOption {
	return func(s *updateSpec) { s.visible = &v }
}

// Fields merges caller-defined metadata into the task.
func Fields(fields map[string]Value) UpdateOption {
	return func(s *updateSpec) {
		if s.fields == nil {
			s.fields = make(map[string]Value, len(fields))
		}
		for k, v := range fields {
			s.fields[k] = v
		}
	}
}

// Refresh forces an immediate render after the update when issued through a
// session. It has no effect on a bare registry.
func Refresh() UpdateOption {
	return func(s *updateSpec) { s.refresh = true }
}

func buildUpdate(opts []UpdateOption) *updateSpec {
	spec := &updateSpec{}
	for _, opt := range opts {
		opt(spec)
	}
	return spec
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	refreshPerSecond float64
	autoRefresh      bool
	transient        bool
	columns          []Column
	renderer         Renderer
	surface          Surface
	registry         *Registry
	logger           *log.Logger
	redirectLog      bool
	redirectStdout   bool
}

// WithRefreshPerSecond sets the tick cadence of the refresh loop.
// Default is 10.
func WithRefreshPerSecond(rps float64) Option {
	return func(o *sessionOptions) { o.refreshPerSecond = rps }
}

// WithAutoRefresh controls the background refresh loop. When disabled, a
// frame is rendered only on explicit Refresh calls. Default is true.
func WithAutoRefresh(auto bool) Option {
	return func(o *sessionOptions) { o.autoRefresh = auto }
}

// WithTransient erases the final frame when the session stops instead of
// leaving it in place. Default is false.
func WithTransient(transient bool) Option {
	return func(o *sessionOptions) { o.transient = transient }
}

// WithColumns sets the ordered column list rendered for each task.
func WithColumns(cols ...Column) Option {
	return func(o *sessionOptions) { o.columns = cols }
}

// WithRenderer replaces the row renderer entirely. Overrides WithColumns.
func WithRenderer(r Renderer) Option {
	return func(o *sessionOptions) { o.renderer = r }
}

// WithSurface sets the output surface. Default is an auto-detected surface
// over standard error.
func WithSurface(s Surface) Option {
	return func(o *sessionOptions) { o.surface = s }
}

// WithRegistry attaches an existing registry instead of creating a fresh one,
// allowing several sessions over the lifetime of one task set.
func WithRegistry(r *Registry) Option {
	return func(o *sessionOptions) { o.registry = r }
}

// WithLogOutput sets the side channel for errors raised inside the refresh
// loop. Default is standard error.
func WithLogOutput(w io.Writer) Option {
	return func(o *sessionOptions) { o.logger = log.New(w, "", log.LstdFlags) }
}

// WithRedirectLog controls whether the standard log package's output is
// routed through the interleaving guard while the session runs, so log lines
// appear above the live region. Default is true.
func WithRedirectLog(redirect bool) Option {
	return func(o *sessionOptions) { o.redirectLog = redirect }
}

// WithRedirectStdout reroutes os.Stdout through the interleaving guard while
// the session runs. Restored on Stop. Default is false.
func WithRedirectStdout(redirect bool) Option {
	return func(o *sessionOptions) { o.redirectStdout = redirect }
}

package progress

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"tally/pkg/display"
)

type sessionState int32

const (
	stateIdle sessionState = iota
	stateRunning
	stateStopped
)

// Session ties a registry, a renderer and an output surface into a
// start/stop-able live display. One background goroutine samples the registry
// at a fixed cadence and redraws the frame in place; ad-hoc lines go through
// WriteLine so they land above the live region. A stopped session is
// terminal: construct a new one to display again.
//
// Mutable
type Session struct {
	reg      *Registry
	renderer Renderer
	surface  Surface
	logger   *log.Logger

	interval       time.Duration
	autoRefresh    bool
	transient      bool
	redirectLog    bool
	redirectStdout bool

	state atomic.Int32
	done  chan struct{}
	wg    sync.WaitGroup

	// renderMu serializes every frame write and ad-hoc line so a timer tick
	// and a WriteLine can never interleave their cursor movements.
	renderMu sync.Mutex

	prevLogOut io.Writer
	prevStdout *os.File
	pipeW      *os.File
	copyWG     sync.WaitGroup
}

// New creates a session. Misconfiguration (a refresh rate that is not
// positive) is rejected here rather than producing undefined timer behavior.
func New(opts ...Option) (*Session, error) {
	o := &sessionOptions{
		refreshPerSecond: 10,
		autoRefresh:      true,
		redirectLog:      true,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.refreshPerSecond <= 0 {
		return nil, fmt.Errorf("refresh rate must be positive, got %v", o.refreshPerSecond)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.renderer == nil {
		cols := o.columns
		if len(cols) == 0 {
			cols = DefaultColumns()
		}
		o.renderer = NewRowRenderer(cols...)
	}
	if o.surface == nil {
		o.surface = display.Detect(os.Stderr)
	}
	if o.logger == nil {
		o.logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	return &Session{
		reg:            o.registry,
		renderer:       o.renderer,
		surface:        o.surface,
		logger:         o.logger,
		interval:       time.Duration(float64(time.Second) / o.refreshPerSecond),
		autoRefresh:    o.autoRefresh,
		transient:      o.transient,
		redirectLog:    o.redirectLog,
		redirectStdout: o.redirectStdout,
		done:           make(chan struct{}),
	}, nil
}

// Tasks returns the session's registry for direct use.
func (s *Session) Tasks() *Registry { return s.reg }

// Add creates a task in the session's registry.
func (s *Session) Add(description string, opts ...TaskOption) TaskID {
	return s.reg.Add(description, opts...)
}

// Update applies field changes to a task. With the Refresh option the frame
// is redrawn immediately instead of waiting for the next tick.
func (s *Session) Update(id TaskID, opts ...UpdateOption) error {
	spec := buildUpdate(opts)
	if err := s.reg.update(id, spec); err != nil {
		return err
	}
	if spec.refresh {
		s.Refresh()
	}
	return nil
}

// Advance adds amount to a task's progress counter.
func (s *Session) Advance(id TaskID, amount float64) error {
	return s.reg.AdvanceTask(id, amount)
}

// StartTask starts a task created with NotStarted.
func (s *Session) StartTask(id TaskID) error { return s.reg.StartTask(id) }

// StopTask stops a task, freezing its elapsed time and speed.
func (s *Session) StopTask(id TaskID) error { return s.reg.StopTask(id) }

// Remove deletes a task from the registry.
func (s *Session) Remove(id TaskID) error { return s.reg.Remove(id) }

// FinishedAll reports whether every task with a total has reached it.
func (s *Session) FinishedAll() bool { return s.reg.FinishedAll() }

// Start renders an initial frame and launches the refresh loop. It fails if
// the session is already running or was stopped.
func (s *Session) Start() error {
	if !s.state.CompareAndSwap(int32(stateIdle), int32(stateRunning)) {
		switch sessionState(s.state.Load()) {
		case stateRunning:
			return fmt.Errorf("session already started")
		default:
			return fmt.Errorf("session was stopped; create a new one")
		}
	}

	s.installRedirects()
	s.tick()

	if s.autoRefresh {
		s.wg.Add(1)
		go s.loop()
	}
	return nil
}

// Stop halts the refresh loop, restores any redirected output and settles
// the final frame: erased for a transient session, left in place with a
// trailing line break otherwise. Stop is idempotent and safe to call on a
// session that never started.
func (s *Session) Stop() {
	if !s.state.CompareAndSwap(int32(stateRunning), int32(stateStopped)) {
		return
	}

	close(s.done)
	s.wg.Wait()
	s.restoreRedirects()

	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	if s.transient {
		s.surface.EraseLastFrame()
		return
	}
	s.renderLocked()
}

// Run starts the session, invokes fn and guarantees Stop on every exit path,
// panics included.
func (s *Session) Run(fn func() error) error {
	if err := s.Start(); err != nil {
		return err
	}
	defer s.Stop()
	return fn()
}

// Refresh forces an immediate render outside the timer cadence. Renders are
// serialized with timer ticks, so two frames never interleave.
func (s *Session) Refresh() {
	if sessionState(s.state.Load()) != stateRunning {
		return
	}
	s.tick()
}

// WriteLine is the output interleaving guard: it erases the live frame,
// writes the caller's text above it and redraws a fresh frame, all under the
// same exclusivity as a refresh tick.
func (s *Session) WriteLine(text string) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.surface.EraseLastFrame()
	s.surface.WriteLine(text)
	if sessionState(s.state.Load()) == stateRunning {
		s.renderLocked()
	}
}

// loop is the background refresh goroutine. It observes the stop signal
// within one interval.
func (s *Session) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Session) tick() {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	s.renderLocked()
}

// renderLocked snapshots, renders and writes one frame. A renderer error or
// panic is reported on the side channel and the frame skipped; the next tick
// proceeds normally. Callers hold renderMu.
func (s *Session) renderLocked() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("progress: render panic: %v", r)
		}
	}()

	snap := s.reg.Snapshot()
	visible := snap[:0]
	for _, t := range snap {
		if t.Visible {
			visible = append(visible, t)
		}
	}

	frame, err := s.renderer.Render(visible)
	if err != nil {
		s.logger.Printf("progress: render: %v", err)
		return
	}
	s.surface.WriteFrame(frame)
}

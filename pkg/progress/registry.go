package progress

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrTaskNotFound reports an operation against an unknown task id.
var ErrTaskNotFound = errors.New("task not found")

// Registry owns all tracked tasks. Tasks are stored in a map for O(1) lookup
// and a separate slice preserving insertion order for stable snapshots.
// Every mutation and the snapshot read take the same lock, so a concurrent
// render never observes a half-updated task.
//
// Mutable
type Registry struct {
	mu    sync.Mutex
	tasks map[TaskID]*taskState
	order []TaskID
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[TaskID]*taskState)}
}

// Add creates a task and returns its id. Unless NotStarted is given the task
// starts immediately, recording its start time and seeding one sample so the
// estimator has a baseline.
func (r *Registry) Add(description string, opts ...TaskOption) TaskID {
	o := &taskOptions{start: true, visible: true}
	for _, opt := range opts {
		opt(o)
	}

	ts := &taskState{
		id:          TaskID(uuid.NewString()),
		description: description,
		total:       o.total,
		hasTotal:    o.hasTotal,
		visible:     o.visible,
		fields:      o.fields,
	}
	if ts.fields == nil {
		ts.fields = make(map[string]Value)
	}
	if o.start {
		now := time.Now()
		ts.startTime = now
		ts.recordSample(now)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[ts.id] = ts
	r.order = append(r.order, ts.id)
	return ts.id
}

// Update applies any subset of field changes to a task in one atomic step.
// An absolute Completed is applied before Advance when both are given. A new
// sample is recorded whenever the progress counter changes, and reaching the
// total stamps the stop time if it is not already set. Updating a task does
// not start it.
func (r *Registry) Update(id TaskID, opts ...UpdateOption) error {
	return r.update(id, buildUpdate(opts))
}

func (r *Registry) update(id TaskID, spec *updateSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("update task %s: %w", id, ErrTaskNotFound)
	}

	if spec.description != nil {
		ts.description = *spec.description
	}
	if spec.visible != nil {
		ts.visible = *spec.visible
	}
	for k, v := range spec.fields {
		ts.fields[k] = v
	}

	totalChanged := false
	if spec.total != nil {
		ts.total = *spec.total
		ts.hasTotal = true
		totalChanged = true
	}

	prev := ts.completed
	if spec.completed != nil {
		ts.completed = *spec.completed
	}
	if spec.hasAdvance {
		ts.completed += spec.advance
	}

	if ts.completed != prev {
		ts.recordSample(time.Now())
	}
	if (ts.completed != prev || totalChanged) && ts.finished() && ts.stopTime.IsZero() {
		ts.stopTime = time.Now()
	}
	return nil
}

// AdvanceTask adds amount to a task's progress counter.
func (r *Registry) AdvanceTask(id TaskID, amount float64) error {
	return r.Update(id, Advance(amount))
}

// StartTask records the task's start time if it has none yet, seeding a
// sample at the current progress value.
func (r *Registry) StartTask(id TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("start task %s: %w", id, ErrTaskNotFound)
	}
	if ts.startTime.IsZero() {
		now := time.Now()
		ts.startTime = now
		ts.recordSample(now)
	}
	return nil
}

// StopTask records the task's stop time if it has none yet. Elapsed time and
// speed freeze at the stop instant.
func (r *Registry) StopTask(id TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("stop task %s: %w", id, ErrTaskNotFound)
	}
	if ts.stopTime.IsZero() {
		ts.stopTime = time.Now()
	}
	return nil
}

// Remove deletes the task. Subsequent operations on the id fail with
// ErrTaskNotFound.
func (r *Registry) Remove(id TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("remove task %s: %w", id, ErrTaskNotFound)
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Task returns a snapshot of a single task.
func (r *Registry) Task(id TaskID) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts, ok := r.tasks[id]
	if !ok {
		return Task{}, fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}
	return ts.snapshot(time.Now()), nil
}

// Snapshot returns point-in-time copies of all tasks in insertion order,
// taken under a single critical section.
func (r *Registry) Snapshot() []Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	out := make([]Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id].snapshot(now))
	}
	return out
}

// FinishedAll reports whether every task with a total has reached it. An
// empty registry counts as finished.
func (r *Registry) FinishedAll() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ts := range r.tasks {
		if ts.hasTotal && !ts.finished() {
			return false
		}
	}
	return true
}

// Len returns the number of tasks in the registry, hidden ones included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

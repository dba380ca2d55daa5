// Package progress holds the transient, real-time view of in-flight jobs.
// Trackers are the only live view of a running extraction; the persisted
// document record is the durable source of truth once a tracker is retired.
package progress

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-extractor/constants"
)

// EventKind tags what a tracker event reports.
type EventKind string

const (
	EventProgress EventKind = "progress"
	EventStatus   EventKind = "status"
	EventError    EventKind = "error"
)

// Event is one checkpoint emitted by a tracker. Events are sent on a buffered
// channel with a non-blocking send; a slow or absent observer never stalls the
// orchestrator.
type Event struct {
	JobID    uuid.UUID
	Kind     EventKind
	Status   constants.ProcessingStatus
	Progress int
	Step     string
	Error    string
	At       time.Time
}

// Snapshot is the poll-friendly view of a tracker.
type Snapshot struct {
	Status   constants.ProcessingStatus `json:"status"`
	Progress int                        `json:"progress"`
	Step     string                     `json:"step"`
	Elapsed  time.Duration              `json:"-"`
}

const eventBuffer = 16

// Tracker tracks one job. It starts in "processing": there is no observable
// pending tracker state, pending exists only on the document record before a
// tracker is created.
type Tracker struct {
	jobID     uuid.UUID
	startTime time.Time
	events    chan Event

	mu       sync.Mutex
	status   constants.ProcessingStatus
	progress int
	step     string
}

func newTracker(jobID uuid.UUID) *Tracker {
	return &Tracker{
		jobID:     jobID,
		startTime: time.Now(),
		status:    constants.StatusProcessing,
		events:    make(chan Event, eventBuffer),
	}
}

// UpdateProgress clamps value to [0,100], records the step and emits a
// progress event.
func (t *Tracker) UpdateProgress(value int, step string) {
	if value < 0 {
		value = 0
	} else if value > 100 {
		value = 100
	}

	t.mu.Lock()
	t.progress = value
	t.step = step
	ev := t.eventLocked(EventProgress, "")
	t.mu.Unlock()

	t.emit(ev)
}

// SetStatus transitions the tracker and emits a status event.
func (t *Tracker) SetStatus(status constants.ProcessingStatus, step string) {
	t.mu.Lock()
	t.status = status
	if step != "" {
		t.step = step
	}
	ev := t.eventLocked(EventStatus, "")
	t.mu.Unlock()

	t.emit(ev)
}

// Complete marks the job finished and pins progress at 100.
func (t *Tracker) Complete() {
	t.SetStatus(constants.StatusCompleted, "done")
	t.UpdateProgress(100, "done")
}

// Fail marks the job failed and emits an error event carrying the message.
func (t *Tracker) Fail(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}

	t.mu.Lock()
	t.status = constants.StatusFailed
	t.step = "failed: " + msg
	ev := t.eventLocked(EventError, msg)
	t.mu.Unlock()

	t.emit(ev)
}

// Snapshot returns the current status, progress, step and elapsed time.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Status:   t.status,
		Progress: t.progress,
		Step:     t.step,
		Elapsed:  time.Since(t.startTime),
	}
}

// Events exposes the tracker's event stream for push-based observers.
func (t *Tracker) Events() <-chan Event {
	return t.events
}

func (t *Tracker) eventLocked(kind EventKind, errMsg string) Event {
	return Event{
		JobID:    t.jobID,
		Kind:     kind,
		Status:   t.status,
		Progress: t.progress,
		Step:     t.step,
		Error:    errMsg,
		At:       time.Now(),
	}
}

func (t *Tracker) emit(ev Event) {
	select {
	case t.events <- ev:
	default: // observer is behind; drop rather than block the pipeline
	}
}

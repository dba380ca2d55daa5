package progress

import (
	"sync"

	"github.com/google/uuid"
)

// Registry is the process-wide map from job id to its active tracker. It is
// constructor-injected everywhere it is needed; there is no package-level
// singleton. At most one active tracker exists per job id.
type Registry struct {
	mu       sync.Mutex
	trackers map[uuid.UUID]*Tracker
}

func NewRegistry() *Registry {
	return &Registry{trackers: make(map[uuid.UUID]*Tracker)}
}

// Create inserts and returns a new tracker for jobID, overwriting any stale
// entry for the same id.
func (r *Registry) Create(jobID uuid.UUID) *Tracker {
	t := newTracker(jobID)
	r.mu.Lock()
	r.trackers[jobID] = t
	r.mu.Unlock()
	return t
}

// Get returns the tracker for jobID, or false if none is registered. Callers
// must fall back to the persisted record when the tracker is absent.
func (r *Registry) Get(jobID uuid.UUID) (*Tracker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trackers[jobID]
	return t, ok
}

// Remove deletes the entry for jobID.
func (r *Registry) Remove(jobID uuid.UUID) {
	r.mu.Lock()
	delete(r.trackers, jobID)
	r.mu.Unlock()
}

// Len reports the number of active trackers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trackers)
}

package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mohan/resume-optimizer/internal/crew"
	"github.com/mohan/resume-optimizer/internal/runner"
)

// Phase is the lifecycle state of a run.
type Phase string

const (
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"
)

// runState tracks one in-flight or finished run. Results live in memory for
// the lifetime of the process; the archived files persist on disk.
type runState struct {
	mu          sync.Mutex
	id          uuid.UUID
	phase       Phase
	startedAt   time.Time
	result      *runner.Result
	err         error
	events      []crew.ProgressEvent
	subscribers []chan crew.ProgressEvent
	done        chan struct{}
}

// snapshot returns the state fields under the lock.
func (r *runState) snapshot() (Phase, *runner.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase, r.result, r.err
}

// appendEvent records a progress event and fans it out to subscribers.
func (r *runState) appendEvent(e crew.ProgressEvent) {
	r.mu.Lock()
	r.events = append(r.events, e)
	subs := make([]chan crew.ProgressEvent, len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default: // slow subscriber drops the event, replay is not retried
		}
	}
}

// subscribe returns past events plus a channel for live ones. The done
// channel closes when the run finishes.
func (r *runState) subscribe() ([]crew.ProgressEvent, chan crew.ProgressEvent, <-chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	past := make([]crew.ProgressEvent, len(r.events))
	copy(past, r.events)
	ch := make(chan crew.ProgressEvent, 16)
	r.subscribers = append(r.subscribers, ch)
	return past, ch, r.done
}

// unsubscribe removes a live channel.
func (r *runState) unsubscribe(ch chan crew.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sub := range r.subscribers {
		if sub == ch {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			return
		}
	}
}

// complete marks the run finished with a result.
func (r *runState) complete(res *runner.Result) {
	r.mu.Lock()
	r.phase = PhaseCompleted
	r.result = res
	r.mu.Unlock()
	close(r.done)
}

// fail marks the run finished with an error.
func (r *runState) fail(err error) {
	r.mu.Lock()
	r.phase = PhaseFailed
	r.err = err
	r.mu.Unlock()
	close(r.done)
}

// registry is the in-memory index of runs.
type registry struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*runState
}

func newRegistry() *registry {
	return &registry{runs: make(map[uuid.UUID]*runState)}
}

// create registers a new running entry.
func (g *registry) create() *runState {
	r := &runState{
		id:        uuid.New(),
		phase:     PhaseRunning,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}
	g.mu.Lock()
	g.runs[r.id] = r
	g.mu.Unlock()
	return r
}

// get looks up a run by ID.
func (g *registry) get(id uuid.UUID) (*runState, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.runs[id]
	return r, ok
}

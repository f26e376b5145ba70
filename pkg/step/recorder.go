package step

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecordedStep is a single step captured by a Recorder.
type RecordedStep struct {
	ID       string
	Title    string
	Params   Params
	Started  time.Time
	Ended    time.Time
	Finished bool
}

// Recorder is a thread-safe in-memory Reporter, intended for tests and for
// inspecting what a traced call would report.
type Recorder struct {
	mu    sync.Mutex
	steps []RecordedStep
}

func (r *Recorder) StartStep(title string, params Params) Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make(Params, len(params))
	for k, v := range params {
		copied[k] = v
	}
	r.steps = append(r.steps, RecordedStep{
		ID:      uuid.NewString(),
		Title:   title,
		Params:  copied,
		Started: time.Now(),
	})
	return &recorderScope{rec: r, index: len(r.steps) - 1}
}

// Steps returns a snapshot of all recorded steps in start order.
func (r *Recorder) Steps() []RecordedStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedStep, len(r.steps))
	copy(out, r.steps)
	return out
}

// Reset discards all recorded steps.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = nil
}

type recorderScope struct {
	rec   *Recorder
	index int
}

func (s *recorderScope) End() {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.rec.steps[s.index].Ended = time.Now()
	s.rec.steps[s.index].Finished = true
}

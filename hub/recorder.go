package hub

import "sync"

// Call is a single recorded Fire call.
type Call struct {
	Name    string
	Payload any
}

// Recorder is an event sink that remembers every call in order.
//
// Recorder is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// NewRecorder returns an empty [Recorder].
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Fire records the call.
func (r *Recorder) Fire(name string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Payload: payload})
}

// Calls returns a copy of the recorded calls. Never nil.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call{}, r.calls...)
}

// CallCount returns the number of recorded calls.
func (r *Recorder) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Sink is anything that accepts fired events.
// drawstore.EventSink has the same method set.
type Sink interface {
	Fire(name string, payload any)
}

type tee []Sink

// Tee returns a sink that forwards each call to every non-nil sink, in order.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (t tee) Fire(name string, payload any) {
	for _, s := range t {
		s.Fire(name, payload)
	}
}

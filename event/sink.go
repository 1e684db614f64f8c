package event

// Sink receives simulation events synchronously on the simulation goroutine
// Implementations must return quickly and must not call back into the match
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ev Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// Fanout forwards each event to every non-nil sink in order
type Fanout []Sink

// NewFanout drops nil sinks so callers can pass optional collaborators directly
func NewFanout(sinks ...Sink) Fanout {
	out := make(Fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (f Fanout) Emit(ev Event) {
	for _, s := range f {
		s.Emit(ev)
	}
}

// Recorder keeps every event it receives, used by tests and replay debugging
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Count returns how many recorded events have the given type
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// Reset drops all recorded events
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

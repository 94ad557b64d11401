package stream

import "sync/atomic"

type State int32

const (
	StateOpen State = iota
	StateClosedClean
	StateClosedBroken
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosedClean:
		return "closed"
	case StateClosedBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// lifecycle only ever moves out of StateOpen, once.
type lifecycle struct {
	state atomic.Int32
}

func (l *lifecycle) Load() State {
	return State(l.state.Load())
}

// close reports whether this call performed the transition.
func (l *lifecycle) close(to State) bool {
	return l.state.CompareAndSwap(int32(StateOpen), int32(to))
}

// pendingError keeps the first message it is given.
type pendingError struct {
	message atomic.Pointer[string]
}

func (p *pendingError) Set(message string) bool {
	return p.message.CompareAndSwap(nil, &message)
}

func (p *pendingError) Load() (string, bool) {
	message := p.message.Load()
	if message == nil {
		return "", false
	}

	return *message, true
}

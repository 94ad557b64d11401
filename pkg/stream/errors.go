package stream

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindAlreadyClosed ErrorKind = iota + 1
	KindConnectionLost
	KindRemoteFault
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindAlreadyClosed:
		return "already closed"
	case KindConnectionLost:
		return "connection lost"
	case KindRemoteFault:
		return "remote fault"
	case KindTransport:
		return "transport error"
	default:
		return "unknown"
	}
}

// StreamError is the single failure type surfaced by Write and Close.
// errors.Is matches it against the sentinel of its kind and against its cause.
type StreamError struct {
	Kind     ErrorKind
	StreamID StreamID
	Message  string
	Err      error
}

func (e *StreamError) Error() string {
	if e.Err != nil && e.Kind == KindTransport {
		return fmt.Sprintf("stream %d: %s: %v", e.StreamID, e.Message, e.Err)
	}

	return fmt.Sprintf("stream %d: %s", e.StreamID, e.Message)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

func (e *StreamError) Is(target error) bool {
	sentinel, known := kindSentinels[e.Kind]
	return known && target == sentinel
}

// KindOf returns the kind of the first StreamError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var streamErr *StreamError
	if errors.As(err, &streamErr) {
		return streamErr.Kind
	}

	return 0
}

var (
	ErrAlreadyClosed  = errors.New("stream already closed")
	ErrConnectionLost = errors.New("server connection was lost")
	ErrRemoteFault    = errors.New("remote fault")
	ErrTransport      = errors.New("transport error")

	ErrInvalidRange = errors.New("offset and length out of buffer range")

	kindSentinels = map[ErrorKind]error{
		KindAlreadyClosed:  ErrAlreadyClosed,
		KindConnectionLost: ErrConnectionLost,
		KindRemoteFault:    ErrRemoteFault,
		KindTransport:      ErrTransport,
	}
)

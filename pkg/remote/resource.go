package remote

import (
	"errors"
	"sync"
)

// pendingObject collects the bytes of one open stream until it is closed.
type pendingObject struct {
	path   string
	data   []byte
	closed bool
	lock   sync.Mutex
}

func newPendingObject(path string) pendingObject {
	return pendingObject{
		path,
		make([]byte, 0),
		false,
		sync.Mutex{},
	}
}

func (obj *pendingObject) Write(p []byte) (n int, err error) {
	obj.lock.Lock()
	defer obj.lock.Unlock()

	if obj.closed {
		err = errResourceClosedForWriting
		return
	}

	obj.data = append(obj.data, p...)
	n = len(p)
	return
}

// Close seals the object and hands out its final contents.
func (obj *pendingObject) Close() ([]byte, error) {
	obj.lock.Lock()
	defer obj.lock.Unlock()

	if obj.closed {
		return nil, errResourceAlreadyClosed
	}

	obj.closed = true
	return obj.data, nil
}

var (
	errResourceAlreadyClosed    = errors.New("resource already closed")
	errResourceClosedForWriting = errors.New("resource closed for writing")
)

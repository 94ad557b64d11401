package remote

import (
	"errors"
	"sync"

	"github.com/thebartekbanach/rstream/pkg/stream"
)

type resourceList struct {
	resources map[stream.StreamID]*pendingObject
	lock      sync.RWMutex
}

func newResourceList() resourceList {
	return resourceList{
		make(map[stream.StreamID]*pendingObject),
		sync.RWMutex{},
	}
}

func (list *resourceList) Create(streamID stream.StreamID, path string) error {
	list.lock.Lock()
	defer list.lock.Unlock()

	if _, exists := list.resources[streamID]; exists {
		return errResourceAlreadyExists
	}

	resource := newPendingObject(path)
	list.resources[streamID] = &resource
	return nil
}

func (list *resourceList) Write(streamID stream.StreamID, p []byte) (n int, err error) {
	list.lock.RLock()
	defer list.lock.RUnlock()

	resource, exists := list.resources[streamID]
	if !exists {
		err = errUnknownResource
		return
	}

	return resource.Write(p)
}

// Close seals the resource and removes it from the list.
func (list *resourceList) Close(streamID stream.StreamID) (path string, data []byte, err error) {
	list.lock.Lock()
	defer list.lock.Unlock()

	resource, exists := list.resources[streamID]
	if !exists {
		err = errUnknownResource
		return
	}

	delete(list.resources, streamID)
	data, err = resource.Close()
	return resource.path, data, err
}

func (list *resourceList) Exists(streamID stream.StreamID) bool {
	list.lock.RLock()
	defer list.lock.RUnlock()

	_, exists := list.resources[streamID]
	return exists
}

// DisposeAll drops every open resource along with its unsaved data.
func (list *resourceList) DisposeAll() []stream.StreamID {
	list.lock.Lock()
	defer list.lock.Unlock()

	disposed := make([]stream.StreamID, 0, len(list.resources))
	for streamID, resource := range list.resources {
		resource.Close()
		delete(list.resources, streamID)
		disposed = append(disposed, streamID)
	}

	return disposed
}

var (
	errUnknownResource       = errors.New("unknown resource")
	errResourceAlreadyExists = errors.New("resource already exists")
)

package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps objects in process memory. It backs the memory storage
// driver for local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "memory://reports"
	}
	return &MemoryStore{baseURL: baseURL, objects: make(map[string]memoryObject)}
}

func (m *MemoryStore) Put(ctx context.Context, data []byte, opts PutOptions) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := ObjectKey(opts.Folder, opts.FileName, opts.ContentType)
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[key] = memoryObject{data: buf, contentType: opts.ContentType}
	m.mu.Unlock()

	return &Object{URL: m.baseURL + "/" + key, Handle: key}, nil
}

func (m *MemoryStore) Delete(ctx context.Context, handle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[handle]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, handle)
	return nil
}

func (m *MemoryStore) Exists(handle string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[handle]
	return ok
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

package db

import "sync"

// MemoryStore keeps values in a plain map. It backs tests and any caller
// that wants the controllers without a sqlite file on disk.
type MemoryStore struct {
	m    sync.Mutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: map[string]string{},
	}
}

func (ms *MemoryStore) GetValue(key string) (string, error) {
	ms.m.Lock()
	defer ms.m.Unlock()
	return ms.data[key], nil
}

func (ms *MemoryStore) SetValue(key, value string) error {
	ms.m.Lock()
	defer ms.m.Unlock()
	ms.data[key] = value
	return nil
}

func (ms *MemoryStore) DeleteValue(key string) error {
	ms.m.Lock()
	defer ms.m.Unlock()
	delete(ms.data, key)
	return nil
}

func (ms *MemoryStore) Close() error {
	return nil
}

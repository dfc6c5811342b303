package kv

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memEntry struct {
	value     []byte
	updatedAt time.Time
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]memEntry
	now  func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]memEntry), now: time.Now}
}

// Get implements Store. The returned slice is a copy.
func (m *MemoryStore) Get(_ context.Context, ns, key string) ([]byte, bool, error) {
	if err := checkKey(ns, key); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[ns][key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(e.value), true, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, ns, key string, value []byte) error {
	if err := checkKey(ns, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.data[ns]
	if !ok {
		bucket = make(map[string]memEntry)
		m.data[ns] = bucket
	}
	v := slices.Clone(value)
	if v == nil {
		v = []byte{}
	}
	bucket[key] = memEntry{value: v, updatedAt: m.now()}
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, ns, key string) error {
	if err := checkKey(ns, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[ns], key)
	if len(m.data[ns]) == 0 {
		delete(m.data, ns)
	}
	return nil
}

// Keys implements Store.
func (m *MemoryStore) Keys(_ context.Context, ns string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data[ns] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Prune implements Store.
func (m *MemoryStore) Prune(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for ns, bucket := range m.data {
		if ns == AppNamespace {
			continue
		}
		for k, e := range bucket {
			if e.updatedAt.Before(before) {
				delete(bucket, k)
				n++
			}
		}
		if len(bucket) == 0 {
			delete(m.data, ns)
		}
	}
	return n, nil
}

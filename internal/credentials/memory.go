package credentials

import "sync"

// MemorySource provides an in-memory Source. It is primarily intended for
// tests and for values supplied on the command line.
type MemorySource struct {
	mu     sync.RWMutex
	values map[Field]string
}

// NewMemorySource creates a new instance of MemorySource
func NewMemorySource(values map[Field]string) *MemorySource {
	m := &MemorySource{values: make(map[Field]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Set stores a value for field
func (m *MemorySource) Set(field Field, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[field] = value
}

// Lookup implements Source.Lookup
func (m *MemorySource) Lookup(field Field) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[field]
	return v, ok
}

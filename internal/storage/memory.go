package storage

import (
	"context"
	"slices"
	"sync"

	"expenso/internal/core"
	"expenso/internal/store"
)

var _ store.Persister = (*MemoryPersister)(nil)

// MemoryPersister holds the encoded snapshot in memory. Data is lost when
// the process exits.
type MemoryPersister struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryPersister starts with the given slot content, which may be nil.
func NewMemoryPersister(seed []byte) *MemoryPersister {
	return &MemoryPersister{data: slices.Clone(seed)}
}

func (p *MemoryPersister) Load(context.Context) (core.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Decode(p.data)
}

func (p *MemoryPersister) Save(_ context.Context, snap core.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.data = data
	p.mu.Unlock()
	return nil
}

// Bytes returns a copy of the raw slot content.
func (p *MemoryPersister) Bytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.data)
}

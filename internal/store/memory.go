package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps supplier records in process memory. It is used when no
// database URL is configured and in tests.
type MemoryStore struct {
	mu        sync.RWMutex
	suppliers map[uuid.UUID]*memoryRecord
	seq       uint64
	now       func() time.Time
}

// memoryRecord pairs a supplier with its insertion sequence, which breaks
// ties between equal CreatedAt values.
type memoryRecord struct {
	supplier Supplier
	seq      uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		suppliers: make(map[uuid.UUID]*memoryRecord),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) CreateSupplier(_ context.Context, s *Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = m.now()
	m.seq++
	m.suppliers[s.ID] = &memoryRecord{supplier: *s, seq: m.seq}
	return nil
}

func (m *MemoryStore) GetSupplier(_ context.Context, id uuid.UUID) (*Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := rec.supplier
	return &cp, nil
}

func (m *MemoryStore) ListSuppliers(_ context.Context) ([]*Supplier, error) {
	m.mu.RLock()
	recs := make([]*memoryRecord, 0, len(m.suppliers))
	for _, rec := range m.suppliers {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.supplier.CreatedAt.Equal(b.supplier.CreatedAt) {
			return a.supplier.CreatedAt.After(b.supplier.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]*Supplier, len(recs))
	for i, rec := range recs {
		cp := rec.supplier
		out[i] = &cp
	}
	m.mu.RUnlock()
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

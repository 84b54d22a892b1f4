package tier

import (
	"context"
	"slices"
	"sync"

	"tiercheck/internal/verify"
)

// Memory is an in-memory snapshot of the records resident in the second
// tier, keyed by partition. RecordsFor deliberately returns records in
// insertion order: the snapshot contract gives no ordering guarantee and the
// correspondence checker owns the sort invariant.
type Memory struct {
	mu      sync.RWMutex
	records map[verify.TopicPartition][]verify.StoredRecord
}

// NewMemory constructs an empty in-memory tier snapshot.
func NewMemory() *Memory {
	return &Memory{records: make(map[verify.TopicPartition][]verify.StoredRecord)}
}

// Put replaces the resident record set for a partition.
func (m *Memory) Put(tp verify.TopicPartition, records ...verify.StoredRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[tp] = slices.Clone(records)
}

// Add appends records to the resident set for a partition, as segment
// uploads would.
func (m *Memory) Add(tp verify.TopicPartition, records ...verify.StoredRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[tp] = append(m.records[tp], records...)
}

// RecordsFor returns a copy of the records resident for the partition at
// call time.
func (m *Memory) RecordsFor(_ context.Context, tp verify.TopicPartition) ([]verify.StoredRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.records[tp]), nil
}

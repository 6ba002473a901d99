package repository

import (
	"sync"
	"time"

	"rentvsbuy/domain"
)

// SimulationRepositoryMemory is an in-memory SimulationRepository holding
// the most recent runs, oldest first, capped at maxRecords.
type SimulationRepositoryMemory struct {
	mu         sync.RWMutex
	records    []domain.SimulationRecord
	maxRecords int
}

// NewSimulationRepositoryMemory creates an in-memory history keeping at
// most maxRecords entries.
func NewSimulationRepositoryMemory(maxRecords int) *SimulationRepositoryMemory {
	return &SimulationRepositoryMemory{
		records:    []domain.SimulationRecord{},
		maxRecords: maxRecords,
	}
}

// Save appends a run, evicting the oldest entry once the cap is reached.
func (r *SimulationRepositoryMemory) Save(
	params domain.SimulationParameters,
	result domain.SimulationResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, domain.SimulationRecord{
		Params:    params,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	})
	if r.maxRecords > 0 && len(r.records) > r.maxRecords {
		r.records = r.records[len(r.records)-r.maxRecords:]
	}
	return nil
}

// Recent returns up to limit of the newest records, newest first.
func (r *SimulationRepositoryMemory) Recent(limit int) []domain.SimulationRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.records)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.SimulationRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.records[i])
	}
	return out
}

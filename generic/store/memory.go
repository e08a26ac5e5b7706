// Package store provides in-process GrantLedger implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/vacation-grant/generic"
)

// =============================================================================
// MEMORY LEDGER - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	grants []generic.Grant
}

func NewMemory() *Memory {
	return &Memory{}
}

// Record appends a grant, keeping the slice ordered by GrantedAt.
func (m *Memory) Record(_ context.Context, g generic.Grant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Insert after any grant with the same timestamp to keep arrival order
	i := sort.Search(len(m.grants), func(i int) bool {
		return m.grants[i].GrantedAt.After(g.GrantedAt)
	})
	m.grants = append(m.grants, generic.Grant{})
	copy(m.grants[i+1:], m.grants[i:])
	m.grants[i] = g
	return nil
}

func (m *Memory) ListGrants(_ context.Context, employeeID generic.EmployeeID) ([]generic.Grant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []generic.Grant
	for _, g := range m.grants {
		if employeeID == "" || g.EmployeeID == employeeID {
			result = append(result, g)
		}
	}
	return result, nil
}

// Len returns the number of recorded grants.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.grants)
}

// Compile-time checks
var (
	_ generic.GrantLedger = (*Memory)(nil)
	_ generic.GrantReader = (*Memory)(nil)
)

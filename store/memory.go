package store

import (
	"sync"

	"github.com/geanlabs/ethlc/types"
)

// Memory is an in-memory Store, for tests and fixture preparation.
type Memory struct {
	mu     sync.RWMutex
	nodes  map[uint64]types.Hash32
	client *types.Client
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{nodes: make(map[uint64]types.Hash32)}
}

func (m *Memory) GetNode(pos uint64) (types.Hash32, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.nodes[pos]
	return d, ok
}

func (m *Memory) PutNode(pos uint64, digest types.Hash32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes[pos] = digest
}

func (m *Memory) GetClient() (types.Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.client == nil {
		return types.Client{}, false
	}
	return *m.client, true
}

func (m *Memory) PutClient(c types.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = &c
}

func (m *Memory) Close() error { return nil }

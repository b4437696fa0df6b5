package version

import (
	"context"
	"sync"
)

// Memory — in-memory реестр версий. Состояние живёт только в памяти процесса,
// поэтому реализация пригодна для одиночного инстанса и тестов; для
// горизонтального масштабирования используется Redis-реестр.
type Memory struct {
	mu       sync.Mutex
	counters map[int64]int64
}

// NewMemory создаёт пустой in-memory реестр.
func NewMemory() *Memory {
	return &Memory{counters: make(map[int64]int64)}
}

// Get возвращает текущее значение счётчика; 0 для незнакомого ключа.
func (m *Memory) Get(_ context.Context, accountID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.counters[accountID], nil
}

// Increment атомарно увеличивает счётчик и возвращает новое значение.
func (m *Memory) Increment(_ context.Context, accountID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[accountID]++
	return m.counters[accountID], nil
}

var _ Registry = (*Memory)(nil)

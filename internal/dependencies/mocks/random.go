package mocks

import (
	"fmt"
	"sync"

	"github.com/gildedernacht/olymp/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Queued uids are returned first, then a counter formatted as 64 hex digits.
type MockRandom struct {
	mu      sync.Mutex
	queued  []string
	counter int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) UID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queued) > 0 {
		uid := r.queued[0]
		r.queued = r.queued[1:]
		return uid
	}
	r.counter++
	return fmt.Sprintf("%064x", r.counter)
}

// QueueUID adds values to the UID result queue
func (r *MockRandom) QueueUID(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queued = append(r.queued, values...)
}

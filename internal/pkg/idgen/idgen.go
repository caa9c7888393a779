// Package idgen provides ID generation utilities
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/KirkDiggler/rpg-director/internal/pkg/clock"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/rpg-director/internal/pkg/idgen Generator,Sequence

// Generator generates unique string identifiers (save slots)
type Generator interface {
	Generate() string
}

// Sequence hands out strictly increasing numeric identifiers
// (story entries, timeline events)
type Sequence interface {
	Next() int64
}

// PrefixedGenerator generates IDs with a specific prefix
type PrefixedGenerator struct {
	prefix string
}

// NewPrefixed creates a new generator with the given prefix
func NewPrefixed(prefix string) *PrefixedGenerator {
	return &PrefixedGenerator{prefix: prefix}
}

// Generate creates a new ID with the format: prefix_timestamp_random
func (g *PrefixedGenerator) Generate() string {
	timestamp := time.Now().UnixNano()
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		// crypto/rand.Read only fails on a broken system
		panic(fmt.Sprintf("crypto/rand.Read failed: %v", err))
	}

	return fmt.Sprintf("%s_%d_%s", g.prefix, timestamp, hex.EncodeToString(randomBytes))
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// Monotonic derives ids from the clock's millisecond timestamp. Two calls in
// the same millisecond, or a clock that steps backwards, still yield
// increasing ids.
type Monotonic struct {
	clock clock.Clock

	mu   sync.Mutex
	last int64
}

// NewMonotonic creates a sequence driven by c
func NewMonotonic(c clock.Clock) *Monotonic {
	return &Monotonic{clock: c}
}

// Next returns the next id
func (m *Monotonic) Next() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.clock.Now().UnixMilli()
	if n <= m.last {
		n = m.last + 1
	}
	m.last = n
	return n
}

// Seed makes the sequence continue after floor. Used after a save is loaded
// so new ids sort after the restored ones.
func (m *Monotonic) Seed(floor int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if floor > m.last {
		m.last = floor
	}
}

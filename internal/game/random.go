package game

import (
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Rand is the only source of randomness the engine uses.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// IDGen issues ids for log entries, orders, positions, companies and loans.
type IDGen interface {
	NewID() string
}

type lockedRand struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

func NewSeededRand(seed int64) Rand {
	return &lockedRand{r: mathrand.New(mathrand.NewSource(seed))}
}

func NewTimeRand() Rand {
	return NewSeededRand(time.Now().UnixNano())
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// SequenceRand replays a fixed list of values, cycling when exhausted.
type SequenceRand struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequenceRand(values ...float64) *SequenceRand {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &SequenceRand{values: values}
}

func (s *SequenceRand) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *SequenceRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

type uuidGen struct{}

func NewUUIDs() IDGen { return uuidGen{} }

func (uuidGen) NewID() string { return uuid.NewString() }

// CounterIDs yields prefix-1, prefix-2, ...
type CounterIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func NewCounterIDs(prefix string) *CounterIDs {
	return &CounterIDs{prefix: prefix}
}

func (c *CounterIDs) NewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return fmt.Sprintf("%s-%d", c.prefix, c.n)
}

// chance draws once and reports whether the draw fell under p.
func chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// signed maps a uniform draw onto [-1, 1).
func signed(r Rand) float64 {
	u := r.Float64()
	return u + u - 1
}

package i18n

import (
	"math/rand/v2"
	"sync"
)

// RandomSource yields floats in [0, 1). It picks variants from fact banks.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultRandomSource is process-wide and safe for concurrent use.
func DefaultRandomSource() RandomSource { return globalSource{} }

type seededSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededSource returns a reproducible source, safe for concurrent use.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

func pickIndex(r RandomSource, n int) int {
	i := int(r.Float64() * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

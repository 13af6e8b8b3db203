package bored

import (
	"errors"
	"math/rand/v2"
	"sync"
)

var ErrNoMatch = errors.New("no activity matches")

type Selector interface {
	// Select single activity from candidates or ErrNoMatch if there are none.
	Select(candidates []Activity) (Activity, error)
}

// RandomSelector draws uniformly. Safe for concurrent use.
type RandomSelector struct {
	mutex sync.Mutex
	rand  *rand.Rand
}

// NewRandomSelector creates selector drawing from given source.
// Nil source means a randomly seeded one.
func NewRandomSelector(source rand.Source) *RandomSelector {
	if source == nil {
		source = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &RandomSelector{rand: rand.New(source)}
}

// NewSeededSelector creates selector with deterministic draws for given seed.
func NewSeededSelector(seed uint64) *RandomSelector {
	return NewRandomSelector(rand.NewPCG(seed, seed))
}

func (s *RandomSelector) Select(candidates []Activity) (Activity, error) {
	if len(candidates) == 0 {
		return Activity{}, ErrNoMatch
	}
	s.mutex.Lock()
	i := s.rand.IntN(len(candidates))
	s.mutex.Unlock()
	return candidates[i], nil
}

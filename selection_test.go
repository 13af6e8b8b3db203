package bored

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomSelectorEmpty(t *testing.T) {
	_, err := NewRandomSelector(nil).Select(nil)
	assert.Equal(t, ErrNoMatch, err)
}

func TestRandomSelectorSingleton(t *testing.T) {
	only := Activity{Key: "1000000"}
	s := NewRandomSelector(nil)
	for i := 0; i < 10; i++ {
		a, err := s.Select([]Activity{only})
		if assert.NoError(t, err) {
			assert.Equal(t, only, a)
		}
	}
}

func TestSeededSelectorIsDeterministic(t *testing.T) {
	candidates := []Activity{{Key: "1000001"}, {Key: "1000002"}, {Key: "1000003"}, {Key: "1000004"}}

	first := NewSeededSelector(42)
	second := NewSeededSelector(42)
	for i := 0; i < 20; i++ {
		a, err := first.Select(candidates)
		assert.NoError(t, err)
		b, err := second.Select(candidates)
		assert.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestRandomSelectorCoversCandidates(t *testing.T) {
	candidates := []Activity{{Key: "1000001"}, {Key: "1000002"}, {Key: "1000003"}}
	s := NewRandomSelector(rand.NewPCG(1, 2))

	seen := make(map[Key]int)
	for i := 0; i < 300; i++ {
		a, err := s.Select(candidates)
		if !assert.NoError(t, err) {
			return
		}
		seen[a.Key]++
	}
	assert.Len(t, seen, 3)
	for key, n := range seen {
		// 100 expected per candidate
		assert.Greater(t, n, 50, key)
	}
}

func TestRandomSelectorConcurrent(t *testing.T) {
	candidates := []Activity{{Key: "1000001"}, {Key: "1000002"}}
	s := NewRandomSelector(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := s.Select(candidates)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

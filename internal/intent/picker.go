// ABOUTME: Injectable random source for response selection
// ABOUTME: Seeded PCG generator guarded by a mutex so one picker can serve concurrent callers

package intent

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Picker chooses an index in [0, n). Implementations must be safe for
// concurrent use when shared by an Engine.
type Picker interface {
	Intn(n int) int
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(n int) int

// Intn calls f(n).
func (f PickerFunc) Intn(n int) int { return f(n) }

type seededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker returns a goroutine-safe Picker seeded with seed. Two pickers
// with the same seed produce the same sequence.
func NewPicker(seed uint64) Picker {
	return &seededPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimePicker returns a Picker seeded from the wall clock.
func NewTimePicker() Picker {
	return NewPicker(uint64(time.Now().UnixNano()))
}

func (p *seededPicker) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// SelectResponse returns one element of list chosen by p. An out-of-range
// index from a misbehaving Picker is clamped into range. list must be
// non-empty.
func SelectResponse(p Picker, list []string) string {
	if len(list) == 1 {
		return list[0]
	}
	i := p.Intn(len(list))
	if i < 0 || i >= len(list) {
		i = ((i % len(list)) + len(list)) % len(list)
	}
	return list[i]
}

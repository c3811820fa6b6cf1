// ABOUTME: Atomic holder for swapping engines when a catalog is reloaded
// ABOUTME: Readers always see a complete engine; engines themselves are never mutated

package intent

import "sync/atomic"

// Holder publishes the current Engine to concurrent readers.
type Holder struct {
	p atomic.Pointer[Engine]
}

// NewHolder returns a Holder serving e.
func NewHolder(e *Engine) *Holder {
	h := &Holder{}
	h.p.Store(e)
	return h
}

// Load returns the current engine.
func (h *Holder) Load() *Engine { return h.p.Load() }

// Swap installs e and returns the previous engine.
func (h *Holder) Swap(e *Engine) *Engine { return h.p.Swap(e) }

// Respond answers with the current engine.
func (h *Holder) Respond(message string) string { return h.Load().Respond(message) }

// Reply answers with the current engine, including diagnostics.
func (h *Holder) Reply(message string) Reply { return h.Load().Reply(message) }

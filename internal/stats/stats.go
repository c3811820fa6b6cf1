// ABOUTME: Running tally of chat replies by match phase and category
// ABOUTME: Subscribes to the session bus; safe for concurrent publishers

package stats

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mauromedda/supportbot-go/internal/eventbus"
	"github.com/mauromedda/supportbot-go/internal/intent"
	"github.com/mauromedda/supportbot-go/internal/session"
)

// Summary is a point-in-time copy of the counters.
type Summary struct {
	Total         int            `json:"total"`
	ByPhase       map[string]int `json:"by_phase"`
	ByCategory    map[string]int `json:"by_category"`
	Sensitive     int            `json:"sensitive"`
	AvgFuzzyScore float64        `json:"avg_fuzzy_confidence"`
}

// FallbackRate is the share of replies that came from the fallback pool.
func (s Summary) FallbackRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ByPhase[intent.PhaseFallback.String()]) / float64(s.Total)
}

// Counter accumulates exchanges.
type Counter struct {
	mu         sync.Mutex
	total      int
	byPhase    map[intent.Phase]int
	byCategory map[string]int
	sensitive  int
	fuzzySum   float64
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		byPhase:    make(map[intent.Phase]int),
		byCategory: make(map[string]int),
	}
}

// Attach subscribes the counter to bus and returns the unsubscribe function.
func (c *Counter) Attach(bus *eventbus.Bus[session.Exchange]) func() {
	return bus.Subscribe("stats", c.Record)
}

// Record adds one exchange.
func (c *Counter) Record(ex session.Exchange) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	c.byPhase[ex.Phase]++
	if ex.CategoryID != "" {
		c.byCategory[ex.CategoryID]++
	}
	if ex.Sensitive {
		c.sensitive++
	}
	if ex.Phase == intent.PhaseFuzzy {
		c.fuzzySum += ex.Confidence
	}
}

// Summary returns a snapshot of the counters.
func (c *Counter) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{
		Total:      c.total,
		ByPhase:    make(map[string]int, 3),
		ByCategory: make(map[string]int, len(c.byCategory)),
		Sensitive:  c.sensitive,
	}
	for _, p := range []intent.Phase{intent.PhaseExact, intent.PhaseFuzzy, intent.PhaseFallback} {
		s.ByPhase[p.String()] = c.byPhase[p]
	}
	for id, n := range c.byCategory {
		s.ByCategory[id] = n
	}
	if n := c.byPhase[intent.PhaseFuzzy]; n > 0 {
		s.AvgFuzzyScore = c.fuzzySum / float64(n)
	}
	return s
}

// Reset clears all counters.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = 0
	c.sensitive = 0
	c.fuzzySum = 0
	clear(c.byPhase)
	clear(c.byCategory)
}

// Format renders a summary as a short plain-text report.
func Format(s Summary) string {
	if s.Total == 0 {
		return "No messages yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Messages: %d (exact %d, fuzzy %d, fallback %d)\n",
		s.Total, s.ByPhase["exact"], s.ByPhase["fuzzy"], s.ByPhase["fallback"])
	fmt.Fprintf(&b, "Fallback rate: %.0f%%\n", s.FallbackRate()*100)
	if s.ByPhase["fuzzy"] > 0 {
		fmt.Fprintf(&b, "Avg fuzzy confidence: %.2f\n", s.AvgFuzzyScore)
	}
	if s.Sensitive > 0 {
		fmt.Fprintf(&b, "Sensitive replies: %d\n", s.Sensitive)
	}

	ids := make([]string, 0, len(s.ByCategory))
	for id := range s.ByCategory {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if s.ByCategory[ids[i]] != s.ByCategory[ids[j]] {
			return s.ByCategory[ids[i]] > s.ByCategory[ids[j]]
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids {
		fmt.Fprintf(&b, "  %-12s %d\n", id, s.ByCategory[id])
	}
	return strings.TrimRight(b.String(), "\n")
}

// ABOUTME: Intent engine facade: one immutable instance turns any message into a reply
// ABOUTME: Exact match, then fuzzy match, then fallback pool; Respond is total and never empty

package intent

// Reply is a chosen response plus how it was chosen.
type Reply struct {
	Text       string  `json:"text"`
	CategoryID string  `json:"category,omitempty"`
	Phase      Phase   `json:"phase"`
	Confidence float64 `json:"confidence"`
	Pattern    string  `json:"pattern,omitempty"`
	Sensitive  bool    `json:"sensitive,omitempty"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithPicker sets the random source used to choose among responses.
func WithPicker(p Picker) Option {
	return func(e *Engine) {
		if p != nil {
			e.picker = p
		}
	}
}

// Engine answers messages from a catalog. Build it once and share it: it
// holds no per-call state, and the default picker is goroutine-safe.
type Engine struct {
	catalog *Catalog
	matcher *Matcher
	picker  Picker
}

// NewEngine creates an engine for a validated catalog.
func NewEngine(c *Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: c,
		matcher: NewMatcher(c),
		picker:  NewTimePicker(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine was built from.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Respond returns a reply for message: a response from the matched category,
// or from the fallback pool when nothing matches well enough.
func (e *Engine) Respond(message string) string {
	return e.Reply(message).Text
}

// Reply is Respond with matching diagnostics attached.
func (e *Engine) Reply(message string) (r Reply) {
	defer func() {
		if recover() != nil {
			r = Reply{Text: e.catalog.fallback[0], Phase: PhaseFallback}
		}
	}()

	m := e.matcher.Match(message)
	if !m.Accepted() {
		return Reply{
			Text:       SelectResponse(e.picker, e.catalog.fallback),
			Phase:      PhaseFallback,
			Confidence: m.Confidence,
		}
	}

	cat := &e.catalog.categories[m.Index]
	return Reply{
		Text:       SelectResponse(e.picker, cat.Responses),
		CategoryID: cat.ID,
		Phase:      m.Phase,
		Confidence: m.Confidence,
		Pattern:    m.Pattern,
		Sensitive:  cat.Sensitive,
	}
}

// Match exposes the matcher result without selecting a response.
func (e *Engine) Match(message string) Match {
	return e.matcher.Match(message)
}

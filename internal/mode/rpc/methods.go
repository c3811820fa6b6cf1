// ABOUTME: Router and handlers for the chat RPC methods (respond, reply, catalog, quick_replies, stats)
// ABOUTME: Dispatches requests to handlers that decode their own params

package rpc

import (
	"encoding/json"

	"github.com/mauromedda/supportbot-go/internal/catalog"
	"github.com/mauromedda/supportbot-go/internal/quickreply"
	"github.com/mauromedda/supportbot-go/internal/session"
	"github.com/mauromedda/supportbot-go/internal/stats"
)

// HandlerFunc processes an RPC request's params and returns a Response.
type HandlerFunc func(params json.RawMessage) Response

// Router dispatches RPC requests to registered handlers by method name.
type Router struct {
	handlers map[string]HandlerFunc
}

// NewRouter creates a Router with an empty handler registry.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]HandlerFunc)}
}

// Register associates a method name with a handler function.
func (r *Router) Register(method string, handler HandlerFunc) {
	r.handlers[method] = handler
}

// Handle dispatches a request to the registered handler, or returns
// a method-not-found error if no handler is registered.
func (r *Router) Handle(req Request) Response {
	h, ok := r.handlers[req.Method]
	if !ok {
		return Response{
			ID:    req.ID,
			Error: NewMethodNotFoundError(req.Method),
		}
	}

	raw, err := marshalParams(req.Params)
	if err != nil {
		return Response{
			ID:    req.ID,
			Error: NewInvalidParamsError(err.Error()),
		}
	}

	resp := h(raw)
	resp.ID = req.ID
	return resp
}

// marshalParams converts the generic Params field into json.RawMessage
// so handlers can decode it themselves.
func marshalParams(params any) (json.RawMessage, error) {
	if params == nil {
		return nil, nil
	}
	if raw, ok := params.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(params)
}

// decodeParams unmarshals params into v; absent params leave v untouched.
func decodeParams(params json.RawMessage, v any) *Error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return NewInvalidParamsError(err.Error())
	}
	return nil
}

// Deps holds what the handlers call into.
type Deps struct {
	Session *session.Session
	Bundle  func() *catalog.Bundle // current catalog; may change on reload
	Stats   *stats.Counter         // nil disables stats and reset_stats
}

// RegisterHandlers wires all method handlers into the given router.
func RegisterHandlers(r *Router, d *Deps) {
	r.Register(MethodRespond, handleRespond(d))
	r.Register(MethodReply, handleReply(d))
	r.Register(MethodCatalog, handleCatalog(d))
	r.Register(MethodQuickReplies, handleQuickReplies(d))
	r.Register(MethodStats, handleStats(d))
	r.Register(MethodResetStats, handleResetStats(d))
}

func handleRespond(d *Deps) HandlerFunc {
	return func(params json.RawMessage) Response {
		var p MessageParams
		if err := decodeParams(params, &p); err != nil {
			return Response{Error: err}
		}
		ex := d.Session.Send(p.Message)
		return Response{Result: RespondResult{Text: ex.Bot}}
	}
}

func handleReply(d *Deps) HandlerFunc {
	return func(params json.RawMessage) Response {
		var p MessageParams
		if err := decodeParams(params, &p); err != nil {
			return Response{Error: err}
		}
		ex := d.Session.Send(p.Message)
		res := ReplyResult{Exchange: ex}
		if ex.Sensitive {
			res.Notice = d.Bundle().Notice
		}
		return Response{Result: res}
	}
}

func handleCatalog(d *Deps) HandlerFunc {
	return func(_ json.RawMessage) Response {
		b := d.Bundle()
		cats := b.Catalog.Categories()
		ids := make([]string, len(cats))
		for i, c := range cats {
			ids[i] = c.ID
		}
		return Response{Result: CatalogResult{
			Name:         b.Name(),
			Source:       b.Source,
			Description:  b.Description,
			Welcome:      b.Welcome,
			Categories:   ids,
			FallbackSize: len(b.Catalog.Fallback()),
		}}
	}
}

func handleQuickReplies(d *Deps) HandlerFunc {
	return func(params json.RawMessage) Response {
		var p QuickRepliesParams
		if err := decodeParams(params, &p); err != nil {
			return Response{Error: err}
		}
		opts := quickreply.New(d.Bundle().QuickReplies).Filter(p.Query)
		replies := make([]string, len(opts))
		for i, o := range opts {
			replies[i] = o.Text
		}
		return Response{Result: QuickRepliesResult{Replies: replies}}
	}
}

func handleStats(d *Deps) HandlerFunc {
	return func(_ json.RawMessage) Response {
		if d.Stats == nil {
			return Response{Error: NewNoStatsError()}
		}
		return Response{Result: d.Stats.Summary()}
	}
}

func handleResetStats(d *Deps) HandlerFunc {
	return func(_ json.RawMessage) Response {
		if d.Stats == nil {
			return Response{Error: NewNoStatsError()}
		}
		d.Stats.Reset()
		return Response{Result: ResetResult{Reset: true}}
	}
}

// ABOUTME: Params and result payloads for the RPC methods
// ABOUTME: respond/reply take a message; quick_replies takes an optional filter query

package rpc

import (
	"encoding/json"

	"github.com/mauromedda/supportbot-go/internal/session"
)

// MessageParams is the payload for respond and reply. A missing, null or
// non-string message is answered like an empty one.
type MessageParams struct {
	Message string `json:"message"`
}

// UnmarshalJSON keeps only a string message. Params that are not an object
// still fail.
func (p *MessageParams) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Message = ""
	if len(raw.Message) > 0 {
		var s string
		if json.Unmarshal(raw.Message, &s) == nil {
			p.Message = s
		}
	}
	return nil
}

// RespondResult is the response payload for the respond method.
type RespondResult struct {
	Text string `json:"text"`
}

// ReplyResult is the response payload for the reply method.
type ReplyResult struct {
	session.Exchange
	Notice string `json:"notice,omitempty"`
}

// CatalogResult describes the active catalog.
type CatalogResult struct {
	Name         string   `json:"name"`
	Source       string   `json:"source"`
	Description  string   `json:"description,omitempty"`
	Welcome      string   `json:"welcome,omitempty"`
	Categories   []string `json:"categories"`
	FallbackSize int      `json:"fallback_size"`
}

// QuickRepliesParams is the payload for quick_replies.
type QuickRepliesParams struct {
	Query string `json:"query,omitempty"`
}

// QuickRepliesResult is the response payload for quick_replies.
type QuickRepliesResult struct {
	Replies []string `json:"replies"`
}

// ResetResult is the response payload for reset_stats.
type ResetResult struct {
	Reset bool `json:"reset"`
}

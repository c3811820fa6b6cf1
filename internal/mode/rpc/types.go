// ABOUTME: RPC request/response envelope types and method names
// ABOUTME: JSON-serializable types shared by the server loop and the router

package rpc

// Request represents an RPC request from an external client.
type Request struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// Response represents an RPC response to an external client.
type Response struct {
	ID     string `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// Error represents an RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Methods
const (
	MethodRespond      = "respond"
	MethodReply        = "reply"
	MethodCatalog      = "catalog"
	MethodQuickReplies = "quick_replies"
	MethodStats        = "stats"
	MethodResetStats   = "reset_stats"
)

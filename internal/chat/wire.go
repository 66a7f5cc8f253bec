// ABOUTME: Wire types for the companion inference API
// ABOUTME: Request/response shapes for /api/chat, /api/chat/stream, /api/health
package chat

// ContextMessage is one prior turn transmitted to the inference endpoint
type ContextMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the body for both chat endpoints
type chatRequest struct {
	Message        string           `json:"message"`
	ConversationID string           `json:"conversation_id"`
	Context        []ContextMessage `json:"context"`
}

// chatResponse is the non-streaming response body
type chatResponse struct {
	Response string `json:"response"`
}

// streamFrame is one decoded "data:" event from the streaming endpoint.
// Exactly one of Error / Token / Done is meaningful per frame, except that
// a terminal frame may carry both a final token and done.
type streamFrame struct {
	Token string `json:"token"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

// Health is the /api/health response. Backend-specific fields beyond Status
// are passed through for operational tooling.
type Health struct {
	Status    string `json:"status"`
	ModelName string `json:"model_name,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Healthy reports whether the backend declared itself healthy
func (h *Health) Healthy() bool {
	return h != nil && h.Status == "healthy"
}

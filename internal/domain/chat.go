package domain

// ChatResponse is the engine's answer to a chat query: human-readable text
// plus an optional machine-usable payload for the UI layer. Immutable once
// constructed.
type ChatResponse struct {
	Text string      `json:"text"`
	Data interface{} `json:"data,omitempty"`
}

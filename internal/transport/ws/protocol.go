// Package ws serves travel guidance over WebSocket. Each frame is answered
// independently; the client carries the transcript between frames.
package ws

import "github.com/Shuaib-8/Travel-Copilot/internal/domain"

// Message types from client to server
const (
	TypeGuidance = "guidance"
)

// Message types from server to client
const (
	TypeGuidanceResult = "guidance_result"
	TypeError          = "error"
)

// Error codes
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeMissingField   = "missing_field"
	ErrorCodePolicy         = "policy_rejected"
	ErrorCodeInternal       = "internal_error"
)

// BaseMessage contains common fields for all messages.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	RequestID string `json:"request_id,omitempty"`
}

// GuidanceMessage asks a travel question.
type GuidanceMessage struct {
	BaseMessage
	UserMessage *string           `json:"user_message"`
	Messages    domain.Transcript `json:"messages"`
}

// GuidanceResultMessage carries the reply and the updated transcript.
type GuidanceResultMessage struct {
	BaseMessage
	Response string            `json:"response"`
	Messages domain.Transcript `json:"messages"`
}

// ErrorMessage reports a rejected frame.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}

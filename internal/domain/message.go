package domain

import "time"

// Message is a single role-tagged entry of a transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an ordered conversation replayed verbatim to the model.
// A nil Transcript means no prior conversation.
type Transcript []Message

// Clone returns an independent copy of t. The result is nil only when t is nil.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t), len(t)+2)
	copy(out, t)
	return out
}

// HistoryEntry is one stored turn of a server-side session.
type HistoryEntry struct {
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	CreatedAt   time.Time `json:"created_at"`
}

// Session holds the server-side conversation state of the HTML surface.
type Session struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionID string

// NewSessionID generates a new unique SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message within a session, ordered by arrival.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a turn stamped with the current time.
func NewTurn(role Role, text string) Turn {
	return Turn{
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// OrchestrationResult is what the orchestrator returns to the inbound caller.
// UsedFallback is true whenever the generative path was bypassed because it
// was unconfigured, unreachable or failed.
type OrchestrationResult struct {
	ReplyText       string            `json:"reply_text"`
	UsedFallback    bool              `json:"used_fallback"`
	Intent          Intent            `json:"intent"`
	Recommendations []*Recommendation `json:"recommendations"`
}

// Package session owns the per-conversation mutable state and orchestrates
// the decoy's turn sequence.
package session

import (
	"sync"
	"time"

	"github.com/scamtrap/honeypot/domain"
)

// AgentState is the decoy's per-conversation control state.
type AgentState struct {
	HasInitiated bool
	CurrentGoal  domain.Goal
	LastReply    string
	IsPaused     bool
}

// Session is the mutable per-conversation record. All mutation happens under
// mu, held for the full duration of a turn so turns for the same
// conversation never interleave.
type Session struct {
	ConversationID string
	CreatedAt      time.Time
	LastActiveAt   time.Time

	// IsActive false is a hard stop for inbound turns: no goal advancement,
	// no synthesis. Only the explicit resume pathway overrides it.
	IsActive bool

	ScamDetected bool

	// HasSentFinalReport guards the one external report per session.
	HasSentFinalReport bool

	Agent AgentState
	Intel domain.ExtractedIntel

	mu sync.Mutex
}

func newSession(conversationID string, now time.Time) *Session {
	return &Session{
		ConversationID: conversationID,
		CreatedAt:      now,
		LastActiveAt:   now,
		IsActive:       true,
	}
}

// snapshot captures the session's externally visible state. Callers must
// hold mu.
func (s *Session) snapshot(messageCount int) domain.SessionSnapshot {
	return domain.SessionSnapshot{
		ConversationID: s.ConversationID,
		Intel:          s.Intel,
		CurrentGoal:    s.Agent.CurrentGoal,
		HasInitiated:   s.Agent.HasInitiated,
		IsPaused:       s.Agent.IsPaused,
		IsActive:       s.IsActive,
		ScamDetected:   s.ScamDetected,
		MessageCount:   messageCount,
	}
}

// agentStateView builds the externally visible agent state. Callers must
// hold mu.
func (s *Session) agentStateView() *domain.AgentStateView {
	return &domain.AgentStateView{
		HasInitiated: s.Agent.HasInitiated,
		CurrentGoal:  string(s.Agent.CurrentGoal),
		IsPaused:     s.Agent.IsPaused,
		IsActive:     s.IsActive,
	}
}

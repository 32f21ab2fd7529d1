package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/scamtrap/honeypot/agent"
	"github.com/scamtrap/honeypot/domain"
	"github.com/scamtrap/honeypot/intel"
	"github.com/scamtrap/honeypot/policy"
	"github.com/scamtrap/honeypot/report"
	"github.com/scamtrap/honeypot/store"
)

var ErrConversationNotFound = errors.New("conversation not found")

// Manager runs the decoy lifecycle: it serializes turns per conversation,
// merges extracted intelligence, advances the goal machine, synthesizes
// replies and delivers the one-time final report on exit.
type Manager struct {
	registry *Registry
	store    store.Store
	synth    agent.Synthesizer
	policy   *policy.Engine
	reporter *report.Client
}

func NewManager(st store.Store, synth agent.Synthesizer, eng *policy.Engine, reporter *report.Client) *Manager {
	return &Manager{
		registry: NewRegistry(),
		store:    st,
		synth:    synth,
		policy:   eng,
		reporter: reporter,
	}
}

// TurnResult is the outcome of one inbound turn.
type TurnResult struct {
	Message    *domain.Message `json:"message"`
	Reply      *domain.Message `json:"agent_response,omitempty"`
	Intel      domain.ExtractedIntel
	Confidence float64
	UIState    *domain.UIState
}

// HandleTurn processes one inbound message end to end. Turns for the same
// conversation never interleave; the session mutex is held for the whole
// sequence.
func (m *Manager) HandleTurn(ctx context.Context, conversationID string, sender domain.Sender, content string, apiKeyValid bool) (*TurnResult, error) {
	conv, err := m.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	s := m.registry.GetOrCreate(conversationID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActiveAt = time.Now()

	inbound := &domain.Message{
		MessageID:      newMessageID(),
		ConversationID: conversationID,
		Sender:         sender,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := m.store.CreateMessage(ctx, inbound); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	if sender == domain.SenderScammer {
		if intel.DetectScam(content) {
			s.ScamDetected = true
		}
		m.harvestIntel(ctx, s, content)
	}

	agentActive := conv.IsAgentActive
	wasJustActivated := false
	if !agentActive && s.IsActive && !s.Agent.IsPaused && sender == domain.SenderScammer {
		decision, perr := m.policy.Evaluate(ctx, policy.EngagementInput(content, string(sender), apiKeyValid))
		if perr != nil {
			log.Printf("WARN: engagement policy evaluation failed: %v", perr)
		} else if decision == "engage" {
			agentActive = true
			wasJustActivated = true
			active := true
			if uerr := m.store.UpdateConversation(ctx, conversationID, store.ConversationUpdate{IsAgentActive: &active}); uerr != nil {
				log.Printf("WARN: failed to mark agent active: %v", uerr)
			}
		}
	}

	// The first turn fires only on a fresh activation or an adversary
	// message; an agent-authored row never talks to itself.
	firstInitiation := agentActive && !s.Agent.HasInitiated &&
		(wasJustActivated || sender == domain.SenderScammer)
	ongoing := s.Agent.HasInitiated && sender == domain.SenderScammer
	shouldRespond := s.IsActive && agentActive && !s.Agent.IsPaused && (firstInitiation || ongoing)

	var reply *domain.Message
	if shouldRespond {
		replyMsg, terr := m.runAgentTurn(ctx, s)
		if terr != nil {
			reply = m.persistAgentError(ctx, conversationID, terr)
		} else {
			reply = replyMsg
		}
	}

	messages, err := m.store.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	snap := s.snapshot(len(messages))

	return &TurnResult{
		Message:    inbound,
		Reply:      reply,
		Intel:      s.Intel,
		Confidence: agent.Confidence(s.Intel),
		UIState:    buildUIState(snap),
	}, nil
}

// Resume re-engages the agent and runs one synthesis turn without new
// adversary input. It is the one pathway that overrides the inactive hard
// stop, so an operator can wake an exited session. A synthesis failure is
// returned to the caller rather than recorded in the transcript.
func (m *Manager) Resume(ctx context.Context, conversationID string) (*domain.Message, error) {
	conv, err := m.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	s := m.registry.GetOrCreate(conversationID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActiveAt = time.Now()

	s.IsActive = true
	s.Agent.IsPaused = false
	active := true
	if uerr := m.store.UpdateConversation(ctx, conversationID, store.ConversationUpdate{IsAgentActive: &active}); uerr != nil {
		log.Printf("WARN: failed to mark agent active: %v", uerr)
	}

	return m.runAgentTurn(ctx, s)
}

// Pause stops the agent from responding until resumed. The transcript and
// collected intelligence are untouched.
func (m *Manager) Pause(ctx context.Context, conversationID string) error {
	conv, err := m.store.GetConversation(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv == nil {
		return ErrConversationNotFound
	}

	s := m.registry.GetOrCreate(conversationID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Agent.IsPaused = true
	inactive := false
	if err := m.store.UpdateConversation(ctx, conversationID, store.ConversationUpdate{IsAgentActive: &inactive}); err != nil {
		return fmt.Errorf("failed to mark agent inactive: %w", err)
	}
	return nil
}

// Snapshot assembles the full read-only state for one conversation.
func (m *Manager) Snapshot(ctx context.Context, conversationID string) (*domain.StateSnapshot, error) {
	conv, err := m.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	messages, err := m.store.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	s := m.registry.GetOrCreate(conversationID)
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot(len(messages))

	return &domain.StateSnapshot{
		Conversation:   conv,
		Messages:       messages,
		AgentState:     s.agentStateView(),
		ExtractedIntel: s.Intel,
		UIState:        buildUIState(snap),
	}, nil
}

// RiskScore computes the live risk score for one conversation.
func (m *Manager) RiskScore(ctx context.Context, conversationID string) (float64, string, error) {
	messages, err := m.store.GetMessages(ctx, conversationID)
	if err != nil {
		return 0, "", fmt.Errorf("failed to load messages: %w", err)
	}
	s := m.registry.GetOrCreate(conversationID)
	s.mu.Lock()
	defer s.mu.Unlock()
	score := agent.Score(s.snapshot(len(messages)))
	return score, agent.Label(score), nil
}

// harvestIntel extracts artifacts from one adversary message, merges new
// ones into the session set and records a provenance row for each.
// Callers must hold the session mutex.
func (m *Manager) harvestIntel(ctx context.Context, s *Session, content string) {
	for _, item := range intel.Extract(content) {
		if !s.Intel.Add(item) {
			continue
		}
		rep := &domain.ScamReport{
			ReportID:       newReportID(),
			ConversationID: s.ConversationID,
			IntelType:      item.Type,
			IntelValue:     item.Value,
			Context:        item.Context,
			CreatedAt:      time.Now(),
		}
		if err := m.store.CreateScamReport(ctx, rep); err != nil {
			log.Printf("WARN: failed to persist scam report: %v", err)
		}
	}
}

// runAgentTurn advances the goal machine and synthesizes one reply. On any
// failure the session state is left untouched and the error returned.
// Callers must hold the session mutex.
func (m *Manager) runAgentTurn(ctx context.Context, s *Session) (*domain.Message, error) {
	history, err := m.store.GetMessages(ctx, s.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	gaps := s.Intel.Gaps()
	goal := agent.NextGoal(s.Agent.CurrentGoal, s.Agent.HasInitiated, gaps, len(history))
	if s.Agent.HasInitiated && goal == domain.GoalInitiateContact {
		goal = domain.GoalEngageAndStall
	}

	reply, err := m.synth.Synthesize(ctx, goal, agent.TurnContext{
		ConversationID: s.ConversationID,
		History:        history,
		LastReply:      s.Agent.LastReply,
		Intel:          s.Intel,
		Gaps:           gaps,
	})
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(reply.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reply metadata: %w", err)
	}
	msg := &domain.Message{
		MessageID:      newMessageID(),
		ConversationID: s.ConversationID,
		Sender:         domain.SenderAgent,
		Content:        reply.Content,
		CreatedAt:      time.Now(),
		Metadata:       metadata,
	}
	if err := m.store.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to persist reply: %w", err)
	}

	s.Agent.HasInitiated = true
	s.Agent.CurrentGoal = goal
	s.Agent.LastReply = reply.Content

	if goal == domain.GoalExitSafely {
		s.IsActive = false
		inactive := false
		if uerr := m.store.UpdateConversation(ctx, s.ConversationID, store.ConversationUpdate{IsAgentActive: &inactive}); uerr != nil {
			log.Printf("WARN: failed to mark agent inactive: %v", uerr)
		}
		m.deliverFinalReport(ctx, s, len(history)+1)
	}

	return msg, nil
}

// persistAgentError records a failed synthesis turn in the transcript so the
// adversary-facing silence is explained in the operator view.
func (m *Manager) persistAgentError(ctx context.Context, conversationID string, cause error) *domain.Message {
	log.Printf("ERROR: agent turn failed for %s: %v", conversationID, cause)
	metadata, _ := json.Marshal(domain.ErrorMetadata{Error: true, ErrorMessage: cause.Error()})
	msg := &domain.Message{
		MessageID:      newMessageID(),
		ConversationID: conversationID,
		Sender:         domain.SenderAgent,
		Content:        fmt.Sprintf("[AGENT ERROR: %v]", cause),
		CreatedAt:      time.Now(),
		Metadata:       metadata,
	}
	if err := m.store.CreateMessage(ctx, msg); err != nil {
		log.Printf("ERROR: failed to persist agent error message: %v", err)
		return nil
	}
	return msg
}

// deliverFinalReport submits the aggregated intelligence once per session.
// Sessions that exit without a scam flag produce no report. Delivery
// failures are logged and never retried. Callers must hold the session
// mutex.
func (m *Manager) deliverFinalReport(ctx context.Context, s *Session, totalMessages int) {
	if s.HasSentFinalReport || !s.ScamDetected || !m.reporter.Enabled() {
		return
	}
	s.HasSentFinalReport = true

	rep := &domain.FinalReport{
		SessionID:              s.ConversationID,
		ScamDetected:           s.ScamDetected,
		TotalMessagesExchanged: totalMessages,
		ExtractedIntelligence:  s.Intel,
		AgentNotes: fmt.Sprintf(
			"Session completed after %d messages. Collected %d UPI IDs, %d bank accounts, %d phishing links, %d phone numbers.",
			totalMessages, len(s.Intel.UPIIDs), len(s.Intel.BankAccounts), len(s.Intel.PhishingLinks), len(s.Intel.PhoneNumbers),
		),
	}
	if err := m.reporter.Submit(ctx, rep); err != nil {
		log.Printf("ERROR: failed to deliver final report for %s: %v", s.ConversationID, err)
	}
}

func buildUIState(snap domain.SessionSnapshot) *domain.UIState {
	score := agent.Score(snap)

	agentStatus := "ACTIVE"
	sessionStatus := "ACTIVE"
	switch {
	case !snap.IsActive:
		agentStatus = "EXITED"
		sessionStatus = "COMPLETED"
	case snap.IsPaused:
		agentStatus = "PAUSED"
	}

	goal := string(snap.CurrentGoal)
	if goal == "" {
		goal = "STANDBY"
	}

	return &domain.UIState{
		RiskScore:     score,
		RiskLabel:     agent.Label(score),
		AgentStatus:   agentStatus,
		IntelCount:    snap.Intel.Count(),
		SessionStatus: sessionStatus,
		CurrentGoal:   goal,
	}
}

func newMessageID() string {
	return "msg_" + uuid.New().String()[:8]
}

func newReportID() string {
	return "rpt_" + uuid.New().String()[:8]
}

package domain

// HoneypotMessage is the inbound message shape of the honeypot API.
type HoneypotMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// HoneypotMetadata carries channel hints supplied by the caller.
type HoneypotMetadata struct {
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// HoneypotRequest is the inbound turn request.
type HoneypotRequest struct {
	SessionID           string            `json:"sessionId"`
	Message             HoneypotMessage   `json:"message"`
	ConversationHistory []HoneypotMessage `json:"conversationHistory,omitempty"`
	Metadata            HoneypotMetadata  `json:"metadata,omitempty"`
}

// HoneypotResponse is the outbound turn response.
type HoneypotResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// AgentStateView is the externally visible agent state of a session.
type AgentStateView struct {
	HasInitiated bool   `json:"has_initiated"`
	CurrentGoal  string `json:"current_goal"`
	IsPaused     bool   `json:"is_paused"`
	IsActive     bool   `json:"is_active"`
}

// UIState is the derived presentation state polled by clients.
type UIState struct {
	RiskScore     float64 `json:"risk_score"`
	RiskLabel     string  `json:"risk_label"`
	AgentStatus   string  `json:"agent_status"`
	IntelCount    int     `json:"intel_count"`
	SessionStatus string  `json:"session_status"`
	CurrentGoal   string  `json:"current_goal"`
}

// StateSnapshot is the full read-only conversation state.
type StateSnapshot struct {
	Conversation   *Conversation   `json:"conversation"`
	Messages       []Message       `json:"messages"`
	AgentState     *AgentStateView `json:"agent_state"`
	ExtractedIntel ExtractedIntel  `json:"extracted_intel"`
	UIState        *UIState        `json:"ui_state"`
}

// FinalReport is the one-time aggregated intelligence report delivered to the
// external collector when a session exits.
type FinalReport struct {
	SessionID              string         `json:"sessionId"`
	ScamDetected           bool           `json:"scamDetected"`
	TotalMessagesExchanged int            `json:"totalMessagesExchanged"`
	ExtractedIntelligence  ExtractedIntel `json:"extractedIntelligence"`
	AgentNotes             string         `json:"agentNotes"`
}

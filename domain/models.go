package domain

import (
	"encoding/json"
	"time"
)

// Conversation represents a tracked scam conversation.
type Conversation struct {
	ConversationID string             `json:"conversation_id"`
	Title          string             `json:"title"`
	Status         ConversationStatus `json:"status"`
	ScammerName    string             `json:"scammer_name,omitempty"`
	ScamScore      int                `json:"scam_score"`
	IsAgentActive  bool               `json:"is_agent_active"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Message represents a single message in a conversation. Immutable once created.
type Message struct {
	MessageID      string          `json:"message_id"`
	ConversationID string          `json:"conversation_id"`
	Sender         Sender          `json:"sender"`
	Content        string          `json:"content"`
	CreatedAt      time.Time       `json:"created_at"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
}

// ReplyMetadata is the goal/emotion/risk snapshot attached to agent messages.
type ReplyMetadata struct {
	CurrentGoal      Goal      `json:"current_goal"`
	EmotionalState   string    `json:"emotional_state"`
	PerceivedRisk    float64   `json:"perceived_risk"`
	ConfidenceOfScam float64   `json:"confidence_of_scam"`
	IntelligenceGaps IntelGaps `json:"intelligence_gaps"`
}

// ErrorMetadata marks a failed agent turn in the transcript.
type ErrorMetadata struct {
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// ScamReport is one provenance record for an extracted intelligence item.
type ScamReport struct {
	ReportID       string    `json:"report_id"`
	ConversationID string    `json:"conversation_id"`
	IntelType      IntelType `json:"intel_type"`
	IntelValue     string    `json:"intel_value"`
	Context        string    `json:"context"`
	CreatedAt      time.Time `json:"created_at"`
}

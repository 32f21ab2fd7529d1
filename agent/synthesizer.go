package agent

import (
	"context"
	"errors"
	"strings"

	"github.com/scamtrap/honeypot/domain"
)

// Synthesis failure taxonomy. All are hard failures; the delegated strategy
// never falls back to a default reply.
var (
	// ErrMissingCredential means the external completion capability is unusable.
	ErrMissingCredential = errors.New("llm credential not configured")
	// ErrMalformedResponse means the completion lacked the required reply field.
	ErrMalformedResponse = errors.New("completion missing required reply field")
	// ErrRegenerationFailed means the single repetition-triggered retry was also malformed.
	ErrRegenerationFailed = errors.New("regeneration retry missing required reply field")
)

// Reply is a synthesized agent response with its emission-time metadata.
type Reply struct {
	Content  string
	Metadata domain.ReplyMetadata
}

// TurnContext carries everything a synthesizer may need for one turn.
type TurnContext struct {
	ConversationID string
	// History is the full transcript, oldest first, inbound message included.
	History   []domain.Message
	LastReply string
	Intel     domain.ExtractedIntel
	Gaps      domain.IntelGaps
}

// Synthesizer produces the decoy's next reply for a resolved goal.
type Synthesizer interface {
	Synthesize(ctx context.Context, goal domain.Goal, turn TurnContext) (Reply, error)
}

// scamConfidence is the fixed confidence reported in reply metadata.
const scamConfidence = 0.7

func replyMetadata(goal domain.Goal, gaps domain.IntelGaps) domain.ReplyMetadata {
	return domain.ReplyMetadata{
		CurrentGoal:      goal,
		EmotionalState:   GoalEmotion[goal],
		PerceivedRisk:    GoalRisk[goal],
		ConfidenceOfScam: scamConfidence,
		IntelligenceGaps: gaps,
	}
}

// recentAgentMessages returns the contents of the last n agent-authored
// messages in the transcript.
func recentAgentMessages(history []domain.Message, n int) []string {
	var agentMsgs []string
	for _, m := range history {
		if m.Sender == domain.SenderAgent {
			agentMsgs = append(agentMsgs, m.Content)
		}
	}
	if len(agentMsgs) > n {
		agentMsgs = agentMsgs[len(agentMsgs)-n:]
	}
	return agentMsgs
}

// similarity scores two strings by normalized character overlap: the number
// of shared character occurrences divided by the length of the longer
// normalized string. 1.0 means the same characters in the same amounts.
func similarity(a, b string) float64 {
	na := normalizeForSimilarity(a)
	nb := normalizeForSimilarity(b)
	if len(na) == 0 || len(nb) == 0 {
		return 0
	}

	counts := make(map[rune]int)
	for _, r := range na {
		counts[r]++
	}
	shared := 0
	for _, r := range nb {
		if counts[r] > 0 {
			counts[r]--
			shared++
		}
	}

	la := len([]rune(na))
	lb := len([]rune(nb))
	longer := la
	if lb > longer {
		longer = lb
	}
	return float64(shared) / float64(longer)
}

func normalizeForSimilarity(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

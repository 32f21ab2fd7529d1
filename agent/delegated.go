package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/scamtrap/honeypot/domain"
	"github.com/scamtrap/honeypot/llm"
)

// repetitionThreshold is the similarity score above which a candidate reply
// is considered a repeat of the previous agent message.
const repetitionThreshold = 0.8

// DelegatedSynthesizer produces replies by delegating to the external
// text-completion capability under a strict structured-output contract.
type DelegatedSynthesizer struct {
	client *llm.Client

	// typingDelay emulates the persona's typing latency before generation.
	// Zero in tests. It suspends only the current turn.
	typingDelay time.Duration
}

// NewDelegatedSynthesizer creates a delegated synthesizer.
func NewDelegatedSynthesizer(client *llm.Client, typingDelay time.Duration) *DelegatedSynthesizer {
	return &DelegatedSynthesizer{client: client, typingDelay: typingDelay}
}

// completionContract is the structured output the model must return.
type completionContract struct {
	Reply          string  `json:"reply"`
	CurrentGoal    string  `json:"current_goal"`
	EmotionalState string  `json:"emotional_state"`
	PerceivedRisk  float64 `json:"perceived_risk"`
}

// Synthesize asks the external capability for the persona's next reply.
// A missing reply field is a hard failure. A candidate too similar to the
// previous agent message triggers exactly one corrective retry.
func (s *DelegatedSynthesizer) Synthesize(ctx context.Context, goal domain.Goal, turn TurnContext) (Reply, error) {
	if !s.client.HasCredential() {
		return Reply{}, ErrMissingCredential
	}

	if s.typingDelay > 0 {
		select {
		case <-time.After(s.typingDelay):
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		}
	}

	content, err := s.complete(ctx, goal, turn, "")
	if err != nil {
		return Reply{}, err
	}

	previous := lastAgentMessage(turn.History)
	if previous != "" && similarity(content, previous) > repetitionThreshold {
		correction := fmt.Sprintf("Your previous reply %q repeats what you already said. Regenerate with different wording for the same goal.", content)
		content, err = s.complete(ctx, goal, turn, correction)
		if err != nil {
			if errors.Is(err, ErrMalformedResponse) {
				return Reply{}, ErrRegenerationFailed
			}
			return Reply{}, err
		}
	}

	return Reply{
		Content:  content,
		Metadata: replyMetadata(goal, turn.Gaps),
	}, nil
}

func (s *DelegatedSynthesizer) complete(ctx context.Context, goal domain.Goal, turn TurnContext, correction string) (string, error) {
	messages := []llm.ChatMessage{{Role: "system", Content: s.systemPrompt(goal, turn)}}
	for _, m := range turn.History {
		role := "user"
		if m.Sender == domain.SenderAgent {
			role = "assistant"
		}
		messages = append(messages, llm.ChatMessage{Role: role, Content: m.Content})
	}
	if correction != "" {
		messages = append(messages, llm.ChatMessage{Role: "system", Content: correction})
	}

	temperature := 0.9
	maxTokens := 120
	resp, err := s.client.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model:          s.client.Model(),
		Messages:       messages,
		Temperature:    &temperature,
		MaxTokens:      &maxTokens,
		ResponseFormat: map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return "", ErrMalformedResponse
	}

	var contract completionContract
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &contract); err != nil {
		return "", ErrMalformedResponse
	}
	reply := strings.TrimSpace(contract.Reply)
	if reply == "" {
		return "", ErrMalformedResponse
	}
	return reply, nil
}

func (s *DelegatedSynthesizer) systemPrompt(goal domain.Goal, turn TurnContext) string {
	var b strings.Builder
	b.WriteString("You are Sarah, a 68 year old retired teacher. You are nervous, not tech-savvy, and you type short broken-English sentences with light Hinglish.\n")
	b.WriteString("You are talking to a suspected scammer. Never reveal that you suspect a scam. Ask naive questions that lead them to share payment details.\n\n")
	b.WriteString("Current goal: " + string(goal) + "\n")
	b.WriteString("Emotional state: " + GoalEmotion[goal] + "\n")
	b.WriteString(revealedIntelSummary(turn.Intel))
	b.WriteString("\nRespond ONLY with a JSON object of the form ")
	b.WriteString(`{"reply": "...", "current_goal": "...", "emotional_state": "...", "perceived_risk": 0.0}. `)
	b.WriteString("The reply field is the persona's next message: one or two short sentences, at most 15 words.")
	return b.String()
}

// revealedIntelSummary lists what the adversary has already disclosed, so
// the model asks for what is still missing.
func revealedIntelSummary(intel domain.ExtractedIntel) string {
	var b strings.Builder
	b.WriteString("Intelligence already revealed by the other party:\n")
	writeCategory := func(label string, values []string) {
		if len(values) == 0 {
			b.WriteString("- " + label + ": none yet\n")
			return
		}
		b.WriteString("- " + label + ": " + strings.Join(values, ", ") + "\n")
	}
	writeCategory("UPI IDs", intel.UPIIDs)
	writeCategory("Bank accounts", intel.BankAccounts)
	writeCategory("Links", intel.PhishingLinks)
	writeCategory("Phone numbers", intel.PhoneNumbers)
	return b.String()
}

func lastAgentMessage(history []domain.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Sender == domain.SenderAgent {
			return history[i].Content
		}
	}
	return ""
}

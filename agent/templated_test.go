package agent

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scamtrap/honeypot/domain"
)

func TestTemplatedSynthesizePicksFromGoalTemplates(t *testing.T) {
	s := NewTemplatedSynthesizer(rand.New(rand.NewSource(1)))
	reply, err := s.Synthesize(context.Background(), domain.GoalAskUPIDetails, TurnContext{})
	assert.NoError(t, err)

	found := false
	for _, tpl := range responseTemplates[domain.GoalAskUPIDetails] {
		if tpl == reply.Content {
			found = true
		}
	}
	assert.True(t, found, "reply %q not in ASK_UPI_DETAILS templates", reply.Content)
	assert.Equal(t, domain.GoalAskUPIDetails, reply.Metadata.CurrentGoal)
	assert.Equal(t, "Anxious", reply.Metadata.EmotionalState)
	assert.Equal(t, 0.6, reply.Metadata.PerceivedRisk)
}

func TestTemplatedSynthesizeAvoidsLastReply(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewTemplatedSynthesizer(rng)

	// Run many turns; the chosen reply must never equal the previous one
	// for a goal with multiple templates.
	last := ""
	for i := 0; i < 50; i++ {
		reply, err := s.Synthesize(context.Background(), domain.GoalEngageAndStall, TurnContext{LastReply: last})
		assert.NoError(t, err)
		assert.NotEqual(t, last, reply.Content)
		last = reply.Content
	}
}

func TestTemplatedSynthesizeAvoidsRecentAgentMessages(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewTemplatedSynthesizer(rng)

	history := []domain.Message{
		{Sender: domain.SenderAgent, Content: "Haan haan... I'm listening beta."},
		{Sender: domain.SenderScammer, Content: "send money now"},
		{Sender: domain.SenderAgent, Content: "Beta speak slowly please..."},
	}
	for i := 0; i < 30; i++ {
		reply, err := s.Synthesize(context.Background(), domain.GoalEngageAndStall, TurnContext{History: history})
		assert.NoError(t, err)
		assert.NotEqual(t, "Haan haan... I'm listening beta.", reply.Content)
		assert.NotEqual(t, "Beta speak slowly please...", reply.Content)
	}
}

func TestTemplatedSynthesizeSingleTemplateNeverBlocks(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewTemplatedSynthesizer(rng)

	// Force a degenerate single-template list whose only entry equals the
	// last reply. Synthesis must still return that value.
	original := responseTemplates[domain.GoalExitSafely]
	responseTemplates[domain.GoalExitSafely] = []string{"Okay beta... I will do tomorrow."}
	defer func() { responseTemplates[domain.GoalExitSafely] = original }()

	reply, err := s.Synthesize(context.Background(), domain.GoalExitSafely, TurnContext{
		LastReply: "Okay beta... I will do tomorrow.",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Okay beta... I will do tomorrow.", reply.Content)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("hello beta", "hello beta"))
	assert.Equal(t, 0.0, similarity("", "hello"))
	assert.Greater(t, similarity("UPI id batao beta", "upi id batao beta..."), 0.8)
	assert.Less(t, similarity("Which bank beta?", "Any website beta?"), 0.8)
}

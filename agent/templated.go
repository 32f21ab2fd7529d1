package agent

import (
	"context"
	"math/rand"

	"github.com/scamtrap/honeypot/domain"
)

// maxResampleAttempts bounds the anti-repetition loop. After this many
// resamples the last candidate is accepted regardless, so a single-template
// goal can never deadlock.
const maxResampleAttempts = 10

// TemplatedSynthesizer picks replies at random from the persona's fixed
// template lists, avoiding recent repeats.
type TemplatedSynthesizer struct {
	rng *rand.Rand
}

// NewTemplatedSynthesizer creates a templated synthesizer. The random source
// is injectable so tests can assert exact selections.
func NewTemplatedSynthesizer(rng *rand.Rand) *TemplatedSynthesizer {
	return &TemplatedSynthesizer{rng: rng}
}

// Synthesize selects a template for the goal, resampling away from the
// session's last reply and the last 3 agent messages.
func (s *TemplatedSynthesizer) Synthesize(_ context.Context, goal domain.Goal, turn TurnContext) (Reply, error) {
	templates := responseTemplates[goal]
	if len(templates) == 0 {
		templates = responseTemplates[domain.GoalEngageAndStall]
	}

	recent := recentAgentMessages(turn.History, 3)
	content := templates[s.rng.Intn(len(templates))]
	for attempts := 0; attempts < maxResampleAttempts && len(templates) > 1 && s.isRepeat(content, recent, turn.LastReply); attempts++ {
		content = templates[s.rng.Intn(len(templates))]
	}

	return Reply{
		Content:  content,
		Metadata: replyMetadata(goal, turn.Gaps),
	}, nil
}

func (s *TemplatedSynthesizer) isRepeat(candidate string, recent []string, lastReply string) bool {
	if lastReply != "" && candidate == lastReply {
		return true
	}
	for _, m := range recent {
		if candidate == m {
			return true
		}
	}
	return false
}

package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngagementPolicy(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	assert.NoError(t, err)

	t.Run("trigger word engages", func(t *testing.T) {
		decision, err := engine.Evaluate(ctx, EngagementInput("Your bank account will be blocked", "scammer", false))
		assert.NoError(t, err)
		assert.Equal(t, "engage", decision)
	})

	t.Run("no trigger word ignores", func(t *testing.T) {
		decision, err := engine.Evaluate(ctx, EngagementInput("hello there, nice weather", "scammer", false))
		assert.NoError(t, err)
		assert.Equal(t, "ignore", decision)
	})

	t.Run("trigger word from agent ignored", func(t *testing.T) {
		decision, err := engine.Evaluate(ctx, EngagementInput("which bank beta?", "agent", false))
		assert.NoError(t, err)
		assert.Equal(t, "ignore", decision)
	})

	t.Run("valid api key engages regardless of text", func(t *testing.T) {
		decision, err := engine.Evaluate(ctx, EngagementInput("hello", "scammer", true))
		assert.NoError(t, err)
		assert.Equal(t, "engage", decision)
	})

	t.Run("case insensitive triggers", func(t *testing.T) {
		decision, err := engine.Evaluate(ctx, EngagementInput("SEND MONEY NOW", "scammer", false))
		assert.NoError(t, err)
		assert.Equal(t, "engage", decision)
	})
}

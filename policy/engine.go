// Package policy decides when the decoy agent engages a conversation.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine is the OPA engagement policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.engagement.decision"),
		rego.Module("engagement.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the engagement policy for one inbound message.
// Input keys: text, sender, api_key_valid.
// Returns the decision: "engage" or "ignore".
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The default policy always defines a decision.
		return "ignore", nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "ignore", nil
}

// DefaultPolicy activates the decoy on a valid handoff key or when an
// adversary message mentions payment machinery.
const DefaultPolicy = `package engagement

default decision := "ignore"

trigger_words := ["bank", "upi", "payment", "amount", "ifsc", "code", "id", "account", "transfer", "send", "money"]

decision := "engage" if {
	input.sender == "scammer"
	some w in trigger_words
	contains(lower(input.text), w)
}

decision := "engage" if {
	input.api_key_valid == true
}
`

// EngagementInput builds the policy input for one inbound message.
func EngagementInput(text, sender string, apiKeyValid bool) map[string]interface{} {
	return map[string]interface{}{
		"text":          text,
		"sender":        sender,
		"api_key_valid": apiKeyValid,
	}
}

// Package agent implements the decoy's decision logic: the goal state
// machine, risk scoring, and reply synthesis.
package agent

import "github.com/scamtrap/honeypot/domain"

const (
	// exitLengthThreshold is the conversation length floor for EXIT_SAFELY.
	// Exit additionally requires every intelligence category to be captured;
	// length alone never ends a conversation.
	exitLengthThreshold = 20

	// engageLengthThreshold is how long the agent stalls before it starts
	// steering toward payment details.
	engageLengthThreshold = 2
)

// NextGoal computes the decoy's next conversational goal. Pure and
// deterministic; first matching rule wins.
//
// The engine is persistent on purpose: an unmet "ask" goal cycles to a
// different ask instead of repeating itself or exiting, and exit requires
// sustained success across UPI, bank and link plus a long conversation.
func NextGoal(current domain.Goal, hasInitiated bool, gaps domain.IntelGaps, conversationLength int) domain.Goal {
	if !hasInitiated {
		return domain.GoalInitiateContact
	}

	if conversationLength > exitLengthThreshold && gaps.HasUPI && gaps.HasBank && gaps.HasPhishingLink {
		return domain.GoalExitSafely
	}

	// Re-initiation is forbidden once the first turn has happened.
	if current == domain.GoalNone || current == domain.GoalInitiateContact {
		return domain.GoalEngageAndStall
	}

	if current == domain.GoalEngageAndStall {
		if conversationLength > engageLengthThreshold {
			return domain.GoalAskPaymentContext
		}
		return domain.GoalEngageAndStall
	}

	switch current {
	case domain.GoalAskPaymentContext:
		if !gaps.HasUPI {
			return domain.GoalAskUPIDetails
		}
		if !gaps.HasBank {
			return domain.GoalAskBankDetails
		}
		if !gaps.HasPhishingLink {
			return domain.GoalAskPhishingLink
		}
		return domain.GoalEngageAndStall

	case domain.GoalAskUPIDetails:
		if !gaps.HasBank {
			return domain.GoalAskBankDetails
		}
		if !gaps.HasPhishingLink {
			return domain.GoalAskPhishingLink
		}
		return domain.GoalAskPaymentContext

	case domain.GoalAskBankDetails:
		if !gaps.HasPhishingLink {
			return domain.GoalAskPhishingLink
		}
		if !gaps.HasUPI {
			return domain.GoalAskUPIDetails
		}
		return domain.GoalAskPaymentContext

	case domain.GoalAskPhishingLink:
		if !gaps.HasBank {
			return domain.GoalAskBankDetails
		}
		if !gaps.HasUPI {
			return domain.GoalAskUPIDetails
		}
		return domain.GoalEngageAndStall
	}

	return domain.GoalEngageAndStall
}

package agent

import (
	"testing"

	"github.com/scamtrap/honeypot/domain"
)

func TestNextGoalFirstTurnInitiates(t *testing.T) {
	got := NextGoal(domain.GoalNone, false, domain.IntelGaps{}, 0)
	if got != domain.GoalInitiateContact {
		t.Fatalf("expected INITIATE_CONTACT, got %s", got)
	}
}

func TestNextGoalReInitiationGuard(t *testing.T) {
	// Once initiated, INITIATE_CONTACT must never be produced again,
	// whatever the other inputs say.
	inputs := []struct {
		gaps   domain.IntelGaps
		length int
	}{
		{domain.IntelGaps{}, 0},
		{domain.IntelGaps{}, 100},
		{domain.IntelGaps{HasUPI: true, HasBank: true}, 5},
	}
	for _, in := range inputs {
		got := NextGoal(domain.GoalInitiateContact, true, in.gaps, in.length)
		if got != domain.GoalEngageAndStall {
			t.Fatalf("expected ENGAGE_AND_STALL for %+v, got %s", in, got)
		}
	}
}

func TestNextGoalExitRequiresConjunction(t *testing.T) {
	all := domain.IntelGaps{HasUPI: true, HasBank: true, HasPhishingLink: true}
	if got := NextGoal(domain.GoalEngageAndStall, true, all, 25); got != domain.GoalExitSafely {
		t.Fatalf("expected EXIT_SAFELY with all intel and long conversation, got %s", got)
	}

	// Missing link: must not exit, however long the conversation runs.
	partial := domain.IntelGaps{HasUPI: true, HasBank: true}
	if got := NextGoal(domain.GoalEngageAndStall, true, partial, 25); got == domain.GoalExitSafely {
		t.Fatalf("exited without phishing link captured")
	}

	// All intel but short conversation: keep going.
	if got := NextGoal(domain.GoalEngageAndStall, true, all, 10); got == domain.GoalExitSafely {
		t.Fatalf("exited below length threshold")
	}
}

func TestNextGoalEngageThenPayment(t *testing.T) {
	if got := NextGoal(domain.GoalEngageAndStall, true, domain.IntelGaps{}, 2); got != domain.GoalEngageAndStall {
		t.Fatalf("expected ENGAGE_AND_STALL at length 2, got %s", got)
	}
	if got := NextGoal(domain.GoalEngageAndStall, true, domain.IntelGaps{}, 3); got != domain.GoalAskPaymentContext {
		t.Fatalf("expected ASK_PAYMENT_CONTEXT at length 3, got %s", got)
	}
}

func TestNextGoalAskCyclesNeverRepeatSameAsk(t *testing.T) {
	cases := []struct {
		current domain.Goal
		gaps    domain.IntelGaps
		want    domain.Goal
	}{
		{domain.GoalAskPaymentContext, domain.IntelGaps{}, domain.GoalAskUPIDetails},
		{domain.GoalAskPaymentContext, domain.IntelGaps{HasUPI: true}, domain.GoalAskBankDetails},
		{domain.GoalAskPaymentContext, domain.IntelGaps{HasUPI: true, HasBank: true}, domain.GoalAskPhishingLink},
		{domain.GoalAskPaymentContext, domain.IntelGaps{HasUPI: true, HasBank: true, HasPhishingLink: true}, domain.GoalEngageAndStall},
		{domain.GoalAskUPIDetails, domain.IntelGaps{}, domain.GoalAskBankDetails},
		{domain.GoalAskUPIDetails, domain.IntelGaps{HasBank: true}, domain.GoalAskPhishingLink},
		{domain.GoalAskUPIDetails, domain.IntelGaps{HasBank: true, HasPhishingLink: true}, domain.GoalAskPaymentContext},
		{domain.GoalAskBankDetails, domain.IntelGaps{}, domain.GoalAskPhishingLink},
		{domain.GoalAskBankDetails, domain.IntelGaps{HasPhishingLink: true}, domain.GoalAskUPIDetails},
		{domain.GoalAskBankDetails, domain.IntelGaps{HasPhishingLink: true, HasUPI: true}, domain.GoalAskPaymentContext},
		{domain.GoalAskPhishingLink, domain.IntelGaps{}, domain.GoalAskBankDetails},
		{domain.GoalAskPhishingLink, domain.IntelGaps{HasBank: true}, domain.GoalAskUPIDetails},
		{domain.GoalAskPhishingLink, domain.IntelGaps{HasBank: true, HasUPI: true}, domain.GoalEngageAndStall},
	}
	for _, c := range cases {
		got := NextGoal(c.current, true, c.gaps, 10)
		if got != c.want {
			t.Fatalf("from %s with %+v: expected %s, got %s", c.current, c.gaps, c.want, got)
		}
		if got == c.current {
			t.Fatalf("ask goal %s repeated itself", c.current)
		}
	}
}

func TestNextGoalDefault(t *testing.T) {
	if got := NextGoal(domain.GoalExitSafely, true, domain.IntelGaps{}, 5); got != domain.GoalEngageAndStall {
		t.Fatalf("expected default ENGAGE_AND_STALL, got %s", got)
	}
}

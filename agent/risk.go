package agent

import "github.com/scamtrap/honeypot/domain"

// Score computes the derived risk signal for a session snapshot.
// Pure function; additive weighted contributions per captured category,
// small bonuses for evidence volume, floored at 0.8 once the session has
// exited, clamped to 1.0.
func Score(s domain.SessionSnapshot) float64 {
	score := 0.1

	if len(s.Intel.PhoneNumbers) > 0 {
		score += 0.15
	}
	if len(s.Intel.UPIIDs) > 0 {
		score += 0.25
	}
	if len(s.Intel.BankAccounts) > 0 {
		score += 0.2
	}
	if len(s.Intel.PhishingLinks) > 0 {
		score += 0.2
	}

	total := s.Intel.Count()
	if total >= 2 {
		score += 0.1
	}
	if total >= 3 {
		score += 0.1
	}

	if s.CurrentGoal == domain.GoalExitSafely || !s.IsActive {
		if score < 0.8 {
			score = 0.8
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Label maps a risk score to its display label.
func Label(score float64) string {
	if score < 0.3 {
		return "SAFE"
	}
	if score < 0.6 {
		return "CAUTION"
	}
	return "HIGH RISK"
}

// Confidence scores how certain the system is that the conversation is a
// scam, based on the categories of captured intelligence.
func Confidence(intel domain.ExtractedIntel) float64 {
	score := 0.0
	if len(intel.UPIIDs) > 0 {
		score += 0.4
	}
	if len(intel.BankAccounts) > 0 {
		score += 0.3
	}
	if len(intel.PhishingLinks) > 0 {
		score += 0.3
	}
	if len(intel.UPIIDs)+len(intel.BankAccounts)+len(intel.PhishingLinks) >= 3 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

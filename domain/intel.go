package domain

import "strings"

// IntelType classifies an extracted intelligence item.
type IntelType string

const (
	IntelUPI         IntelType = "upi"
	IntelBankAccount IntelType = "bank_account"
	IntelPhone       IntelType = "phone"
	IntelURL         IntelType = "url"
)

// IntelItem is a typed artifact extracted from adversary text.
type IntelItem struct {
	Type    IntelType `json:"type"`
	Value   string    `json:"value"`
	Context string    `json:"context"`
}

// ExtractedIntel holds the per-category intelligence captured for a session.
// Each slice is a set under normalized equality; the stored literal keeps the
// casing of the first-seen value.
type ExtractedIntel struct {
	UPIIDs        []string `json:"upi_ids"`
	BankAccounts  []string `json:"bank_accounts"`
	PhishingLinks []string `json:"phishing_links"`
	PhoneNumbers  []string `json:"phone_numbers"`
}

// NormalizeIntelValue is the canonical form used for dedup comparisons.
func NormalizeIntelValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func containsNormalized(values []string, v string) bool {
	n := NormalizeIntelValue(v)
	for _, existing := range values {
		if NormalizeIntelValue(existing) == n {
			return true
		}
	}
	return false
}

// Add merges an item into the matching category set, deduplicating by
// normalized value. Returns true if the item was newly accepted.
func (e *ExtractedIntel) Add(item IntelItem) bool {
	switch item.Type {
	case IntelUPI:
		if containsNormalized(e.UPIIDs, item.Value) {
			return false
		}
		e.UPIIDs = append(e.UPIIDs, item.Value)
	case IntelBankAccount:
		if containsNormalized(e.BankAccounts, item.Value) {
			return false
		}
		e.BankAccounts = append(e.BankAccounts, item.Value)
	case IntelURL:
		if containsNormalized(e.PhishingLinks, item.Value) {
			return false
		}
		e.PhishingLinks = append(e.PhishingLinks, item.Value)
	case IntelPhone:
		if containsNormalized(e.PhoneNumbers, item.Value) {
			return false
		}
		e.PhoneNumbers = append(e.PhoneNumbers, item.Value)
	default:
		return false
	}
	return true
}

// Count returns the total number of captured items across all categories.
func (e ExtractedIntel) Count() int {
	return len(e.UPIIDs) + len(e.BankAccounts) + len(e.PhishingLinks) + len(e.PhoneNumbers)
}

// Gaps reports which intelligence categories have been captured so far.
func (e ExtractedIntel) Gaps() IntelGaps {
	return IntelGaps{
		HasUPI:          len(e.UPIIDs) > 0,
		HasBank:         len(e.BankAccounts) > 0,
		HasPhishingLink: len(e.PhishingLinks) > 0,
		HasPhoneNumber:  len(e.PhoneNumbers) > 0,
	}
}

// IntelGaps flags the intelligence categories captured for a session.
type IntelGaps struct {
	HasUPI          bool `json:"has_upi"`
	HasBank         bool `json:"has_bank"`
	HasPhishingLink bool `json:"has_phishing_link"`
	HasPhoneNumber  bool `json:"has_phone_number"`
}

// SessionSnapshot is the read-only view of a session consumed by the risk
// scorer and the state endpoint.
type SessionSnapshot struct {
	ConversationID string         `json:"conversation_id"`
	Intel          ExtractedIntel `json:"extracted_intel"`
	CurrentGoal    Goal           `json:"current_goal"`
	HasInitiated   bool           `json:"has_initiated"`
	IsPaused       bool           `json:"is_paused"`
	IsActive       bool           `json:"is_active"`
	ScamDetected   bool           `json:"scam_detected"`
	MessageCount   int            `json:"message_count"`
}

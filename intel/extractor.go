// Package intel provides regex-based extraction of scam intelligence from
// adversary text, plus scam indicator detection.
package intel

import (
	"regexp"
	"strings"

	"github.com/scamtrap/honeypot/domain"
)

var (
	ifscRe  = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)
	accRe   = regexp.MustCompile(`\b\d{9,18}\b`)
	upiRe   = regexp.MustCompile(`\b[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}\b`)
	urlRe   = regexp.MustCompile(`https?://\S+`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	nonPhoneRe = regexp.MustCompile(`[^\d+]`)
)

// bankContextWords gates the generic digit-run recognizer: a 9-18 digit run
// only counts as a bank account when the message talks about one.
var bankContextWords = []string{"account", "acc", "bank", "transfer"}

// Extract parses free text into typed intelligence items. Pure and
// deterministic; malformed input yields an empty result, never an error.
//
// Recognizers run in priority order (bank > UPI > URL > phone). A substring
// claimed by a higher-priority recognizer is excluded from the rest of the
// same call, so an account number is never also reported as a phone number.
func Extract(text string) []domain.IntelItem {
	var items []domain.IntelItem
	claimed := make(map[string]bool)
	lower := strings.ToLower(text)

	// 1. Structured bank codes are unambiguous and always claimed.
	for _, m := range ifscRe.FindAllString(text, -1) {
		if claimed[m] {
			continue
		}
		claimed[m] = true
		items = append(items, domain.IntelItem{
			Type:    domain.IntelBankAccount,
			Value:   m,
			Context: "Detected Bank IFSC Code",
		})
	}

	// 2. Generic digit runs need banking context; without it they stay
	// eligible for the phone recognizer below.
	if hasBankContext(lower) {
		for _, m := range accRe.FindAllString(text, -1) {
			if claimed[m] {
				continue
			}
			claimed[m] = true
			items = append(items, domain.IntelItem{
				Type:    domain.IntelBankAccount,
				Value:   m,
				Context: "Detected potential bank account number",
			})
		}
	}

	// 3. Payment handles.
	for _, m := range upiRe.FindAllString(text, -1) {
		if claimed[m] {
			continue
		}
		claimed[m] = true
		items = append(items, domain.IntelItem{
			Type:    domain.IntelUPI,
			Value:   m,
			Context: "Detected UPI VPA",
		})
	}

	// 4. URLs are contextual evidence, not confirmed phishing.
	for _, m := range urlRe.FindAllString(text, -1) {
		if claimed[m] {
			continue
		}
		claimed[m] = true
		items = append(items, domain.IntelItem{
			Type:    domain.IntelURL,
			Value:   m,
			Context: "Suspicious link (contextual - verify legitimacy)",
		})
	}

	// 5. Phone numbers last: the loosest pattern, skipped wherever the raw
	// or normalized match was already claimed.
	for _, m := range phoneRe.FindAllString(text, -1) {
		normalized := nonPhoneRe.ReplaceAllString(m, "")
		trimmed := strings.TrimSpace(m)
		if normalized == "" || claimed[normalized] || claimed[trimmed] {
			continue
		}
		claimed[normalized] = true
		items = append(items, domain.IntelItem{
			Type:    domain.IntelPhone,
			Value:   normalized,
			Context: "Detected contact phone number",
		})
	}

	return items
}

func hasBankContext(lower string) bool {
	for _, w := range bankContextWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

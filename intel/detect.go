package intel

import "strings"

// scamIndicators are phrases that flag a message as a likely scam attempt.
var scamIndicators = []string{
	"account blocked",
	"account suspended",
	"verify immediately",
	"urgent action",
	"payment required",
	"click here",
	"upi id",
	"send money",
	"transfer now",
	"bank details",
	"ifsc code",
}

// DetectScam reports whether the text contains a known scam indicator.
func DetectScam(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range scamIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

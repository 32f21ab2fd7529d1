package intel

import (
	"testing"

	"github.com/scamtrap/honeypot/domain"
)

func TestExtractBankAccountWithContext(t *testing.T) {
	items := Extract("My account number is 123456789012 for the bank transfer")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d: %+v", len(items), items)
	}
	if items[0].Type != domain.IntelBankAccount || items[0].Value != "123456789012" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestExtractDigitRunWithoutContextIsNotBankAccount(t *testing.T) {
	items := Extract("call me on 9876543210 today")
	for _, item := range items {
		if item.Type == domain.IntelBankAccount {
			t.Fatalf("digit run without banking context classified as bank_account: %+v", item)
		}
	}
}

func TestExtractUPI(t *testing.T) {
	items := Extract("send to john.doe@examplebank")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d: %+v", len(items), items)
	}
	if items[0].Type != domain.IntelUPI || items[0].Value != "john.doe@examplebank" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestExtractIFSCAlwaysClaimed(t *testing.T) {
	items := Extract("use HDFC0001234 ok")
	if len(items) != 1 || items[0].Type != domain.IntelBankAccount || items[0].Value != "HDFC0001234" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestExtractURLContextualLabel(t *testing.T) {
	items := Extract("verify at https://secure-pay.example.com/login now")
	if len(items) != 1 || items[0].Type != domain.IntelURL {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].Context != "Suspicious link (contextual - verify legitimacy)" {
		t.Fatalf("unexpected context label: %q", items[0].Context)
	}
}

func TestExtractPhoneNormalized(t *testing.T) {
	items := Extract("reach us at +91-555-012-3456")
	found := false
	for _, item := range items {
		if item.Type == domain.IntelPhone {
			found = true
			if item.Value != "+915550123456" {
				t.Fatalf("unexpected normalized phone: %q", item.Value)
			}
		}
	}
	if !found {
		t.Fatalf("expected a phone item, got %+v", items)
	}
}

func TestExtractAccountNotDoubleClassifiedAsPhone(t *testing.T) {
	items := Extract("transfer to account 123456789012")
	if len(items) != 1 {
		t.Fatalf("expected exactly 1 item, got %+v", items)
	}
	if items[0].Type != domain.IntelBankAccount {
		t.Fatalf("unexpected type: %+v", items[0])
	}
}

func TestExtractIdempotent(t *testing.T) {
	text := "pay scammer@upi or account 987654321098, link https://bad.example.com call 5550123456 for bank help"
	first := Extract(text)
	second := Extract(text)
	if len(first) != len(second) {
		t.Fatalf("extract not deterministic: %d vs %d items", len(first), len(second))
	}
	seen := make(map[string]bool)
	for _, item := range first {
		key := string(item.Type) + "|" + domain.NormalizeIntelValue(item.Value)
		if seen[key] {
			t.Fatalf("duplicate item in single call: %+v", item)
		}
		seen[key] = true
	}
}

func TestExtractEmptyAndMalformed(t *testing.T) {
	for _, text := range []string{"", "hello there", "@@@@", "http://"} {
		if items := Extract(text); len(items) != 0 {
			t.Fatalf("expected no items for %q, got %+v", text, items)
		}
	}
}

func TestDetectScam(t *testing.T) {
	if !DetectScam("Your account blocked today. Verify immediately.") {
		t.Fatalf("expected scam detection")
	}
	if DetectScam("hello, how are you?") {
		t.Fatalf("unexpected scam detection")
	}
}

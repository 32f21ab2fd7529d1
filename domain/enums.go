// Package domain defines the core domain models for the honeypot service.
package domain

// Goal is the decoy's current conversational objective.
type Goal string

const (
	GoalInitiateContact   Goal = "INITIATE_CONTACT"
	GoalEngageAndStall    Goal = "ENGAGE_AND_STALL"
	GoalAskPaymentContext Goal = "ASK_PAYMENT_CONTEXT"
	GoalAskUPIDetails     Goal = "ASK_UPI_DETAILS"
	GoalAskBankDetails    Goal = "ASK_BANK_DETAILS"
	GoalAskPhishingLink   Goal = "ASK_PHISHING_LINK"
	GoalExitSafely        Goal = "EXIT_SAFELY"

	// GoalNone marks a session whose agent has not picked a goal yet.
	GoalNone Goal = ""
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderScammer Sender = "scammer"
	SenderAgent   Sender = "agent"
)

// ConversationStatus represents the status of a conversation.
type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
	ConversationClosed ConversationStatus = "closed"
)

// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/scamtrap/honeypot/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Conversation operations
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error)
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
	UpdateConversation(ctx context.Context, conversationID string, update ConversationUpdate) error
	ClearConversationMessages(ctx context.Context, conversationID string) error

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, conversationID string) ([]domain.Message, error)

	// Scam report operations
	CreateScamReport(ctx context.Context, report *domain.ScamReport) error
	GetScamReports(ctx context.Context, conversationID string) ([]domain.ScamReport, error)

	// Lifecycle
	Close() error
}

// ConversationUpdate is a partial update; nil fields are left unchanged.
type ConversationUpdate struct {
	Title         *string
	Status        *domain.ConversationStatus
	ScammerName   *string
	ScamScore     *int
	IsAgentActive *bool
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/scamtrap/honeypot/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			conversation_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			scammer_name TEXT,
			scam_score INTEGER NOT NULL DEFAULT 0,
			is_agent_active INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			sender TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			metadata TEXT,
			FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS scam_reports (
			report_id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			intel_type TEXT NOT NULL,
			intel_value TEXT NOT NULL,
			context TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scam_reports_conversation ON scam_reports(conversation_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateConversation creates a new conversation.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (conversation_id, title, status, scammer_name, scam_score, is_agent_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		conv.ConversationID, conv.Title, conv.Status, conv.ScammerName, conv.ScamScore, conv.IsAgentActive, conv.CreatedAt)
	return err
}

// GetConversation retrieves a conversation by ID. Returns nil when absent.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	var scammerName sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, title, status, scammer_name, scam_score, is_agent_active, created_at
		 FROM conversations WHERE conversation_id = ?`,
		conversationID).Scan(&conv.ConversationID, &conv.Title, &conv.Status, &scammerName, &conv.ScamScore, &conv.IsAgentActive, &conv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if scammerName.Valid {
		conv.ScammerName = scammerName.String
	}
	return &conv, nil
}

// ListConversations lists all conversations, newest first.
func (s *SQLiteStore) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id, title, status, scammer_name, scam_score, is_agent_active, created_at
		 FROM conversations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		var scammerName sql.NullString
		if err := rows.Scan(&conv.ConversationID, &conv.Title, &conv.Status, &scammerName, &conv.ScamScore, &conv.IsAgentActive, &conv.CreatedAt); err != nil {
			return nil, err
		}
		if scammerName.Valid {
			conv.ScammerName = scammerName.String
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

// UpdateConversation applies a partial update to a conversation.
func (s *SQLiteStore) UpdateConversation(ctx context.Context, conversationID string, update ConversationUpdate) error {
	var sets []string
	var args []interface{}

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *update.Status)
	}
	if update.ScammerName != nil {
		sets = append(sets, "scammer_name = ?")
		args = append(args, *update.ScammerName)
	}
	if update.ScamScore != nil {
		sets = append(sets, "scam_score = ?")
		args = append(args, *update.ScamScore)
	}
	if update.IsAgentActive != nil {
		sets = append(sets, "is_agent_active = ?")
		args = append(args, *update.IsAgentActive)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, conversationID)
	query := fmt.Sprintf("UPDATE conversations SET %s WHERE conversation_id = ?", strings.Join(sets, ", "))
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// ClearConversationMessages deletes all messages of a conversation.
func (s *SQLiteStore) ClearConversationMessages(ctx context.Context, conversationID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE conversation_id = ?`, conversationID)
	return err
}

// CreateMessage creates a new message.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	metadata := ""
	if message.Metadata != nil {
		metadata = string(message.Metadata)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, conversation_id, sender, content, created_at, metadata) VALUES (?, ?, ?, ?, ?, ?)`,
		message.MessageID, message.ConversationID, message.Sender, message.Content, message.CreatedAt, metadata)
	return err
}

// GetMessages retrieves messages for a conversation, oldest first.
func (s *SQLiteStore) GetMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, conversation_id, sender, content, created_at, metadata
		 FROM messages WHERE conversation_id = ? ORDER BY created_at ASC`,
		conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var metadata sql.NullString
		if err := rows.Scan(&msg.MessageID, &msg.ConversationID, &msg.Sender, &msg.Content, &msg.CreatedAt, &metadata); err != nil {
			return nil, err
		}
		if metadata.Valid && metadata.String != "" {
			msg.Metadata = []byte(metadata.String)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// CreateScamReport creates a new scam report entry.
func (s *SQLiteStore) CreateScamReport(ctx context.Context, report *domain.ScamReport) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scam_reports (report_id, conversation_id, intel_type, intel_value, context, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		report.ReportID, report.ConversationID, report.IntelType, report.IntelValue, report.Context, report.CreatedAt)
	return err
}

// GetScamReports retrieves scam reports for a conversation, oldest first.
func (s *SQLiteStore) GetScamReports(ctx context.Context, conversationID string) ([]domain.ScamReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT report_id, conversation_id, intel_type, intel_value, context, created_at
		 FROM scam_reports WHERE conversation_id = ? ORDER BY created_at ASC`,
		conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.ScamReport
	for rows.Next() {
		var r domain.ScamReport
		if err := rows.Scan(&r.ReportID, &r.ConversationID, &r.IntelType, &r.IntelValue, &r.Context, &r.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

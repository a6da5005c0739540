package store

import (
	"context"
	"database/sql"
	"fmt"

	"support-service/internal/models"
)

// AppendChatTurn appends a user message and the assistant reply to the
// account's transcript, creating the transcript on first use. Appends are
// row inserts inside one transaction, so concurrent turns interleave
// instead of clobbering each other. Returns the full transcript.
func (s *Store) AppendChatTurn(ctx context.Context, userID int64, userContent, assistantContent string) ([]models.ChatMessage, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var chatID int64
	err = tx.GetContext(ctx, &chatID, `
		INSERT INTO chats (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert chat: %w", err)
	}

	for _, m := range []struct {
		role    string
		content string
	}{
		{models.MessageRoleUser, userContent},
		{models.MessageRoleAssistant, assistantContent},
	} {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO chat_messages (chat_id, role, content) VALUES ($1, $2, $3)",
			chatID, m.role, m.content); err != nil {
			return nil, fmt.Errorf("failed to append %s message: %w", m.role, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetChatMessages(ctx, userID)
}

// GetChatMessages retrieves the account's transcript in insertion order,
// or an empty slice when no transcript exists yet.
func (s *Store) GetChatMessages(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := s.db.SelectContext(ctx, &messages, `
		SELECT m.* FROM chat_messages m
		JOIN chats c ON c.id = m.chat_id
		WHERE c.user_id = $1
		ORDER BY m.id`, userID)
	return messages, err
}

// GetChats retrieves transcripts with their owners joined, most recently
// updated first. A limit of 0 means no limit.
func (s *Store) GetChats(ctx context.Context, limit int) ([]models.ChatSummary, error) {
	var chats []models.ChatSummary
	query := `
		SELECT c.*, u.name AS user_name, u.email AS user_email,
		       (SELECT COUNT(*) FROM chat_messages m WHERE m.chat_id = c.id) AS message_count
		FROM chats c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.updated_at DESC`
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}
	err := s.db.SelectContext(ctx, &chats, query)
	return chats, err
}

// GetChatByID retrieves one transcript with its owner and messages
func (s *Store) GetChatByID(ctx context.Context, id int64) (*models.ChatSummary, []models.ChatMessage, error) {
	var chat models.ChatSummary
	err := s.db.GetContext(ctx, &chat, `
		SELECT c.*, u.name AS user_name, u.email AS user_email,
		       (SELECT COUNT(*) FROM chat_messages m WHERE m.chat_id = c.id) AS message_count
		FROM chats c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("chat not found: %d", id)
	}
	if err != nil {
		return nil, nil, err
	}

	messages := []models.ChatMessage{}
	if err := s.db.SelectContext(ctx, &messages,
		"SELECT * FROM chat_messages WHERE chat_id = $1 ORDER BY id", id); err != nil {
		return nil, nil, err
	}
	return &chat, messages, nil
}

// DeleteChat removes one transcript and its messages
func (s *Store) DeleteChat(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chat_messages WHERE chat_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM chats WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("chat not found: %d", id)
	}

	return tx.Commit()
}

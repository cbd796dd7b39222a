package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ankush43545-hub/LumoBackendTest/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns the persistent storage backend. It keeps the
// same ordering and cascade semantics as the memory backend, using rowid as
// the insertion-order tie breaker.
func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conversation *model.Conversation) error {
	query := "INSERT INTO conversations (id, mode, title, created_at) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, conversation.ID, conversation.Mode, conversation.Title, conversation.CreatedAt)
	return err
}

func (r *sqliteRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT id, mode, title, created_at FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID)

	var conversation model.Conversation
	var title sql.NullString
	err := row.Scan(&conversation.ID, &conversation.Mode, &title, &conversation.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if title.Valid {
		conversation.Title = &title.String
	}
	return &conversation, nil
}

func (r *sqliteRepository) GetConversations(ctx context.Context) ([]*model.Conversation, error) {
	query := "SELECT id, mode, title, created_at FROM conversations ORDER BY created_at DESC, rowid DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := make([]*model.Conversation, 0)
	for rows.Next() {
		var conversation model.Conversation
		var title sql.NullString
		if err := rows.Scan(&conversation.ID, &conversation.Mode, &title, &conversation.CreatedAt); err != nil {
			return nil, err
		}
		if title.Valid {
			conversation.Title = &title.String
		}
		conversations = append(conversations, &conversation)
	}
	return conversations, rows.Err()
}

// DeleteConversation removes the conversation and all its messages in one
// transaction. Unknown ids delete zero rows, which keeps the operation
// idempotent.
func (r *sqliteRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", conversationID); err != nil {
		return fmt.Errorf("could not delete messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", conversationID); err != nil {
		return fmt.Errorf("could not delete conversation: %w", err)
	}
	return tx.Commit()
}

func (r *sqliteRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	row := tx.QueryRowContext(ctx, "SELECT 1 FROM conversations WHERE id = ?", message.ConversationID)
	if err := row.Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	query := "INSERT INTO messages (id, conversation_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, query, message.ID, message.ConversationID, string(message.Role), message.Content, message.Timestamp); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}
	return tx.Commit()
}

func (r *sqliteRepository) GetMessagesByConversationID(ctx context.Context, conversationID string) ([]model.Message, error) {
	var exists int
	row := r.db.QueryRowContext(ctx, "SELECT 1 FROM conversations WHERE id = ?", conversationID)
	if err := row.Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	query := `
		SELECT id, conversation_id, role, content, timestamp
		FROM messages
		WHERE conversation_id = ?
		ORDER BY timestamp ASC, rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var message model.Message
		var role string
		if err := rows.Scan(&message.ID, &message.ConversationID, &role, &message.Content, &message.Timestamp); err != nil {
			return nil, err
		}
		message.Role = model.Role(role)
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) CreateUser(ctx context.Context, user *model.User) error {
	var extra sql.NullString
	if len(user.Extra) > 0 {
		data, err := json.Marshal(user.Extra)
		if err != nil {
			return fmt.Errorf("could not marshal user extra fields: %w", err)
		}
		extra.String = string(data)
		extra.Valid = true
	}
	query := "INSERT INTO users (id, username, extra) VALUES (?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, extra)
	return err
}

func (r *sqliteRepository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, username, extra FROM users WHERE id = ?", userID)
	return scanUser(row)
}

func (r *sqliteRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, username, extra FROM users WHERE username = ?", username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var extra sql.NullString
	err := row.Scan(&user.ID, &user.Username, &extra)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if extra.Valid {
		if err := json.Unmarshal([]byte(extra.String), &user.Extra); err != nil {
			return nil, fmt.Errorf("could not unmarshal user extra fields: %w", err)
		}
	}
	return &user, nil
}

package repository

import (
	"context"

	"github.com/ankush43545-hub/LumoBackendTest/internal/model"
)

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch storage implementations: the
// default backend is the volatile in-memory store, with an optional
// SQLite-backed one selected by configuration.
type Repository interface {
	CreateConversation(ctx context.Context, conversation *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	GetConversations(ctx context.Context) ([]*model.Conversation, error)
	// DeleteConversation removes the conversation and every message it owns.
	// Deleting an unknown id is a no-op, not an error.
	DeleteConversation(ctx context.Context, conversationID string) error

	// CreateMessage persists a message. It returns ErrNotFound when the
	// referenced conversation does not exist.
	CreateMessage(ctx context.Context, message *model.Message) error
	// GetMessagesByConversationID returns the conversation's messages in
	// ascending timestamp order, insertion order breaking ties. It returns
	// ErrNotFound when the conversation itself does not exist.
	GetMessagesByConversationID(ctx context.Context, conversationID string) ([]model.Message, error)

	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, userID string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

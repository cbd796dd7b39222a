package interfaces

import (
	"context"

	"github.com/ankush43545-hub/LumoBackendTest/internal/model"
	"github.com/ankush43545-hub/LumoBackendTest/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows
// for decoupling (the API layer from the service layer) and easier testing
// via mocking.

// ConversationService defines the contract for conversation CRUD logic.
type ConversationService interface {
	CreateConversation(ctx context.Context, mode string, title *string) (*model.Conversation, error)
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	DeleteConversation(ctx context.Context, conversationID string) error
}

// ChatService defines the contract for processing one chat turn.
type ChatService interface {
	SendMessage(ctx context.Context, req *service.ChatRequest) (*service.ChatResult, error)
}

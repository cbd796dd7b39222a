package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "github.com/ankush43545-hub/LumoBackendTest/internal/errors"
	"github.com/ankush43545-hub/LumoBackendTest/internal/model"
	"github.com/ankush43545-hub/LumoBackendTest/internal/repository"
)

type ConversationService struct {
	repo repository.Repository
}

func NewConversationService(repo repository.Repository) *ConversationService {
	return &ConversationService{repo: repo}
}

// CreateConversation creates a new conversation for the given mode. Mode is
// required; its value is not checked against the persona registry because
// unknown modes resolve to the default persona at chat time.
func (s *ConversationService) CreateConversation(ctx context.Context, mode string, title *string) (*model.Conversation, error) {
	if mode == "" {
		return nil, fmt.Errorf("%w: mode is required", app_errors.ErrValidation)
	}

	conversation := &model.Conversation{
		ID:        uuid.NewString(),
		Mode:      mode,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("could not create conversation: %w", err)
	}
	return conversation, nil
}

// ListConversations returns all conversations, most recently created first.
func (s *ConversationService) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	conversations, err := s.repo.GetConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list conversations: %w", err)
	}
	return conversations, nil
}

// ListMessages returns the conversation's messages oldest first. A missing
// conversation is reported as not found rather than an empty history.
func (s *ConversationService) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	messages, err := s.repo.GetMessagesByConversationID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
		}
		return nil, fmt.Errorf("could not list messages: %w", err)
	}
	return messages, nil
}

// DeleteConversation removes a conversation and all its messages. Deleting
// an unknown id is a no-op.
func (s *ConversationService) DeleteConversation(ctx context.Context, conversationID string) error {
	slog.Debug("Deleting conversation", "conversation_id", conversationID)
	if err := s.repo.DeleteConversation(ctx, conversationID); err != nil {
		return fmt.Errorf("could not delete conversation: %w", err)
	}
	return nil
}

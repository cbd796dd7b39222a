package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "github.com/ankush43545-hub/LumoBackendTest/internal/errors"
	"github.com/ankush43545-hub/LumoBackendTest/internal/llm"
	"github.com/ankush43545-hub/LumoBackendTest/internal/model"
	"github.com/ankush43545-hub/LumoBackendTest/internal/persona"
	"github.com/ankush43545-hub/LumoBackendTest/internal/repository"
)

type ChatService struct {
	repo     repository.Repository
	gateway  llm.Gateway
	personas *persona.Registry
}

// ChatRequest is one chat turn from the client. Mode optionally overrides
// the conversation's stored mode for this turn only.
type ChatRequest struct {
	ConversationID string
	Content        string
	Mode           string
}

// ChatResult carries both sides of a completed exchange.
type ChatResult struct {
	UserMessage *model.Message `json:"userMessage"`
	AIMessage   *model.Message `json:"aiMessage"`
}

func NewChatService(repo repository.Repository, gateway llm.Gateway, personas *persona.Registry) *ChatService {
	return &ChatService{repo: repo, gateway: gateway, personas: personas}
}

// SendMessage processes one chat turn: it assembles the conversation history
// into the provider request, persists the user's message, calls the model
// gateway, and persists the reply.
//
// There is no transaction across these steps. A gateway failure after the
// user message has been written leaves that message in place with no paired
// reply; the next turn simply includes it in the history.
func (s *ChatService) SendMessage(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("%w: content is required", app_errors.ErrValidation)
	}

	conversation, err := s.repo.GetConversation(ctx, req.ConversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, req.ConversationID)
		}
		return nil, fmt.Errorf("could not get conversation: %w", err)
	}

	mode := req.Mode
	if mode == "" {
		mode = conversation.Mode
	}
	instruction := s.personas.Resolve(mode)

	history, err := s.repo.GetMessagesByConversationID(ctx, req.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("could not get message history: %w", err)
	}

	turns := make([]llm.Turn, 0, len(history)+1)
	for _, msg := range history {
		turns = append(turns, llm.Turn{Role: string(msg.Role), Content: msg.Content})
	}
	turns = append(turns, llm.Turn{Role: string(model.RoleUser), Content: req.Content})

	userMessage := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: req.ConversationID,
		Role:           model.RoleUser,
		Content:        req.Content,
		Timestamp:      time.Now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, userMessage); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, req.ConversationID)
		}
		return nil, fmt.Errorf("could not save user message: %w", err)
	}

	resp, err := s.gateway.Generate(ctx, &llm.GenerateRequest{
		System: instruction,
		Turns:  turns,
	})
	if err != nil {
		// The user message stays persisted; it becomes part of the history
		// for the retry.
		slog.Warn("Model gateway call failed", "conversation_id", req.ConversationID, "error", err)
		return nil, err
	}

	aiMessage := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: req.ConversationID,
		Role:           model.RoleAssistant,
		Content:        resp.Content,
		Timestamp:      time.Now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, aiMessage); err != nil {
		return nil, fmt.Errorf("could not save assistant message: %w", err)
	}

	return &ChatResult{UserMessage: userMessage, AIMessage: aiMessage}, nil
}

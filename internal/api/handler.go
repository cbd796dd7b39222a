package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "github.com/ankush43545-hub/LumoBackendTest/internal/errors"
	"github.com/ankush43545-hub/LumoBackendTest/internal/interfaces"
	"github.com/ankush43545-hub/LumoBackendTest/internal/service"
)

type Handler struct {
	conversations interfaces.ConversationService
	chat          interfaces.ChatService
}

func NewHandler(conversations interfaces.ConversationService, chat interfaces.ChatService) *Handler {
	return &Handler{conversations: conversations, chat: chat}
}

// CreateConversationRequest is the DTO for POST /api/conversations.
type CreateConversationRequest struct {
	Mode  string  `json:"mode" validate:"required"`
	Title *string `json:"title"`
}

// ChatMessageRequest is the DTO for POST /api/chat/{conversationId}. Role is
// accepted for wire compatibility and validated against the closed role set,
// but the stored user message always carries the "user" role.
type ChatMessageRequest struct {
	Content string `json:"content" validate:"required"`
	Role    string `json:"role" validate:"omitempty,oneof=user assistant system"`
}

func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	conversation, err := h.conversations.CreateConversation(r.Context(), req.Mode, req.Title)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conversation)
}

func (h *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.conversations.ListConversations(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conversations)
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationId")
	messages, err := h.conversations.ListMessages(r.Context(), conversationID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messages)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationId")

	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid message format", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	result, err := h.chat.SendMessage(r.Context(), &service.ChatRequest{
		ConversationID: conversationID,
		Content:        req.Content,
		Mode:           r.URL.Query().Get("mode"),
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationId")
	if err := h.conversations.DeleteConversation(r.Context(), conversationID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

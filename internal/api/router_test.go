package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ankush43545-hub/LumoBackendTest/internal/api"
	app_errors "github.com/ankush43545-hub/LumoBackendTest/internal/errors"
	"github.com/ankush43545-hub/LumoBackendTest/internal/llm"
	mock_llm "github.com/ankush43545-hub/LumoBackendTest/internal/llm/mocks"
	"github.com/ankush43545-hub/LumoBackendTest/internal/model"
	"github.com/ankush43545-hub/LumoBackendTest/internal/persona"
	"github.com/ankush43545-hub/LumoBackendTest/internal/repository"
	"github.com/ankush43545-hub/LumoBackendTest/internal/service"
)

// These tests exercise the full request path (router → handlers → services →
// memory repository) with only the model gateway mocked, covering the
// end-to-end chat scenario without any network egress.

func setupServer(t *testing.T) (*httptest.Server, *mock_llm.MockGateway) {
	repo := repository.NewMemoryRepository()
	gateway := mock_llm.NewMockGateway(t)
	personas := persona.NewRegistry()

	conversationService := service.NewConversationService(repo)
	chatService := service.NewChatService(repo, gateway, personas)
	handler := api.NewHandler(conversationService, chatService)

	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)
	return server, gateway
}

func postJSON(t *testing.T, url, body string) *http.Response {
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRouter_ChatScenario(t *testing.T) {
	server, gateway := setupServer(t)

	// Create a conversation in chat mode.
	resp := postJSON(t, server.URL+"/api/conversations", `{"mode":"chat"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var conversation model.Conversation
	decodeBody(t, resp, &conversation)
	assert.NotEmpty(t, conversation.ID)
	assert.Equal(t, "chat", conversation.Mode)
	assert.Nil(t, conversation.Title)
	assert.False(t, conversation.CreatedAt.IsZero())

	// Send one chat turn; the gateway replies through the mock.
	gateway.On("Generate", mock.Anything, mock.Anything).
		Return(&llm.GenerateResponse{Content: "omg hiii ✨"}, nil).Once()

	resp = postJSON(t, server.URL+"/api/chat/"+conversation.ID, `{"content":"hi"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result service.ChatResult
	decodeBody(t, resp, &result)
	assert.Equal(t, "hi", result.UserMessage.Content)
	assert.Equal(t, model.RoleUser, result.UserMessage.Role)
	assert.Equal(t, model.RoleAssistant, result.AIMessage.Role)
	assert.NotEmpty(t, result.AIMessage.Content)

	// The conversation history now holds exactly the two messages, user
	// first.
	resp, err := http.Get(server.URL + "/api/messages/" + conversation.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var messages []model.Message
	decodeBody(t, resp, &messages)
	require.Len(t, messages, 2)
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, model.RoleAssistant, messages[1].Role)
}

func TestRouter_ChatValidation(t *testing.T) {
	server, _ := setupServer(t)

	resp := postJSON(t, server.URL+"/api/conversations", `{"mode":"chat"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var conversation model.Conversation
	decodeBody(t, resp, &conversation)

	// Missing content: 400 and no messages persisted.
	resp = postJSON(t, server.URL+"/api/chat/"+conversation.ID, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, err := http.Get(server.URL + "/api/messages/" + conversation.ID)
	require.NoError(t, err)
	defer resp2.Body.Close()
	var messages []model.Message
	decodeBody(t, resp2, &messages)
	assert.Empty(t, messages)
}

func TestRouter_GatewayFailureLeavesOrphanedUserMessage(t *testing.T) {
	server, gateway := setupServer(t)

	resp := postJSON(t, server.URL+"/api/conversations", `{"mode":"chat"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var conversation model.Conversation
	decodeBody(t, resp, &conversation)

	gateway.On("Generate", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: provider unreachable", app_errors.ErrGateway)).Once()

	resp = postJSON(t, server.URL+"/api/chat/"+conversation.ID, `{"content":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// The user message written before the gateway call stays in the store;
	// only the paired reply is missing.
	resp2, err := http.Get(server.URL + "/api/messages/" + conversation.ID)
	require.NoError(t, err)
	defer resp2.Body.Close()
	var messages []model.Message
	decodeBody(t, resp2, &messages)
	require.Len(t, messages, 1)
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, "hi", messages[0].Content)
}

func TestRouter_ConversationLifecycle(t *testing.T) {
	server, _ := setupServer(t)

	// Conversations list most-recent-first.
	for _, mode := range []string{"chat", "study", "vent"} {
		resp := postJSON(t, server.URL+"/api/conversations", fmt.Sprintf(`{"mode":%q}`, mode))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(server.URL + "/api/conversations")
	require.NoError(t, err)
	defer resp.Body.Close()
	var conversations []model.Conversation
	decodeBody(t, resp, &conversations)
	require.Len(t, conversations, 3)
	assert.Equal(t, "vent", conversations[0].Mode)
	assert.Equal(t, "chat", conversations[2].Mode)

	// Delete one and verify it is gone along with its message history.
	deleted := conversations[1]
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/conversation/"+deleted.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusOK, delResp.StatusCode)

	msgResp, err := http.Get(server.URL + "/api/messages/" + deleted.ID)
	require.NoError(t, err)
	defer msgResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, msgResp.StatusCode)

	// Deleting it again is still a success: the operation is idempotent.
	req2, err := http.NewRequest(http.MethodDelete, server.URL+"/api/conversation/"+deleted.ID, nil)
	require.NoError(t, err)
	delResp2, err := http.DefaultClient.Do(req2)
	require.NoError(t, err)
	defer delResp2.Body.Close()
	assert.Equal(t, http.StatusOK, delResp2.StatusCode)

	// Creating a conversation without a mode is rejected.
	badResp := postJSON(t, server.URL+"/api/conversations", `{}`)
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestRouter_Healthz(t *testing.T) {
	server, _ := setupServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/ankush43545-hub/LumoBackendTest/internal/model"
)

// memoryRepository is the default storage backend: plain maps guarded by a
// RWMutex, with no persistence across restarts. It is the single authority
// for all entities, so every operation is read-your-writes consistent.
type memoryRepository struct {
	mu            sync.RWMutex
	conversations map[string]model.Conversation
	messages      map[string]model.Message
	users         map[string]model.User

	// seq is a monotonic insertion counter used to break ordering ties
	// between entities that share a timestamp.
	seq uint64
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		conversations: make(map[string]model.Conversation),
		messages:      make(map[string]model.Message),
		users:         make(map[string]model.User),
	}
}

func (r *memoryRepository) CreateConversation(_ context.Context, conversation *model.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	conversation.Seq = r.seq
	r.conversations[conversation.ID] = *conversation
	return nil
}

func (r *memoryRepository) GetConversation(_ context.Context, conversationID string) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conversation, ok := r.conversations[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &conversation, nil
}

func (r *memoryRepository) GetConversations(_ context.Context) ([]*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conversations := make([]*model.Conversation, 0, len(r.conversations))
	for _, conversation := range r.conversations {
		c := conversation
		conversations = append(conversations, &c)
	}
	// Most recent first; insertion order breaks creation-time ties.
	sort.Slice(conversations, func(i, j int) bool {
		if conversations[i].CreatedAt.Equal(conversations[j].CreatedAt) {
			return conversations[i].Seq > conversations[j].Seq
		}
		return conversations[i].CreatedAt.After(conversations[j].CreatedAt)
	})
	return conversations, nil
}

func (r *memoryRepository) DeleteConversation(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, message := range r.messages {
		if message.ConversationID == conversationID {
			delete(r.messages, id)
		}
	}
	delete(r.conversations, conversationID)
	return nil
}

func (r *memoryRepository) CreateMessage(_ context.Context, message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[message.ConversationID]; !ok {
		return ErrNotFound
	}
	r.seq++
	message.Seq = r.seq
	r.messages[message.ID] = *message
	return nil
}

func (r *memoryRepository) GetMessagesByConversationID(_ context.Context, conversationID string) ([]model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.conversations[conversationID]; !ok {
		return nil, ErrNotFound
	}

	messages := make([]model.Message, 0)
	for _, message := range r.messages {
		if message.ConversationID == conversationID {
			messages = append(messages, message)
		}
	}
	// Oldest first; insertion order breaks timestamp ties.
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].Seq < messages[j].Seq
		}
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

func (r *memoryRepository) CreateUser(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = *user
	return nil
}

func (r *memoryRepository) GetUser(_ context.Context, userID string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryRepository) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

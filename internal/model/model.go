package model

import "time"

// Role tags a message with its author kind. The set is closed: handlers
// validate incoming roles against it before anything is persisted.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Conversation is a timestamped container owning an ordered set of messages.
// Mode selects the persona used for replies; unknown modes fall back to the
// default persona at resolution time rather than being rejected here.
type Conversation struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"createdAt"`

	// Seq is the insertion sequence assigned by the repository. It breaks
	// ordering ties when two conversations share a creation timestamp.
	Seq uint64 `json:"-"`
}

// Message is a single turn in a conversation. Messages are immutable after
// creation and are deleted only when their conversation is deleted.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`

	// Seq breaks ordering ties for messages created within the same
	// timestamp granularity.
	Seq uint64 `json:"-"`
}

// User is part of the data model but is not exposed through any endpoint.
// Extra carries arbitrary additional fields supplied at creation.
type User struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Extra    map[string]any `json:"extra,omitempty"`
}

package convo

import (
	"context"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultPersona is prepended as the system message of every prompt.
const DefaultPersona = "A helpful assistant that provides accurate information."

// NotRegisteredReply is returned for senders without a user record.
const NotRegisteredReply = "🌿🤖 Hello! Welcome to the fauna and gpt3 powered bot! 🌟💫\nThis user is not logged in , type /start or click on it to login"

// Message is one record of a conversation. History is keyed by the
// numeric user id; the username is display metadata only.
type Message struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is an append-only log of per-user messages. History returns
// all records for a user in insertion order.
type Store interface {
	Append(ctx context.Context, msg Message) error
	History(ctx context.Context, userID int64) ([]Message, error)
}

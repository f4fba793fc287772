package store

import (
	"context"
	"database/sql"
	"fmt"

	"chat-relay/internal/convo"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) Append(ctx context.Context, msg convo.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (user_id, username, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.UserID, msg.Username, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message for user %d: %w", msg.UserID, err)
	}
	return nil
}

func (r *MessageRepo) History(ctx context.Context, userID int64) ([]convo.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, username, role, content, created_at FROM messages WHERE user_id = ? ORDER BY id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []convo.Message
	for rows.Next() {
		var m convo.Message
		if err := rows.Scan(&m.UserID, &m.Username, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

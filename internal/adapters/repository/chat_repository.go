package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/quickdesk/core/internal/domain/entities"
)

// MessageRepository implements the message repository interface on
// Postgres. Messages are stored with their send instant; the display
// time/date strings and the IsNew flag are derived on read so the rows
// carry no presentation state.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists a confirmed message. The send instant is stored as-is;
// minute-level display strings never round-trip back into sent_at.
func (r *MessageRepository) Create(ctx context.Context, msg *entities.Message) error {
	sentAt := msg.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}

	query := `
		INSERT INTO messages (id, chat_id, sender, text, reply_to_id, sent_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	`

	if _, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.ChatID,
		msg.Sender,
		msg.Text,
		msg.ReplyToID,
		sentAt,
	); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// ListByChat returns the chat's messages in send order. IsNew is set for
// messages sent after the thread's last-read watermark.
func (r *MessageRepository) ListByChat(ctx context.Context, chatID string) ([]entities.Message, error) {
	query := `
		SELECT m.id, m.chat_id, m.sender, m.text, COALESCE(m.reply_to_id, ''), m.sent_at,
		       m.sent_at > COALESCE(t.last_read_at, 'epoch'::timestamptz) AS is_new
		FROM messages m
		LEFT JOIN threads t ON t.id = m.chat_id
		WHERE m.chat_id = $1
		ORDER BY m.sent_at, m.id
	`

	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []entities.Message
	for rows.Next() {
		var msg entities.Message

		if err := rows.Scan(
			&msg.ID,
			&msg.ChatID,
			&msg.Sender,
			&msg.Text,
			&msg.ReplyToID,
			&msg.SentAt,
			&msg.IsNew,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		msg.Time = msg.SentAt.Format("15:04")
		msg.Date = msg.SentAt.Format("2006-01-02")
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return msgs, nil
}

// MarkChatRead advances the thread's last-read watermark to now
func (r *MessageRepository) MarkChatRead(ctx context.Context, chatID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE threads SET last_read_at = NOW() WHERE id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("failed to mark chat read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check mark read result: %w", err)
	}
	if rows == 0 {
		return entities.ErrChatNotFound
	}

	return nil
}

// ThreadRepository implements the inbox thread repository interface on
// Postgres.
type ThreadRepository struct {
	db *sqlx.DB
}

// NewThreadRepository creates a new thread repository
func NewThreadRepository(db *sqlx.DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

// List returns all inbox summaries, most recently touched first. IsUnread
// is derived from the last-read watermark against the newest message.
func (r *ThreadRepository) List(ctx context.Context) ([]entities.Thread, error) {
	query := `
		SELECT t.id, t.subject, t.preview, t.sender, t.date, t.is_group,
		       EXISTS (
		           SELECT 1 FROM messages m
		           WHERE m.chat_id = t.id
		             AND m.sent_at > COALESCE(t.last_read_at, 'epoch'::timestamptz)
		       ) AS is_unread
		FROM threads t
		ORDER BY t.updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer rows.Close()

	var threads []entities.Thread
	for rows.Next() {
		var t entities.Thread
		if err := rows.Scan(
			&t.ID,
			&t.Subject,
			&t.Preview,
			&t.Sender,
			&t.Date,
			&t.IsGroup,
			&t.IsUnread,
		); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate threads: %w", err)
	}

	return threads, nil
}

// GetByID retrieves a thread by ID
func (r *ThreadRepository) GetByID(ctx context.Context, id string) (*entities.Thread, error) {
	query := `
		SELECT id, subject, preview, sender, date, is_group
		FROM threads WHERE id = $1
	`

	var t entities.Thread
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Subject,
		&t.Preview,
		&t.Sender,
		&t.Date,
		&t.IsGroup,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}

	return &t, nil
}

// TouchPreview updates the thread summary after a new message so the
// inbox list reflects the latest activity.
func (r *ThreadRepository) TouchPreview(ctx context.Context, chatID, preview, sender, date string) error {
	query := `
		UPDATE threads
		SET preview = $2, sender = $3, date = $4, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, chatID, preview, sender, date); err != nil {
		return fmt.Errorf("failed to touch thread preview: %w", err)
	}

	return nil
}

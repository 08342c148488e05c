package repository

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/internal/model"

	"github.com/jackc/pgx/v5"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository defines operations for message data
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id int64) (*model.Message, error)
	ListWithAuthors(ctx context.Context) ([]model.MessageWithAuthor, error)
	Delete(ctx context.Context, id int64) error
}

type messageRepository struct {
	db DBTX
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db DBTX) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a message; id and timestamp are assigned by the database
func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	sql := `INSERT INTO messages (user_id, title, message_text)
            VALUES ($1, $2, $3) RETURNING id, timestamp`
	err := r.db.QueryRow(ctx, sql, m.UserID, m.Title, m.MessageText).Scan(&m.ID, &m.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// FindByID retrieves a message by its ID. A missing message is (nil, nil).
func (r *messageRepository) FindByID(ctx context.Context, id int64) (*model.Message, error) {
	m := &model.Message{}
	sql := `SELECT id, user_id, title, message_text, timestamp FROM messages WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&m.ID, &m.UserID, &m.Title, &m.MessageText, &m.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find message by ID: %w", err)
	}
	return m, nil
}

// ListWithAuthors returns every message joined to the user its user_id points at,
// newest first.
func (r *messageRepository) ListWithAuthors(ctx context.Context) ([]model.MessageWithAuthor, error) {
	sql := `SELECT m.id, m.user_id, m.title, m.message_text, m.timestamp,
                   u.first_name, u.last_name, u.username, u.membership_status
            FROM messages m JOIN users u ON u.id = m.user_id
            ORDER BY m.timestamp DESC, m.id DESC`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []model.MessageWithAuthor
	for rows.Next() {
		var m model.MessageWithAuthor
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Title, &m.MessageText, &m.Timestamp,
			&m.Author.FirstName, &m.Author.LastName, &m.Author.Username, &m.Author.MembershipStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return messages, nil
}

// Delete removes a message by id regardless of who wrote it
func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM messages WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

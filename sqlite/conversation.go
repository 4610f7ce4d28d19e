package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/pagesmith"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagesmith.ConversationService = (*ConversationService)(nil)

// ConversationService implements pagesmith.ConversationService using SQLite.
type ConversationService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewConversationService creates a new ConversationService.
func NewConversationService(db *DB) *ConversationService {
	return &ConversationService{db: db, Now: time.Now}
}

const conversationColumns = "id, user_id, title, created_at, updated_at"

// CreateConversation creates a new conversation.
func (s *ConversationService) CreateConversation(ctx context.Context, conv *pagesmith.Conversation) error {
	if err := conv.Validate(); err != nil {
		return err
	}

	conv.ID = uuid.New().String()
	now := s.Now().UTC()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, conv.ID, conv.UserID, conv.Title, formatTime(conv.CreatedAt), formatTime(conv.UpdatedAt))

	return err
}

// FindConversationByID retrieves a conversation by ID.
func (s *ConversationService) FindConversationByID(ctx context.Context, id string) (*pagesmith.Conversation, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+conversationColumns+" FROM conversations WHERE id = ?", id)

	conv, err := scanConversation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagesmith.Errorf(pagesmith.ENOTFOUND, "conversation not found")
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// FindConversations retrieves conversations matching the filter, most
// recently updated first.
func (s *ConversationService) FindConversations(ctx context.Context, filter pagesmith.ConversationFilter) ([]*pagesmith.Conversation, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + conversationColumns + " FROM conversations WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.UserID != nil {
		query.WriteString(" AND user_id = ?")
		args = append(args, *filter.UserID)
	}

	query.WriteString(" ORDER BY updated_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*pagesmith.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}

	return convs, rows.Err()
}

// UpdateConversation updates an existing conversation and bumps UpdatedAt.
func (s *ConversationService) UpdateConversation(ctx context.Context, id string, upd pagesmith.ConversationUpdate) (*pagesmith.Conversation, error) {
	conv, err := s.FindConversationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		conv.Title = *upd.Title
	}

	if err := conv.Validate(); err != nil {
		return nil, err
	}

	conv.UpdatedAt = s.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE conversations
		SET title = ?, updated_at = ?
		WHERE id = ?
	`, conv.Title, formatTime(conv.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	return conv, nil
}

// DeleteConversation permanently removes a conversation and its messages.
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagesmith.Errorf(pagesmith.ENOTFOUND, "conversation not found")
	}

	return nil
}

func scanConversation(row rowScanner) (*pagesmith.Conversation, error) {
	var conv pagesmith.Conversation
	var createdAt, updatedAt string

	if err := row.Scan(&conv.ID, &conv.UserID, &conv.Title, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if conv.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if conv.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &conv, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagesmith"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagesmith.MessageService = (*MessageService)(nil)

// MessageService implements pagesmith.MessageService using SQLite.
type MessageService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *DB) *MessageService {
	return &MessageService{db: db, Now: time.Now}
}

const messageColumns = "id, conversation_id, role, content, html_code, html_hash, position, created_at"

// HashHTML computes the xxHash of a document as a hex string. Identical
// documents share a hash, so repeated generations can be spotted.
func HashHTML(html string) string {
	if html == "" {
		return ""
	}
	b := binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(html))
	return hex.EncodeToString(b)
}

// CreateMessage appends a message to its conversation and bumps the
// conversation's UpdatedAt.
func (s *MessageService) CreateMessage(ctx context.Context, msg *pagesmith.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM conversations WHERE id = ?", msg.ConversationID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return pagesmith.Errorf(pagesmith.ENOTFOUND, "conversation not found")
	}
	if err != nil {
		return err
	}

	id := uuid.New().String()
	createdAt := s.Now().UTC()
	hash := HashHTML(msg.HTMLCode)

	// Position is assigned in the same statement as the insert.
	var position int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, html_code, html_hash, position, created_at)
		SELECT ?, ?, ?, ?, ?, ?, COALESCE(MAX(position) + 1, 0), ?
		FROM messages WHERE conversation_id = ?
		RETURNING position
	`, id, msg.ConversationID, string(msg.Role), msg.Content, msg.HTMLCode, hash,
		formatTime(createdAt), msg.ConversationID).Scan(&position)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "UPDATE conversations SET updated_at = ? WHERE id = ?",
		formatTime(createdAt), msg.ConversationID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	msg.ID, msg.CreatedAt, msg.HTMLHash, msg.Position = id, createdAt, hash, position
	return nil
}

// FindMessageByID retrieves a message by ID.
func (s *MessageService) FindMessageByID(ctx context.Context, id string) (*pagesmith.Message, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM messages WHERE id = ?", id)

	msg, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagesmith.Errorf(pagesmith.ENOTFOUND, "message not found")
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// FindMessages retrieves messages matching the filter in conversation order.
func (s *MessageService) FindMessages(ctx context.Context, filter pagesmith.MessageFilter) ([]*pagesmith.Message, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + messageColumns + " FROM messages WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ConversationID != nil {
		query.WriteString(" AND conversation_id = ?")
		args = append(args, *filter.ConversationID)
	}
	if filter.Role != nil {
		query.WriteString(" AND role = ?")
		args = append(args, string(*filter.Role))
	}
	if filter.WithPreview {
		query.WriteString(" AND html_code <> ''")
	}

	query.WriteString(" ORDER BY conversation_id, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*pagesmith.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	return msgs, rows.Err()
}

// DeleteMessagesByConversation removes all messages of a conversation.
func (s *MessageService) DeleteMessagesByConversation(ctx context.Context, conversationID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", conversationID)
	return err
}

func scanMessage(row rowScanner) (*pagesmith.Message, error) {
	var msg pagesmith.Message
	var role, createdAt string

	if err := row.Scan(&msg.ID, &msg.ConversationID, &role, &msg.Content, &msg.HTMLCode,
		&msg.HTMLHash, &msg.Position, &createdAt); err != nil {
		return nil, err
	}
	msg.Role = pagesmith.Role(role)

	var err error
	if msg.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &msg, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
	ListMessages(ctx context.Context, filter models.MessageFilter, limit, offset int) ([]*models.Message, error)
	CountMessages(ctx context.Context, filter models.MessageFilter) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, read bool) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error
}

type messageRepository struct {
	DB *sql.DB
}

func NewMessageRepo(db *sql.DB) MessageRepository {
	return &messageRepository{DB: db}
}

const messageColumns = `id, kind, name, email, phone, subject, body, product_id, images, read, created_at`

func (r *messageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	images := message.Images
	if images == nil {
		images = []string{}
	}

	query := `
		INSERT INTO messages (kind, name, email, phone, subject, body, product_id, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, read, created_at`

	return r.DB.QueryRowContext(dbCtx, query, message.Kind, message.Name, message.Email, message.Phone, message.Subject, message.Body, message.ProductID, pq.Array(images)).
		Scan(&message.ID, &message.Read, &message.CreatedAt)
}

func (r *messageRepository) GetMessageByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	message, err := scanMessage(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying message %s: %w", id, err)
	}

	return message, nil
}

// ListMessages returns the inbox newest first.
func (r *messageRepository) ListMessages(ctx context.Context, filter models.MessageFilter, limit, offset int) ([]*models.Message, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := messageWhere(filter)
	n := len(args) + 1

	query := `SELECT ` + messageColumns + ` FROM messages` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n, n+1)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)

	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}

		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) CountMessages(ctx context.Context, filter models.MessageFilter) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := messageWhere(filter)

	var total int64
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM messages`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}

	return total, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `UPDATE messages SET read = $1 WHERE id = $2`, read, id)
	if err != nil {
		return fmt.Errorf("updating message %s: %w", id, err)
	}

	return affectedOrNotFound(res)
}

func (r *messageRepository) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting message %s: %w", id, err)
	}

	return affectedOrNotFound(res)
}

func messageWhere(filter models.MessageFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}

	if filter.UnreadOnly {
		conditions = append(conditions, "read = FALSE")
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanMessage(s rowScanner) (*models.Message, error) {
	var (
		m         models.Message
		productID uuid.NullUUID
	)

	err := s.Scan(&m.ID, &m.Kind, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Body, &productID, pq.Array(&m.Images), &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	if productID.Valid {
		id := productID.UUID
		m.ProductID = &id
	}

	return &m, nil
}

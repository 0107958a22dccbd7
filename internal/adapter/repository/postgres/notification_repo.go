package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneyman/moneyman/internal/domain"
)

// NotificationRepository implements usecase.NotificationRepository.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create inserts a feed entry.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	meta, err := json.Marshal(n.Meta)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, icon, meta, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.Icon, meta, n.IsRead, timeToPgTimestamptz(n.CreatedAt))

	return err
}

// ListByUser returns the newest feed entries.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, title, message, icon, meta, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var (
			n         domain.Notification
			meta      []byte
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Icon, &meta, &n.IsRead, &createdAt); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &n.Meta); err != nil {
				return nil, err
			}
		}
		n.CreatedAt = createdAt.Time
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// Clear empties a user's feed.
func (r *NotificationRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)

	return err
}

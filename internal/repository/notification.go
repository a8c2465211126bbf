package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodmarket-delivery/internal/domain"
)

// NotificationRepo stores user-facing notification records.
type NotificationRepo struct{ db *pgxpool.Pool }

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create stores a new notification and fills in its ID.
func (r *NotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	meta, err := json.Marshal(n.Metadata)
	if err != nil {
		return fmt.Errorf("marshal notification metadata: %w", err)
	}

	err = r.db.QueryRow(ctx, `
        INSERT INTO notifications (id, user_id, user_model, type, title, message, metadata, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,now())
        RETURNING created_at
    `, n.ID, n.UserID, n.UserModel, n.Type, n.Title, n.Message, meta).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification for user %q: %w", n.UserID, err)
	}
	return nil
}

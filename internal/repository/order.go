package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"foodmarket-delivery/internal/domain"
)

// OrderRepo reads the order aggregate owned by the order service; writes are
// limited to the denormalized delivery-facing fields.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// Get - returns an order by its ID, or nil if absent.
func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	var (
		o      domain.Order
		status *string
		typ    *string
	)
	err := r.db.QueryRow(ctx, `
        SELECT id, user_id, shop_id,
               delivery_status, delivery_partner, delivery_type,
               estimated_delivery_time, actual_delivery_time
        FROM orders WHERE id = $1
    `, id).Scan(
		&o.ID, &o.UserID, &o.ShopID,
		&status, &o.DeliveryPartner, &typ,
		&o.EstimatedDeliveryTime, &o.ActualDeliveryTime,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	if status != nil {
		o.DeliveryStatus = domain.DeliveryStatus(*status)
	}
	if typ != nil {
		o.DeliveryType = domain.DeliveryMode(*typ)
	}
	return &o, nil
}

// PatchDelivery applies the delivery-facing denormalization onto the order
// row; nil fields are left untouched. Returns true if a row was affected.
func (r *OrderRepo) PatchDelivery(ctx context.Context, p domain.OrderDeliveryPatch) (bool, error) {
	var status, typ *string
	if p.DeliveryStatus != nil {
		s := string(*p.DeliveryStatus)
		status = &s
	}
	if p.DeliveryType != nil {
		s := string(*p.DeliveryType)
		typ = &s
	}

	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET
            delivery_status         = COALESCE($2, delivery_status),
            delivery_partner        = COALESCE($3, delivery_partner),
            delivery_type           = COALESCE($4, delivery_type),
            estimated_delivery_time = COALESCE($5, estimated_delivery_time),
            actual_delivery_time    = COALESCE($6, actual_delivery_time),
            updated_at              = now()
        WHERE id = $1
    `, p.OrderID, status, p.DeliveryPartner, typ, p.EstimatedDeliveryTime, p.ActualDeliveryTime)
	if err != nil {
		return false, fmt.Errorf("patch order %q: %w", p.OrderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

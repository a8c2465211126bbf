package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodmarket-delivery/internal/apperr"
	"foodmarket-delivery/internal/domain"
)

// DeliveryRepo persists delivery records.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

const deliveryColumns = `
	id, order_id, shop_id, mode, status,
	current_location, route, status_history,
	eta_minutes, rider, notes, qr_code, qr_expiry,
	revision, created_at, updated_at`

// GetByOrderShop returns the delivery for a (order, shop) pair, or nil if absent.
func (r *DeliveryRepo) GetByOrderShop(ctx context.Context, orderID, shopID string) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx, `
        SELECT`+deliveryColumns+`
        FROM deliveries
        WHERE order_id = $1 AND shop_id = $2
    `, orderID, shopID)

	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery order=%q shop=%q: %w", orderID, shopID, err)
	}
	return d, nil
}

// GetByID returns a delivery by its primary key, or nil if absent.
func (r *DeliveryRepo) GetByID(ctx context.Context, id int64) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx, `
        SELECT`+deliveryColumns+`
        FROM deliveries
        WHERE id = $1
    `, id)

	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %d: %w", id, err)
	}
	return d, nil
}

// FindByQR locates a drone delivery by order and token, or nil if absent.
func (r *DeliveryRepo) FindByQR(ctx context.Context, orderID, qrCode string) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx, `
        SELECT`+deliveryColumns+`
        FROM deliveries
        WHERE order_id = $1 AND qr_code = $2 AND mode = $3
    `, orderID, qrCode, string(domain.ModeDrone))

	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find delivery by qr order=%q: %w", orderID, err)
	}
	return d, nil
}

// ListByOrder returns all deliveries for an order, optionally narrowed to one shop.
func (r *DeliveryRepo) ListByOrder(ctx context.Context, orderID string, shopID *string) ([]domain.Delivery, error) {
	q := `SELECT` + deliveryColumns + ` FROM deliveries WHERE order_id = $1`
	args := []any{orderID}
	if shopID != nil {
		q += ` AND shop_id = $2`
		args = append(args, *shopID)
	}
	q += ` ORDER BY id`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries order=%q: %w", orderID, err)
	}
	defer rows.Close()

	var out []domain.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// List returns deliveries matching the filter, newest first, with the total
// count for pagination.
func (r *DeliveryRepo) List(ctx context.Context, f domain.DeliveryFilter, limit, offset int) ([]domain.Delivery, int64, error) {
	where := ` WHERE 1=1`
	args := make([]any, 0, 4)
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Mode != nil {
		args = append(args, string(*f.Mode))
		where += fmt.Sprintf(" AND mode = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM deliveries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deliveries: %w", err)
	}

	args = append(args, limit)
	q := `SELECT` + deliveryColumns + ` FROM deliveries` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d`, len(args))
	args = append(args, offset)
	q += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Delivery, 0, limit)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *d)
	}
	return out, total, rows.Err()
}

// Insert stores a new delivery record and fills in ID and Revision.
func (r *DeliveryRepo) Insert(ctx context.Context, d *domain.Delivery) error {
	loc, route, history, rider, err := marshalDeliveryJSON(d)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
        INSERT INTO deliveries (
            order_id, shop_id, mode, status,
            current_location, route, status_history,
            eta_minutes, rider, notes, qr_code, qr_expiry,
            revision, created_at, updated_at
        )
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,1,now(),now())
        RETURNING id, revision, created_at, updated_at
    `,
		d.OrderID, d.ShopID, string(d.Mode), string(d.Status),
		loc, route, history,
		d.EtaMinutes, rider, d.Notes, d.QRCode, d.QRExpiry,
	).Scan(&d.ID, &d.Revision, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// Update saves a mutated delivery, compare-and-swapping on the revision it
// was read at. Returns false when the revision moved underneath the caller.
func (r *DeliveryRepo) Update(ctx context.Context, d *domain.Delivery) (bool, error) {
	loc, route, history, rider, err := marshalDeliveryJSON(d)
	if err != nil {
		return false, err
	}

	row := r.db.QueryRow(ctx, `
        UPDATE deliveries
        SET status           = $3,
            current_location = $4,
            route            = $5,
            status_history   = $6,
            eta_minutes      = $7,
            rider            = $8,
            notes            = $9,
            qr_code          = $10,
            qr_expiry        = $11,
            revision         = revision + 1,
            updated_at       = now()
        WHERE id = $1 AND revision = $2
        RETURNING revision, updated_at
    `,
		d.ID, d.Revision,
		string(d.Status), loc, route, history,
		d.EtaMinutes, rider, d.Notes, d.QRCode, d.QRExpiry,
	)
	if err := row.Scan(&d.Revision, &d.UpdatedAt); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("update delivery %d: %w", d.ID, err)
	}
	return true, nil
}

func marshalDeliveryJSON(d *domain.Delivery) (loc, route, history, rider []byte, err error) {
	if d.CurrentLocation != nil {
		if loc, err = json.Marshal(d.CurrentLocation); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal current_location: %w", err)
		}
	}
	if route, err = json.Marshal(emptyIfNil(d.Route)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal route: %w", err)
	}
	if history, err = json.Marshal(emptyIfNil(d.StatusHistory)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal status_history: %w", err)
	}
	if d.Rider != nil {
		if rider, err = json.Marshal(d.Rider); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal rider: %w", err)
		}
	}
	return loc, route, history, rider, nil
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanDelivery(row pgx.Row) (*domain.Delivery, error) {
	var (
		d      domain.Delivery
		mode   string
		status string

		loc, route, history, rider []byte
	)
	err := row.Scan(
		&d.ID, &d.OrderID, &d.ShopID, &mode, &status,
		&loc, &route, &history,
		&d.EtaMinutes, &rider, &d.Notes, &d.QRCode, &d.QRExpiry,
		&d.Revision, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Mode = domain.DeliveryMode(mode)
	d.Status = domain.DeliveryStatus(status)

	if len(loc) > 0 {
		var p domain.GeoPoint
		if err := json.Unmarshal(loc, &p); err != nil {
			return nil, fmt.Errorf("unmarshal current_location: %w", err)
		}
		d.CurrentLocation = &p
	}
	if len(route) > 0 {
		if err := json.Unmarshal(route, &d.Route); err != nil {
			return nil, fmt.Errorf("unmarshal route: %w", err)
		}
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &d.StatusHistory); err != nil {
			return nil, fmt.Errorf("unmarshal status_history: %w", err)
		}
	}
	if len(rider) > 0 {
		var rd domain.Rider
		if err := json.Unmarshal(rider, &rd); err != nil {
			return nil, fmt.Errorf("unmarshal rider: %w", err)
		}
		d.Rider = &rd
	}
	return &d, nil
}

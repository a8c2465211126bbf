package delivery

import (
	"context"
	"errors"
	"strings"

	"foodmarket-delivery/internal/apperr"
	"foodmarket-delivery/internal/broadcast"
	"foodmarket-delivery/internal/domain"
	"foodmarket-delivery/internal/logx"
	"foodmarket-delivery/internal/qr"
)

// TestQRResult is the outcome of a force-issued QR credential.
type TestQRResult struct {
	Delivery *domain.Delivery
	QRCode   string
}

// IssueTestQR force-issues a fresh QR credential against the order's drone
// delivery, creating the record at status nearby if absent. Admin-only
// simulation path; unlike Track, the order patch here is a primary write.
func (s *Service) IssueTestQR(ctx context.Context, orderID string) (*TestQRResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ord, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, apperr.ErrNotFound
	}

	now := s.now()
	token, err := qr.Generate(orderID, ord.UserID, now)
	if err != nil {
		return nil, err
	}
	expiry := now.Add(s.qrTTL)

	var d *domain.Delivery
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		d, err = s.deliveries.GetByOrderShop(ctx, orderID, ord.ShopID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			d = &domain.Delivery{
				OrderID:  orderID,
				ShopID:   ord.ShopID,
				Mode:     domain.ModeDrone,
				Status:   domain.StatusNearby,
				QRCode:   token,
				QRExpiry: &expiry,
			}
			err = s.deliveries.Insert(ctx, d)
			if errors.Is(err, apperr.ErrConflict) {
				continue
			}
			if err != nil {
				return nil, err
			}
			break
		}

		// Re-issue over the existing record; the status jump is direct,
		// without a history entry, matching the simulation semantics.
		d.QRCode = token
		d.QRExpiry = &expiry
		d.Status = domain.StatusNearby

		ok, err := s.deliveries.Update(ctx, d)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		d = nil
	}
	if d == nil {
		return nil, apperr.ErrConflict
	}

	status := domain.StatusNearby
	mode := domain.ModeDrone
	if _, err := s.orders.PatchDelivery(ctx, domain.OrderDeliveryPatch{
		OrderID:        orderID,
		DeliveryStatus: &status,
		DeliveryType:   &mode,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("test qr issued",
		logx.String("event", "test_qr_issued"),
		logx.String("order_id", orderID),
		logx.String("shop_id", ord.ShopID),
	)
	return &TestQRResult{Delivery: d, QRCode: token}, nil
}

// SimulateRegular drives a regular-mode delivery through a status/location
// update without requiring an existing record. Admin-only simulation path:
// the broadcast goes to the order channel only and no notification is sent.
func (s *Service) SimulateRegular(ctx context.Context, upd domain.PartialDeliveryUpdate) (*domain.Delivery, SideEffects, error) {
	upd.OrderID = strings.TrimSpace(upd.OrderID)
	if upd.OrderID == "" {
		return nil, SideEffects{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ord, err := s.orders.Get(ctx, upd.OrderID)
	if err != nil {
		return nil, SideEffects{}, err
	}
	if ord == nil {
		return nil, SideEffects{}, apperr.ErrNotFound
	}

	upd.ShopID = ord.ShopID
	mode := domain.ModeRegular
	upd.Mode = &mode
	if upd.Notes == nil && upd.Status != nil {
		note := "test update"
		upd.Notes = &note
	}

	d, err := s.saveTracked(ctx, upd)
	if err != nil {
		return nil, SideEffects{}, err
	}

	var effects SideEffects
	effects.OrderPatch = s.patchOrder(ctx, domain.OrderDeliveryPatch{
		OrderID:        upd.OrderID,
		DeliveryStatus: upd.Status,
	})
	effects.Broadcast = s.broadcastUpdate(ctx, d, broadcast.OrderChannel(d.OrderID))
	return d, effects, nil
}

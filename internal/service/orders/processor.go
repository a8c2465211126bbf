package orders

import (
	"context"
	"errors"

	"foodmarket-delivery/internal/apperr"
	"foodmarket-delivery/internal/domain"
)

// Processor reacts to order lifecycle events: a new order gets its tracking
// record pre-created, a canceled or deleted order gets its delivery closed.
type Processor struct {
	delivery DeliveryPort
	factory  *actionFactory
}

// NewProcessor creates a new orders.Processor
func NewProcessor(deliverySvc DeliveryPort) *Processor {
	p := &Processor{delivery: deliverySvc}
	p.factory = newActionFactory(p.onCreated, p.onCanceled)
	return p
}

// Handle processes a single orders.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	upd := domain.PartialDeliveryUpdate{
		OrderID: e.OrderID,
		ShopID:  e.ShopID,
	}
	if mode := domain.DeliveryMode(e.DeliveryType); mode.Valid() {
		upd.Mode = &mode
	}
	_, _, err := p.delivery.Track(ctx, upd)
	if errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrConflict) {
		return nil
	}
	return err
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	status := domain.StatusCancelled
	_, _, err := p.delivery.Track(ctx, domain.PartialDeliveryUpdate{
		OrderID: e.OrderID,
		ShopID:  e.ShopID,
		Status:  &status,
	})
	if errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}

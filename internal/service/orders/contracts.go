//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"foodmarket-delivery/internal/domain"
	"foodmarket-delivery/internal/service/delivery"
)

// DeliveryPort abstracts the subset of delivery service operations
// needed by orders Processor when handling order events
type DeliveryPort interface {
	Track(ctx context.Context, upd domain.PartialDeliveryUpdate) (*domain.Delivery, delivery.SideEffects, error)
}

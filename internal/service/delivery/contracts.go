//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery

package delivery

import (
	"context"

	"foodmarket-delivery/internal/domain"
)

type deliveryRepository interface {
	GetByOrderShop(ctx context.Context, orderID, shopID string) (*domain.Delivery, error)
	GetByID(ctx context.Context, id int64) (*domain.Delivery, error)
	FindByQR(ctx context.Context, orderID, qrCode string) (*domain.Delivery, error)
	ListByOrder(ctx context.Context, orderID string, shopID *string) ([]domain.Delivery, error)
	List(ctx context.Context, f domain.DeliveryFilter, limit, offset int) ([]domain.Delivery, int64, error)
	Insert(ctx context.Context, d *domain.Delivery) error
	Update(ctx context.Context, d *domain.Delivery) (bool, error)
}

type orderRepository interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	PatchDelivery(ctx context.Context, p domain.OrderDeliveryPatch) (bool, error)
}

type notificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
}

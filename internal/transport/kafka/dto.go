package kafka

import (
	"strings"
	"time"

	"foodmarket-delivery/internal/service/orders"
)

// EventDTO is a data transfer object for orders.Event
type EventDTO struct {
	OrderID      string    `json:"order_id"`
	ShopID       string    `json:"shop_id"`
	Status       string    `json:"status"`
	DeliveryType string    `json:"delivery_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:      strings.TrimSpace(dto.OrderID),
		ShopID:       strings.TrimSpace(dto.ShopID),
		Status:       strings.TrimSpace(dto.Status),
		DeliveryType: strings.ToLower(strings.TrimSpace(dto.DeliveryType)),
		CreatedAt:    dto.CreatedAt,
	}
}

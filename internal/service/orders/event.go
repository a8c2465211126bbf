package orders

import (
	"time"
)

// Event is a single order event consumed from the orders topic.
type Event struct {
	OrderID      string    `json:"order_id"`
	ShopID       string    `json:"shop_id"`
	Status       string    `json:"status"`
	DeliveryType string    `json:"delivery_type"`
	CreatedAt    time.Time `json:"created_at"`
}

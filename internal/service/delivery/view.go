package delivery

import (
	"time"

	"foodmarket-delivery/internal/domain"
)

// updateEvent is the broadcast wire shape of a delivery change.
type updateEvent struct {
	Delivery deliveryView `json:"delivery"`
	OrderID  string       `json:"orderId"`
}

// deliveryView is the serialized delivery embedded in broadcast events.
// HTTP responses use the handler DTOs instead; this view stays small on
// purpose since subscribers poll the read endpoint for the full record.
type deliveryView struct {
	ID              int64                `json:"id"`
	OrderID         string               `json:"orderId"`
	ShopID          string               `json:"shopId"`
	Mode            string               `json:"deliveryMode"`
	Status          string               `json:"status"`
	CurrentLocation *domain.GeoPoint     `json:"currentLocation,omitempty"`
	EtaMinutes      *int                 `json:"etaMinutes,omitempty"`
	Rider           *domain.Rider        `json:"rider,omitempty"`
	Notes           string               `json:"deliveryNotes,omitempty"`
	StatusHistory   []domain.StatusEvent `json:"statusHistory"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

func toView(d *domain.Delivery) deliveryView {
	return deliveryView{
		ID:              d.ID,
		OrderID:         d.OrderID,
		ShopID:          d.ShopID,
		Mode:            string(d.Mode),
		Status:          string(d.Status),
		CurrentLocation: d.CurrentLocation,
		EtaMinutes:      d.EtaMinutes,
		Rider:           d.Rider,
		Notes:           d.Notes,
		StatusHistory:   d.StatusHistory,
		UpdatedAt:       d.UpdatedAt,
	}
}

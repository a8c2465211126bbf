package domain

import "time"

type (
	// DeliveryStatus represents the current stage of a delivery.
	DeliveryStatus string
	// DeliveryMode distinguishes courier deliveries from drone drops.
	DeliveryMode string
)

// GeoPoint is a single coordinate fix.
type GeoPoint struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// Rider carries free-form courier metadata attached by the shop.
type Rider struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Vehicle string `json:"vehicle,omitempty"`
}

// StatusEvent is one entry of the append-only status history. Location is
// the point the delivery was at when the status changed, i.e. the location
// known *before* the update that carried the new status.
type StatusEvent struct {
	Status    DeliveryStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Location  *GeoPoint      `json:"location,omitempty"`
	Notes     string         `json:"notes,omitempty"`
}

// Delivery is one delivery assignment for a (order, shop) pair. A pair maps
// to at most one record; records are created lazily and never deleted.
type Delivery struct {
	ID              int64
	OrderID         string
	ShopID          string
	Mode            DeliveryMode
	Status          DeliveryStatus
	CurrentLocation *GeoPoint
	Route           []GeoPoint
	StatusHistory   []StatusEvent
	EtaMinutes      *int
	Rider           *Rider
	Notes           string
	QRCode          string
	QRExpiry        *time.Time
	Revision        int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApplyStatus records a status change, capturing the previous current
// location into the history entry.
func (d *Delivery) ApplyStatus(status DeliveryStatus, notes string, now time.Time) {
	d.Status = status
	d.StatusHistory = append(d.StatusHistory, StatusEvent{
		Status:    status,
		Timestamp: now,
		Location:  d.CurrentLocation,
		Notes:     notes,
	})
}

// ApplyLocation overwrites the last-known coordinate and appends a
// breadcrumb to the route.
func (d *Delivery) ApplyLocation(lat, lng float64, now time.Time) {
	p := GeoPoint{Lat: lat, Lng: lng, Timestamp: now}
	d.CurrentLocation = &p
	d.Route = append(d.Route, p)
}

// PartialDeliveryUpdate carries optional fields for a tracking upsert.
// A nil field means "do not change" that attribute.
type PartialDeliveryUpdate struct {
	OrderID    string
	ShopID     string
	Status     *DeliveryStatus
	Location   *Location
	EtaMinutes *int
	Rider      *Rider
	Notes      *string
	Mode       *DeliveryMode
}

// Location is a bare coordinate as received from the client.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DeliveryFilter narrows admin listings.
type DeliveryFilter struct {
	Status *DeliveryStatus
	Mode   *DeliveryMode
}

// Page describes offset pagination of an admin listing.
type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

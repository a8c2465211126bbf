package handlers

import (
	"time"
)

type locationDTO struct {
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type riderDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Vehicle string `json:"vehicle,omitempty"`
}

type statusEventDTO struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Location  *locationDTO `json:"location,omitempty"`
	Notes     string       `json:"notes,omitempty"`
}

type deliveryDTO struct {
	ID              int64            `json:"id"`
	OrderID         string           `json:"orderId"`
	ShopID          string           `json:"shopId"`
	DeliveryMode    string           `json:"deliveryMode"`
	Status          string           `json:"status"`
	CurrentLocation *locationDTO     `json:"currentLocation,omitempty"`
	Route           []locationDTO    `json:"route"`
	StatusHistory   []statusEventDTO `json:"statusHistory"`
	EtaMinutes      *int             `json:"etaMinutes,omitempty"`
	Rider           *riderDTO        `json:"rider,omitempty"`
	DeliveryNotes   string           `json:"deliveryNotes,omitempty"`
	QRCode          string           `json:"qrCode,omitempty"`
	QRExpiry        *time.Time       `json:"qrExpiry,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type trackDeliveryRequest struct {
	ShopID        string       `json:"shopId"`
	Status        *string      `json:"status,omitempty"`
	Location      *locationDTO `json:"location,omitempty"`
	EtaMinutes    *int         `json:"etaMinutes,omitempty"`
	Rider         *riderDTO    `json:"rider,omitempty"`
	DeliveryNotes *string      `json:"deliveryNotes,omitempty"`
	DeliveryMode  *string      `json:"deliveryMode,omitempty"`
}

type trackDeliveryResponse struct {
	Success  bool        `json:"success"`
	Delivery deliveryDTO `json:"delivery"`
	Degraded bool        `json:"degraded,omitempty"`
}

type listDeliveriesResponse struct {
	Success    bool          `json:"success"`
	Deliveries []deliveryDTO `json:"deliveries"`
}

type paginationDTO struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type adminListResponse struct {
	Success    bool          `json:"success"`
	Deliveries []deliveryDTO `json:"deliveries"`
	Pagination paginationDTO `json:"pagination"`
}

type completeDeliveryRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type verifyQRRequest struct {
	QRCode  string `json:"qrCode"`
	OrderID string `json:"orderId"`
}

type verifyQRResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Delivery deliveryDTO `json:"delivery"`
}

type testQRResponse struct {
	Success  bool        `json:"success"`
	QRCode   string      `json:"qrCode"`
	Delivery deliveryDTO `json:"delivery"`
}

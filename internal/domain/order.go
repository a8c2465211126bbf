package domain

import "time"

// Order is the slice of the order aggregate this service touches: ownership
// for the read path and the denormalized delivery-facing fields patched as
// a side effect of tracking updates. The order lifecycle itself belongs to
// the order service.
type Order struct {
	ID     string
	UserID string
	ShopID string

	DeliveryStatus        DeliveryStatus
	DeliveryPartner       string
	DeliveryType          DeliveryMode
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
}

// OrderDeliveryPatch carries the denormalized fields written back onto the
// order record. Nil means "leave untouched".
type OrderDeliveryPatch struct {
	OrderID               string
	DeliveryStatus        *DeliveryStatus
	DeliveryPartner       *string
	DeliveryType          *DeliveryMode
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
}

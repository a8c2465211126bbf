package domain

// List of known delivery statuses. The status column is free-form on
// purpose: upstream systems may push intermediate values we do not know
// about yet, so Known is advisory and never used to reject an update.
const (
	StatusUnassigned DeliveryStatus = "unassigned"
	StatusAssigned   DeliveryStatus = "assigned"
	StatusPickedUp   DeliveryStatus = "picked_up"
	StatusEnRoute    DeliveryStatus = "en_route"
	StatusNearby     DeliveryStatus = "nearby"
	StatusDelivered  DeliveryStatus = "delivered"
	StatusCancelled  DeliveryStatus = "cancelled"
)

// List of possible delivery modes
const (
	ModeRegular DeliveryMode = "regular"
	ModeDrone   DeliveryMode = "drone"
)

var knownStatuses = [...]DeliveryStatus{
	StatusUnassigned, StatusAssigned, StatusPickedUp,
	StatusEnRoute, StatusNearby, StatusDelivered, StatusCancelled,
}

var allowedModes = [...]DeliveryMode{ModeRegular, ModeDrone}

// Known reports whether the status is one of the documented values.
func (s DeliveryStatus) Known() bool {
	for _, v := range knownStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the status ends the delivery lifecycle.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusDelivered
}

// Valid checks if the DeliveryMode is valid.
func (m DeliveryMode) Valid() bool {
	for _, v := range allowedModes {
		if m == v {
			return true
		}
	}
	return false
}

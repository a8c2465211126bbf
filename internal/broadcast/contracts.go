// Package broadcast carries delivery updates to live subscribers. Emits are
// fire-and-forget: a subscriber that is offline at publish time never sees
// the event and catches up via the tracking read endpoint.
package broadcast

import "context"

// Broadcaster publishes an event to a named channel. Implementations must
// be safe for concurrent use.
type Broadcaster interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

// EventDeliveryUpdate is emitted on every persisted tracking change.
const EventDeliveryUpdate = "delivery:update"

// OrderChannel is the per-order subscriber channel.
func OrderChannel(orderID string) string { return "order:" + orderID }

// ShopChannel is the per-shop subscriber channel.
func ShopChannel(shopID string) string { return "shop:" + shopID }

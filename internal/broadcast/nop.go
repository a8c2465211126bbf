package broadcast

import "context"

// NopBroadcaster drops every event. Wired when no broker is configured.
type NopBroadcaster struct{}

// Publish does nothing.
func (NopBroadcaster) Publish(context.Context, string, string, any) error { return nil }

// NewNopBroadcaster returns a NopBroadcaster.
func NewNopBroadcaster() Broadcaster { return NopBroadcaster{} }

var _ Broadcaster = NopBroadcaster{}

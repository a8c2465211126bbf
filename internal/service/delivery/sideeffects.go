package delivery

// Outcome records one best-effort side effect. Skipped effects stay
// unattempted; a failed attempt is logged and dropped, never retried and
// never surfaced to the caller.
type Outcome struct {
	Attempted bool
	OK        bool
}

func (o Outcome) failed() bool { return o.Attempted && !o.OK }

// SideEffects aggregates the outcomes of the non-primary writes fanned out
// after a tracking change persists. It exists to make the degraded delivery
// guarantee visible: callers and tests can see exactly which of
// {order patch, broadcast, notification} went through.
type SideEffects struct {
	OrderPatch   Outcome
	Broadcast    Outcome
	Notification Outcome
}

// Degraded reports whether any attempted side effect failed.
func (s SideEffects) Degraded() bool {
	return s.OrderPatch.failed() || s.Broadcast.failed() || s.Notification.failed()
}

func attempted(ok bool) Outcome { return Outcome{Attempted: true, OK: ok} }

package delivery

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"foodmarket-delivery/internal/apperr"
	"foodmarket-delivery/internal/broadcast"
	"foodmarket-delivery/internal/domain"
	"foodmarket-delivery/internal/logx"
	"foodmarket-delivery/internal/qr"
)

// maxSaveAttempts bounds the optimistic-concurrency retry loop. A save only
// loses its revision race to another tracker of the same (order, shop) pair,
// so contention is rare and shallow.
const maxSaveAttempts = 3

// Service implements delivery tracking: status upserts, QR verification,
// owner reads, admin listing/completion, and the best-effort fan-out that
// follows every persisted change.
type Service struct {
	deliveries    deliveryRepository
	orders        orderRepository
	notifications notificationRepository
	broadcaster   broadcast.Broadcaster
	logger        logx.Logger

	qrTTL            time.Duration
	operationTimeout time.Duration
	now              func() time.Time
	metrics          Metrics
}

// Metrics holds the optional domain counters; nil entries are skipped.
type Metrics struct {
	Updates            *prometheus.CounterVec
	QRVerifications    *prometheus.CounterVec
	SideEffectFailures *prometheus.CounterVec
}

// Options carries tuning knobs for the Service.
type Options struct {
	QRTTL            time.Duration
	OperationTimeout time.Duration
	Metrics          Metrics
}

// NewService creates a delivery Service.
func NewService(
	deliveries deliveryRepository,
	orders orderRepository,
	notifications notificationRepository,
	broadcaster broadcast.Broadcaster,
	logger logx.Logger,
	opts Options,
) *Service {
	if broadcaster == nil {
		broadcaster = broadcast.NopBroadcaster{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if opts.QRTTL <= 0 {
		opts.QRTTL = qr.TTL
	}
	if opts.OperationTimeout <= 0 {
		opts.OperationTimeout = 3 * time.Second
	}
	return &Service{
		deliveries:       deliveries,
		orders:           orders,
		notifications:    notifications,
		broadcaster:      broadcaster,
		logger:           logger,
		qrTTL:            opts.QRTTL,
		operationTimeout: opts.OperationTimeout,
		now:              func() time.Time { return time.Now().UTC() },
		metrics:          opts.Metrics,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Track upserts the delivery record for (order, shop) and fans out the
// best-effort side effects. The saved record is returned as soon as the
// primary write lands; side-effect failures degrade silently.
func (s *Service) Track(ctx context.Context, upd domain.PartialDeliveryUpdate) (*domain.Delivery, SideEffects, error) {
	upd.OrderID = strings.TrimSpace(upd.OrderID)
	upd.ShopID = strings.TrimSpace(upd.ShopID)
	if upd.OrderID == "" || upd.ShopID == "" {
		return nil, SideEffects{}, apperr.ErrInvalid
	}
	if upd.Mode != nil && !upd.Mode.Valid() {
		return nil, SideEffects{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.saveTracked(ctx, upd)
	if err != nil {
		return nil, SideEffects{}, err
	}

	var effects SideEffects
	effects.OrderPatch = s.patchOrder(ctx, trackingPatch(upd, s.now()))
	effects.Broadcast = s.broadcastUpdate(ctx, d, broadcast.OrderChannel(d.OrderID), broadcast.ShopChannel(d.ShopID))
	if upd.Status != nil && *upd.Status == domain.StatusDelivered {
		effects.Notification = s.notifyOrderOwner(ctx, d)
	}

	s.countUpdate(d.Status)
	s.logger.Info("delivery updated",
		logx.String("event", "delivery_updated"),
		logx.String("order_id", d.OrderID),
		logx.String("shop_id", d.ShopID),
		logx.String("status", string(d.Status)),
		logx.String("mode", string(d.Mode)),
		logx.Bool("degraded", effects.Degraded()),
	)
	return d, effects, nil
}

// saveTracked runs the load-or-create / mutate / CAS-save loop.
func (s *Service) saveTracked(ctx context.Context, upd domain.PartialDeliveryUpdate) (*domain.Delivery, error) {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		d, err := s.deliveries.GetByOrderShop(ctx, upd.OrderID, upd.ShopID)
		if err != nil {
			return nil, err
		}

		if d == nil {
			d, err = s.newDelivery(upd)
			if err != nil {
				return nil, err
			}
			err = s.deliveries.Insert(ctx, d)
			if errors.Is(err, apperr.ErrConflict) {
				continue // lost the create race, re-read and mutate instead
			}
			if err != nil {
				return nil, err
			}
			return d, nil
		}

		s.applyUpdate(d, upd)
		ok, err := s.deliveries.Update(ctx, d)
		if err != nil {
			return nil, err
		}
		if ok {
			return d, nil
		}
	}
	return nil, apperr.ErrConflict
}

// newDelivery constructs a fresh record. Drone-mode records get their QR
// credential synchronously at creation.
func (s *Service) newDelivery(upd domain.PartialDeliveryUpdate) (*domain.Delivery, error) {
	mode := domain.ModeRegular
	if upd.Mode != nil {
		mode = *upd.Mode
	}
	d := &domain.Delivery{
		OrderID: upd.OrderID,
		ShopID:  upd.ShopID,
		Mode:    mode,
		Status:  domain.StatusUnassigned,
	}
	if mode == domain.ModeDrone {
		now := s.now()
		token, err := qr.Generate(upd.OrderID, upd.ShopID, now)
		if err != nil {
			return nil, err
		}
		expiry := now.Add(s.qrTTL)
		d.QRCode = token
		d.QRExpiry = &expiry
	}
	s.applyUpdate(d, upd)
	return d, nil
}

// applyUpdate mutates the record with partial-update semantics. Status is
// applied before location so the history entry captures the location the
// delivery had before this update.
func (s *Service) applyUpdate(d *domain.Delivery, upd domain.PartialDeliveryUpdate) {
	now := s.now()
	if upd.Status != nil {
		var notes string
		if upd.Notes != nil {
			notes = *upd.Notes
		}
		d.ApplyStatus(*upd.Status, notes, now)
	}
	if upd.EtaMinutes != nil {
		eta := *upd.EtaMinutes
		d.EtaMinutes = &eta
	}
	if upd.Rider != nil {
		rider := *upd.Rider
		d.Rider = &rider
	}
	if upd.Notes != nil {
		d.Notes = *upd.Notes
	}
	if upd.Location != nil {
		d.ApplyLocation(upd.Location.Lat, upd.Location.Lng, now)
	}
}

// trackingPatch builds the order denormalization for a tracking update.
func trackingPatch(upd domain.PartialDeliveryUpdate, now time.Time) domain.OrderDeliveryPatch {
	p := domain.OrderDeliveryPatch{
		OrderID:        upd.OrderID,
		DeliveryStatus: upd.Status,
	}
	if upd.Rider != nil {
		name := upd.Rider.Name
		p.DeliveryPartner = &name
	}
	if upd.EtaMinutes != nil {
		eta := now.Add(time.Duration(*upd.EtaMinutes) * time.Minute)
		p.EstimatedDeliveryTime = &eta
	}
	return p
}

// GetForUser returns all delivery records of an order after verifying the
// caller owns it. Read-only.
func (s *Service) GetForUser(ctx context.Context, orderID, userID string, shopID *string) ([]domain.Delivery, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ord, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, apperr.ErrNotFound
	}
	if ord.UserID != userID {
		return nil, apperr.ErrForbidden
	}
	return s.deliveries.ListByOrder(ctx, orderID, shopID)
}

// AdminList returns deliveries matching the filter with offset pagination.
func (s *Service) AdminList(ctx context.Context, f domain.DeliveryFilter, page, limit int) ([]domain.Delivery, domain.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, total, err := s.deliveries.List(ctx, f, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Page{}, err
	}
	pg := domain.Page{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
	return list, pg, nil
}

// AdminComplete forces a delivery to delivered, regardless of its current
// status, and patches the order's actual delivery time.
func (s *Service) AdminComplete(ctx context.Context, deliveryID int64, notes string) (*domain.Delivery, SideEffects, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var d *domain.Delivery
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		var err error
		d, err = s.deliveries.GetByID(ctx, deliveryID)
		if err != nil {
			return nil, SideEffects{}, err
		}
		if d == nil {
			return nil, SideEffects{}, apperr.ErrNotFound
		}

		historyNote := notes
		if historyNote == "" {
			historyNote = "Marked as delivered by admin"
		}
		if notes != "" {
			d.Notes = notes
		}
		d.ApplyStatus(domain.StatusDelivered, historyNote, s.now())

		ok, err := s.deliveries.Update(ctx, d)
		if err != nil {
			return nil, SideEffects{}, err
		}
		if ok {
			return d, s.completeFanOut(ctx, d), nil
		}
	}
	return nil, SideEffects{}, apperr.ErrConflict
}

// VerifyQR redeems a drone QR token: reject unknown tokens, expired tokens
// and double redemption; on success the delivery becomes delivered and the
// presenting user is notified. The presenting user is deliberately not
// checked against the order owner (documented source behavior).
func (s *Service) VerifyQR(ctx context.Context, orderID, qrCode, userID string) (*domain.Delivery, SideEffects, error) {
	orderID = strings.TrimSpace(orderID)
	qrCode = strings.TrimSpace(qrCode)
	if orderID == "" || qrCode == "" {
		return nil, SideEffects{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var d *domain.Delivery
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		var err error
		d, err = s.deliveries.FindByQR(ctx, orderID, qrCode)
		if err != nil {
			return nil, SideEffects{}, err
		}
		if d == nil {
			s.countVerification("invalid")
			return nil, SideEffects{}, apperr.ErrNotFound
		}
		now := s.now()
		if qr.Expired(d.QRExpiry, now) {
			s.countVerification("expired")
			return nil, SideEffects{}, apperr.ErrQRExpired
		}
		if d.Status == domain.StatusDelivered {
			s.countVerification("already_delivered")
			return nil, SideEffects{}, apperr.ErrAlreadyDelivered
		}

		d.ApplyStatus(domain.StatusDelivered, "Delivered via QR verification", now)

		ok, err := s.deliveries.Update(ctx, d)
		if err != nil {
			return nil, SideEffects{}, err
		}
		if ok {
			s.countVerification("verified")
			effects := s.completeFanOut(ctx, d)
			effects.Notification = s.notifyUser(ctx, userID, d,
				"Your drone delivery has been completed successfully!")
			s.logger.Info("qr verified",
				logx.String("event", "qr_verified"),
				logx.String("order_id", d.OrderID),
				logx.String("shop_id", d.ShopID),
			)
			return d, effects, nil
		}
	}
	return nil, SideEffects{}, apperr.ErrConflict
}

// completeFanOut is the shared side-effect set of the delivered paths:
// order patch with the actual delivery time plus the two-channel broadcast.
func (s *Service) completeFanOut(ctx context.Context, d *domain.Delivery) SideEffects {
	var effects SideEffects
	status := domain.StatusDelivered
	actual := s.now()
	effects.OrderPatch = s.patchOrder(ctx, domain.OrderDeliveryPatch{
		OrderID:            d.OrderID,
		DeliveryStatus:     &status,
		ActualDeliveryTime: &actual,
	})
	effects.Broadcast = s.broadcastUpdate(ctx, d, broadcast.OrderChannel(d.OrderID), broadcast.ShopChannel(d.ShopID))
	return effects
}

func (s *Service) patchOrder(ctx context.Context, p domain.OrderDeliveryPatch) Outcome {
	if _, err := s.orders.PatchDelivery(ctx, p); err != nil {
		s.effectDropped("order_patch", p.OrderID, err)
		return attempted(false)
	}
	return attempted(true)
}

func (s *Service) broadcastUpdate(ctx context.Context, d *domain.Delivery, channels ...string) Outcome {
	payload := updateEvent{Delivery: toView(d), OrderID: d.OrderID}
	ok := true
	for _, ch := range channels {
		if err := s.broadcaster.Publish(ctx, ch, broadcast.EventDeliveryUpdate, payload); err != nil {
			s.effectDropped("broadcast", d.OrderID, err)
			ok = false
		}
	}
	return attempted(ok)
}

// notifyOrderOwner resolves the order's user and notifies them. A missing
// order skips the notification silently.
func (s *Service) notifyOrderOwner(ctx context.Context, d *domain.Delivery) Outcome {
	ord, err := s.orders.Get(ctx, d.OrderID)
	if err != nil {
		s.effectDropped("notification", d.OrderID, err)
		return attempted(false)
	}
	if ord == nil {
		return Outcome{}
	}
	return s.notifyUser(ctx, ord.UserID, d, "Your order has been delivered successfully!")
}

func (s *Service) notifyUser(ctx context.Context, userID string, d *domain.Delivery, message string) Outcome {
	n := &domain.Notification{
		UserID:    userID,
		UserModel: domain.RecipientUser,
		Type:      "success",
		Title:     "Order Delivered",
		Message:   message,
		Metadata: map[string]string{
			"order_id": d.OrderID,
			"shop_id":  d.ShopID,
		},
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.effectDropped("notification", d.OrderID, err)
		return attempted(false)
	}
	return attempted(true)
}

func (s *Service) effectDropped(effect, orderID string, err error) {
	s.logger.Warn("side effect dropped",
		logx.String("effect", effect),
		logx.String("order_id", orderID),
		logx.Err(err),
	)
	if s.metrics.SideEffectFailures != nil {
		s.metrics.SideEffectFailures.WithLabelValues(effect).Inc()
	}
}

func (s *Service) countUpdate(status domain.DeliveryStatus) {
	if s.metrics.Updates != nil {
		s.metrics.Updates.WithLabelValues(string(status)).Inc()
	}
}

func (s *Service) countVerification(outcome string) {
	if s.metrics.QRVerifications != nil {
		s.metrics.QRVerifications.WithLabelValues(outcome).Inc()
	}
}

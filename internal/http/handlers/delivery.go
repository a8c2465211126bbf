package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"foodmarket-delivery/internal/apperr"
	"foodmarket-delivery/internal/domain"
	"foodmarket-delivery/internal/http/middleware"
	"foodmarket-delivery/internal/logx"
)

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// Track handles PUT /delivery/track/{orderID}: upsert the delivery record
// with partial-update semantics. Always 200 with the saved record once the
// primary write lands; side-effect failures only flip the degraded flag.
func (h *DeliveryHandler) Track(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req trackDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if strings.TrimSpace(req.ShopID) == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "shopId is required")
		return
	}

	d, effects, err := h.usecase.Track(r.Context(), req.toUpdate(orderID))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, trackDeliveryResponse{
			Success:  true,
			Delivery: modelToResponse(*d),
			Degraded: effects.Degraded(),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "delivery update conflict")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Get handles GET /delivery/track/{orderID}: owner-only read of all delivery
// records for the order, optionally filtered by ?shopId=.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing auth token")
		return
	}

	var shopID *string
	if v := strings.TrimSpace(r.URL.Query().Get("shopId")); v != "" {
		shopID = &v
	}

	list, err := h.usecase.GetForUser(r.Context(), orderID, id.UserID, shopID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, listDeliveriesResponse{
			Success:    true,
			Deliveries: modelsToResponse(list),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "not allowed to view this order")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// AdminList handles GET /delivery/admin/all with ?page=&limit=&status=&mode=.
func (h *DeliveryHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f domain.DeliveryFilter
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		status := domain.DeliveryStatus(strings.ToLower(v))
		f.Status = &status
	}
	if v := strings.TrimSpace(q.Get("mode")); v != "" {
		mode := domain.DeliveryMode(strings.ToLower(v))
		f.Mode = &mode
	}
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	list, pg, err := h.usecase.AdminList(r.Context(), f, page, limit)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, adminListResponse{
		Success:    true,
		Deliveries: modelsToResponse(list),
		Pagination: paginationDTO{
			Page:       pg.Page,
			Limit:      pg.Limit,
			Total:      pg.Total,
			TotalPages: pg.TotalPages,
		},
	})
}

// AdminComplete handles PUT /delivery/admin/complete/{deliveryID}: force a
// delivery to delivered regardless of its current status.
func (h *DeliveryHandler) AdminComplete(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := idFromURL(r, "deliveryID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var notes string
	if r.Body != nil && r.ContentLength != 0 {
		var req completeDeliveryRequest
		if ok := decodeJSON(h.logger, w, r, &req); !ok {
			return
		}
		if req.Notes != nil {
			notes = *req.Notes
		}
	}

	d, effects, err := h.usecase.AdminComplete(r.Context(), deliveryID, notes)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, trackDeliveryResponse{
			Success:  true,
			Delivery: modelToResponse(*d),
			Degraded: effects.Degraded(),
		})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "delivery not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "delivery update conflict")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// VerifyQR handles POST /delivery/verify-qr. Rejections (unknown token,
// expired token, double redemption) are all 400 with a specific message.
func (h *DeliveryHandler) VerifyQR(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing auth token")
		return
	}

	var req verifyQRRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, _, err := h.usecase.VerifyQR(r.Context(), req.OrderID, req.QRCode, id.UserID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, verifyQRResponse{
			Success:  true,
			Message:  "Delivery verified successfully",
			Delivery: modelToResponse(*d),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "qrCode and orderId are required")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusBadRequest, "QR code not found or invalid")
	case errors.Is(err, apperr.ErrQRExpired):
		writeError(h.logger, w, r, http.StatusBadRequest, "QR code has expired")
	case errors.Is(err, apperr.ErrAlreadyDelivered):
		writeError(h.logger, w, r, http.StatusBadRequest, "delivery already completed")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "delivery update conflict")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// IssueTestQR handles POST /delivery/test-qr/{orderID}: force-issue a fresh
// QR credential for manual verification testing.
func (h *DeliveryHandler) IssueTestQR(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	res, err := h.usecase.IssueTestQR(r.Context(), orderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, testQRResponse{
			Success:  true,
			QRCode:   res.QRCode,
			Delivery: modelToResponse(*res.Delivery),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "delivery update conflict")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// SimulateRegular handles PUT /delivery/test-regular/{orderID}: drive a
// regular-mode delivery through a status update for testing.
func (h *DeliveryHandler) SimulateRegular(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req trackDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, effects, err := h.usecase.SimulateRegular(r.Context(), req.toUpdate(orderID))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, trackDeliveryResponse{
			Success:  true,
			Delivery: modelToResponse(*d),
			Degraded: effects.Degraded(),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "delivery update conflict")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

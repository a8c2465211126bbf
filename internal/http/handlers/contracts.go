package handlers

import (
	"context"

	"foodmarket-delivery/internal/domain"
	"foodmarket-delivery/internal/service/delivery"
)

type deliveryUsecase interface {
	Track(ctx context.Context, upd domain.PartialDeliveryUpdate) (*domain.Delivery, delivery.SideEffects, error)
	GetForUser(ctx context.Context, orderID, userID string, shopID *string) ([]domain.Delivery, error)
	AdminList(ctx context.Context, f domain.DeliveryFilter, page, limit int) ([]domain.Delivery, domain.Page, error)
	AdminComplete(ctx context.Context, deliveryID int64, notes string) (*domain.Delivery, delivery.SideEffects, error)
	VerifyQR(ctx context.Context, orderID, qrCode, userID string) (*domain.Delivery, delivery.SideEffects, error)
	IssueTestQR(ctx context.Context, orderID string) (*delivery.TestQRResult, error)
	SimulateRegular(ctx context.Context, upd domain.PartialDeliveryUpdate) (*domain.Delivery, delivery.SideEffects, error)
}

// NewDeliveryUsecase wires a delivery.Service into a deliveryUsecase.
func NewDeliveryUsecase(svc *delivery.Service) deliveryUsecase {
	return svc
}

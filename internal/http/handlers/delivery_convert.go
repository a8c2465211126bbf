package handlers

import (
	"strings"

	"foodmarket-delivery/internal/domain"
)

func (r trackDeliveryRequest) toUpdate(orderID string) domain.PartialDeliveryUpdate {
	upd := domain.PartialDeliveryUpdate{
		OrderID: orderID,
		ShopID:  strings.TrimSpace(r.ShopID),
		Notes:   r.DeliveryNotes,
	}
	if r.Status != nil {
		status := domain.DeliveryStatus(strings.ToLower(strings.TrimSpace(*r.Status)))
		upd.Status = &status
	}
	if r.DeliveryMode != nil {
		mode := domain.DeliveryMode(strings.ToLower(strings.TrimSpace(*r.DeliveryMode)))
		upd.Mode = &mode
	}
	if r.Location != nil {
		upd.Location = &domain.Location{Lat: r.Location.Lat, Lng: r.Location.Lng}
	}
	if r.EtaMinutes != nil {
		eta := *r.EtaMinutes
		upd.EtaMinutes = &eta
	}
	if r.Rider != nil {
		upd.Rider = &domain.Rider{Name: r.Rider.Name, Phone: r.Rider.Phone, Vehicle: r.Rider.Vehicle}
	}
	return upd
}

func pointToDTO(p *domain.GeoPoint) *locationDTO {
	if p == nil {
		return nil
	}
	dto := &locationDTO{Lat: p.Lat, Lng: p.Lng}
	if !p.Timestamp.IsZero() {
		ts := p.Timestamp
		dto.Timestamp = &ts
	}
	return dto
}

func modelToResponse(d domain.Delivery) deliveryDTO {
	route := make([]locationDTO, 0, len(d.Route))
	for i := range d.Route {
		route = append(route, *pointToDTO(&d.Route[i]))
	}
	history := make([]statusEventDTO, 0, len(d.StatusHistory))
	for _, e := range d.StatusHistory {
		history = append(history, statusEventDTO{
			Status:    string(e.Status),
			Timestamp: e.Timestamp,
			Location:  pointToDTO(e.Location),
			Notes:     e.Notes,
		})
	}

	dto := deliveryDTO{
		ID:              d.ID,
		OrderID:         d.OrderID,
		ShopID:          d.ShopID,
		DeliveryMode:    string(d.Mode),
		Status:          string(d.Status),
		CurrentLocation: pointToDTO(d.CurrentLocation),
		Route:           route,
		StatusHistory:   history,
		EtaMinutes:      d.EtaMinutes,
		DeliveryNotes:   d.Notes,
		QRCode:          d.QRCode,
		QRExpiry:        d.QRExpiry,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.Rider != nil {
		dto.Rider = &riderDTO{Name: d.Rider.Name, Phone: d.Rider.Phone, Vehicle: d.Rider.Vehicle}
	}
	return dto
}

func modelsToResponse(list []domain.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(list))
	for _, d := range list {
		out = append(out, modelToResponse(d))
	}
	return out
}

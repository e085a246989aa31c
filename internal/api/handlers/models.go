package handlers

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// BookedSlotResponse один занятый слот бронирования
type BookedSlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AppliedDiscountResponse одна строка раскладки скидок
type AppliedDiscountResponse struct {
	RuleID int64   `json:"ruleId"`
	Title  string  `json:"title"`
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Amount float64 `json:"amount"`
}

// PricingResponse раскладка цены бронирования
type PricingResponse struct {
	BaseAmount    float64                   `json:"baseAmount"`
	Applied       []AppliedDiscountResponse `json:"appliedDiscounts"`
	TotalDiscount float64                   `json:"totalDiscount"`
	FinalAmount   float64                   `json:"finalAmount"`
}

// BookingResponse HTTP модель бронирования, общая для всех rental-обработчиков
type BookingResponse struct {
	ID                 int64                `json:"id"`
	Reference          string               `json:"reference"`
	UserID             int64                `json:"userId"`
	FacilityID         int64                `json:"facilityId"`
	SportID            int64                `json:"sportId"`
	RentalDate         string               `json:"rentalDate"`
	Slots              []BookedSlotResponse `json:"slots"`
	Pricing            PricingResponse      `json:"pricing"`
	PaymentMode        string               `json:"paymentMode"`
	PaymentStatus      string               `json:"paymentStatus"`
	Status             string               `json:"status"`
	GatewayOrderID     *string              `json:"gatewayOrderId,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
	CancellationReason *string              `json:"cancellationReason,omitempty"`
	CancelledAt        *string              `json:"cancelledAt,omitempty"`
	CreatedAt          string               `json:"createdAt"`
	UpdatedAt          string               `json:"updatedAt"`
}

// FromDomainBooking конвертирует доменное бронирование в HTTP модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	slots := make([]BookedSlotResponse, 0, len(b.Slots))
	for _, s := range b.Slots {
		slots = append(slots, BookedSlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	applied := make([]AppliedDiscountResponse, 0, len(b.Pricing.Applied))
	for _, a := range b.Pricing.Applied {
		applied = append(applied, AppliedDiscountResponse{
			RuleID: a.RuleID,
			Title:  a.Title,
			Type:   string(a.Type),
			Value:  a.Value,
			Amount: a.Amount,
		})
	}

	var cancelledAt *string
	if b.CancelledAt != nil {
		formatted := b.CancelledAt.Format(time.RFC3339)
		cancelledAt = &formatted
	}

	return &BookingResponse{
		ID:         b.ID,
		Reference:  b.Reference,
		UserID:     b.UserID,
		FacilityID: b.FacilityID,
		SportID:    b.SportID,
		RentalDate: b.RentalDate.Format(domain.DateFormat),
		Slots:      slots,
		Pricing: PricingResponse{
			BaseAmount:    b.Pricing.BaseAmount,
			Applied:       applied,
			TotalDiscount: b.Pricing.TotalDiscount,
			FinalAmount:   b.Pricing.FinalAmount,
		},
		PaymentMode:        string(b.PaymentMode),
		PaymentStatus:      string(b.PaymentStatus),
		Status:             string(b.Status),
		GatewayOrderID:     b.GatewayOrderID,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        cancelledAt,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return result
}

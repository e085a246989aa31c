package domain

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// BookingStatus represents the status of a rental booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

// PaymentMode represents how the customer pays
type PaymentMode string

const (
	PaymentModeCash    PaymentMode = "cash"
	PaymentModeUPI     PaymentMode = "upi"
	PaymentModeGateway PaymentMode = "gateway"
)

// BookedSlot один занятый слот в рамках бронирования
type BookedSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Booking represents one ad-hoc rental reservation covering one or more
// template slots of a facility on one date
type Booking struct {
	ID         int64
	Reference  string // Человекочитаемый номер брони (uuid), попадает в квитанцию
	UserID     int64
	FacilityID int64
	SportID    int64
	RentalDate time.Time
	Slots      []BookedSlot

	// Снимок ценообразования на момент бронирования
	Pricing PriceBreakdown

	PaymentMode    PaymentMode
	PaymentStatus  PaymentStatus
	Status         BookingStatus
	GatewayOrderID *string

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slots
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// SlotTimes returns the start times of all booked slots
func (b *Booking) SlotTimes() []types.TimeString {
	times := make([]types.TimeString, len(b.Slots))
	for i, s := range b.Slots {
		times[i] = s.StartTime
	}
	return times
}

// FacilityBookingsFilter фильтр для выборки бронирований площадки
type FacilityBookingsFilter struct {
	FacilityID       int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}

// ValidPaymentMode returns true for a known payment mode value
func ValidPaymentMode(m PaymentMode) bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeGateway:
		return true
	}
	return false
}

// ValidBookingStatus returns true for a known booking status value
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

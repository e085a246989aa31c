package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxSlotsPerBooking          = 12
	MaxBlockReasonLength        = 200
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxDiscountCodesPerRequest  = 5
)

// ActiveBookingStatuses статусы бронирований, занимающих слоты.
// Используется при вычислении доступности.
var ActiveBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

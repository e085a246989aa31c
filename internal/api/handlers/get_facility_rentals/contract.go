package get_facility_rentals

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

type BookingService interface {
	GetFacilityBookings(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

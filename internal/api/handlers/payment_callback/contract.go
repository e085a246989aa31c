package payment_callback

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

type BookingService interface {
	ConfirmPayment(ctx context.Context, bookingID int64, orderID, paymentID, signature string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package bookings

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
	ReleaseSlots(ctx context.Context, bookingID int64) error
	ConfirmPayment(ctx context.Context, id int64) error
}

// GatewayVerifier проверка подписи платежного callback
type GatewayVerifier interface {
	VerifySignature(orderID, paymentID, signature string) bool
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

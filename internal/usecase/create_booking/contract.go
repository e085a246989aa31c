package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/integrations/paymentgateway"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ReserveSlots(ctx context.Context, booking *domain.Booking) error
	AddDiscounts(ctx context.Context, bookingID int64, applied []domain.AppliedDiscount) error
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
}

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// SlotRepository интерфейс репозитория слотов расписания
type SlotRepository interface {
	GetByFacility(ctx context.Context, facilityID int64, onlyActive bool) ([]*domain.TemplateSlot, error)
}

// BlockedDateRepository интерфейс репозитория блокировок дат
type BlockedDateRepository interface {
	GetByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) (*domain.BlockedDateEntry, error)
}

// PricingService интерфейс сервиса ценообразования
type PricingService interface {
	PriceWithCodes(ctx context.Context, baseAmount float64, target domain.DiscountTarget, pctx domain.PricingContext, codes []string) (*domain.PriceBreakdown, error)
	PriceAuto(ctx context.Context, baseAmount float64, target domain.DiscountTarget, pctx domain.PricingContext) (*domain.PriceBreakdown, error)
}

// PaymentGatewayClient интерфейс клиента платежного шлюза
type PaymentGatewayClient interface {
	CreateOrder(ctx context.Context, amount float64, receipt string) (*paymentgateway.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

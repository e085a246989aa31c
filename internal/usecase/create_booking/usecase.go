package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	blockedRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/blockeddates"
	bookingRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/facility"
)

// UseCase use case создания бронирования аренды.
// Ценообразование считается до транзакции (чистая функция над
// правилами скидок), резервация слотов - в сериализуемой транзакции
// поверх условной вставки с уникальным индексом, поэтому при гонке за
// один слот выигрывает ровно одно бронирование.
type UseCase struct {
	bookingRepo  BookingRepository
	facilities   FacilityRepository
	slotRepo     SlotRepository
	blockedRepo  BlockedDateRepository
	pricing      PricingService
	gateway      PaymentGatewayClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookings BookingRepository,
	facilities FacilityRepository,
	slots SlotRepository,
	blocked BlockedDateRepository,
	pricing PricingService,
	gateway PaymentGatewayClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookings,
		facilities:   facilities,
		slotRepo:     slots,
		blockedRepo:  blocked,
		pricing:      pricing,
		gateway:      gateway,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, facility=%d, sport=%d, date=%s, slots=%d, mode=%s",
		req.UserID, req.FacilityID, req.SportID, req.Date.Format(domain.DateFormat),
		len(req.StartTimes), req.PaymentMode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Площадка: существует, бронируема, поддерживает спорт
	facility, err := uc.facilities.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CreateBooking: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.IsBookable() {
		uc.logger.Warn("CreateBooking: facility id=%d is %s", req.FacilityID, facility.Status)
		return nil, ErrFacilityUnavailable
	}
	if !facility.SupportsSport(req.SportID) {
		uc.logger.Warn("CreateBooking: facility id=%d does not support sport id=%d", req.FacilityID, req.SportID)
		return nil, ErrSportNotSupported
	}

	// 3. Сопоставляем запрошенные времена с активными слотами шаблона
	template, err := uc.slotRepo.GetByFacility(ctx, req.FacilityID, true)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get template slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get template slots: %v", ErrInternal, err)
	}
	slots, invalid := matchTemplate(req.StartTimes, template)
	if len(invalid) > 0 {
		uc.logger.Warn("CreateBooking: %d start times not in template for facility=%d", len(invalid), req.FacilityID)
		return nil, &InvalidSlotsError{StartTimes: invalid}
	}

	// 4. Ручные блокировки на дату
	blocked, err := uc.blockedRepo.GetByFacilityAndDate(ctx, req.FacilityID, req.Date)
	if err != nil && !errors.Is(err, blockedRepo.ErrEntryNotFound) {
		uc.logger.Error("CreateBooking: failed to get blocked entry: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked entry: %v", ErrInternal, err)
	}
	if conflicts := findBlockedConflicts(slots, blocked); len(conflicts) > 0 {
		uc.logger.Warn("CreateBooking: %d requested slots are blocked on %s",
			len(conflicts), req.Date.Format(domain.DateFormat))
		return nil, &SlotConflictError{StartTimes: conflicts}
	}

	// 5. Ценообразование (вне транзакции: правила скидок читаются без блокировок)
	base := baseAmount(facility.HourlyRate, slots)

	pctx := domain.PricingContext{
		SportID:   &req.SportID,
		SlotCount: len(slots),
	}
	var breakdown *domain.PriceBreakdown
	if len(req.DiscountCodes) > 0 {
		breakdown, err = uc.pricing.PriceWithCodes(ctx, base, domain.TargetTurf, pctx, req.DiscountCodes)
	} else {
		breakdown, err = uc.pricing.PriceAuto(ctx, base, domain.TargetTurf, pctx)
	}
	if err != nil {
		// Ошибки кодов отдаются как есть: обработчик различает их по errors.Is/As
		uc.logger.Warn("CreateBooking: pricing failed: %v", err)
		return nil, err
	}

	// 6. Собираем бронирование
	booking := &domain.Booking{
		Reference:   uuid.NewString(),
		UserID:      req.UserID,
		FacilityID:  req.FacilityID,
		SportID:     req.SportID,
		RentalDate:  req.Date,
		Slots:       slots,
		Pricing:     *breakdown,
		PaymentMode: req.PaymentMode,
		Notes:       req.Notes,
	}

	// 7. Платежный режим определяет начальные статусы:
	// cash/upi считаются оплаченными на месте, gateway ждет callback
	if req.PaymentMode == domain.PaymentModeGateway {
		order, err := uc.gateway.CreateOrder(ctx, breakdown.FinalAmount, booking.Reference)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create gateway order: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
		}
		booking.GatewayOrderID = &order.ID
		booking.PaymentStatus = domain.PaymentPending
		booking.Status = domain.StatusPending
	} else {
		booking.PaymentStatus = domain.PaymentPaid
		booking.Status = domain.StatusConfirmed
	}

	// 8. Резервация в сериализуемой транзакции
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Повторная проверка занятости под блокировкой (FOR UPDATE)
		filter := domain.FacilityBookingsFilter{
			FacilityID: req.FacilityID,
			StartDate:  &req.Date,
			EndDate:    &req.Date,
		}
		existing, err := uc.bookingRepo.GetByFacilityWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get existing bookings: %v", err)
			return fmt.Errorf("%w: failed to get existing bookings: %v", ErrInternal, err)
		}
		if conflicts := findBookingConflicts(slots, existing); len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: %d requested slots already booked", len(conflicts))
			return &SlotConflictError{StartTimes: conflicts}
		}

		// 8.2. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 8.3. Резервируем слоты условной вставкой: уникальный индекс
		// отсекает проигравшего при гонке, которую не поймал шаг 8.1
		if err := uc.bookingRepo.ReserveSlots(txCtx, created); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: lost reservation race for facility=%d, date=%s",
					req.FacilityID, req.Date.Format(domain.DateFormat))
				return &SlotConflictError{StartTimes: req.StartTimes}
			}
			uc.logger.Error("CreateBooking: failed to reserve slots: %v", err)
			return fmt.Errorf("%w: failed to reserve slots: %v", ErrInternal, err)
		}

		// 8.4. Снимок применённых скидок
		if len(breakdown.Applied) > 0 {
			if err := uc.bookingRepo.AddDiscounts(txCtx, created.ID, breakdown.Applied); err != nil {
				uc.logger.Error("CreateBooking: failed to store applied discounts: %v", err)
				return fmt.Errorf("%w: failed to store applied discounts: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, reference=%s, final=%.2f, status=%s",
		result.ID, result.Reference, result.Pricing.FinalAmount, result.Status)

	return &Response{Booking: result}, nil
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	blockedRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/blockeddates"
	facilityRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/facility"
)

// UseCase use case расчета доступности слотов площадки на дату.
// Читает шаблон расписания, блокировки и активные бронирования и
// сводит их в единый список статусов (см. resolveSlots).
type UseCase struct {
	facilities   FacilityRepository
	slotRepo     SlotRepository
	blockedRepo  BlockedDateRepository
	bookingRepo  BookingRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilities FacilityRepository,
	slots SlotRepository,
	blocked BlockedDateRepository,
	bookings BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilities:   facilities,
		slotRepo:     slots,
		blockedRepo:  blocked,
		bookingRepo:  bookings,
		logger:       logger,
	}
}

// Execute выполняет use case расчета доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: facility=%d, date=%s",
		req.FacilityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку
	facility, err := uc.facilities.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailableSlots: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Активные слоты шаблона (захваченные группами скрыты)
	template, err := uc.slotRepo.GetByFacility(ctx, req.FacilityID, true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get template slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get template slots: %v", ErrInternal, err)
	}

	// 4. Ручные блокировки на дату (отсутствие записи - не ошибка)
	blocked, err := uc.blockedRepo.GetByFacilityAndDate(ctx, req.FacilityID, req.Date)
	if err != nil && !errors.Is(err, blockedRepo.ErrEntryNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get blocked entry: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked entry: %v", ErrInternal, err)
	}

	// 5. Активные бронирования на дату
	filter := domain.FacilityBookingsFilter{
		FacilityID: req.FacilityID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
	}
	bookings, err := uc.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Сводим в статусы
	slots := resolveSlots(facility, template, blocked, bookings)

	uc.logger.Info("GetAvailableSlots: resolved %d slots for facility=%d, date=%s",
		len(slots), req.FacilityID, req.Date.Format(domain.DateFormat))

	return &Response{
		FacilityID: req.FacilityID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}

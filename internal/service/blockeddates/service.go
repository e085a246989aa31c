package blockeddates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	blockedRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/blockeddates"
	facilityRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// Service управление блокировками дат: ручное закрытие отдельных слотов
// на конкретную дату (техработы, частные мероприятия). Блокировка
// перекрывает шаблон расписания, но уступает статусу площадки.
type Service struct {
	blocked    BlockedDateRepository
	slots      SlotRepository
	facilities FacilityRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blocked BlockedDateRepository, slots SlotRepository, facilities FacilityRepository, logger Logger) *Service {
	return &Service{
		blocked:    blocked,
		slots:      slots,
		facilities: facilities,
		logger:     logger,
	}
}

// BlockSlots блокирует указанные слоты площадки на дату.
// Каждое время начала обязано совпадать с активным слотом шаблона:
// при несовпадении возвращается InvalidSlotsError со списком
// нарушителей и ни один слот не блокируется. Повторная блокировка
// уже заблокированного слота игнорируется (идемпотентность).
func (s *Service) BlockSlots(ctx context.Context, facilityID int64, date time.Time, toBlock []domain.BlockedSlot) (*domain.BlockedDateEntry, error) {
	if len(toBlock) == 0 {
		return nil, fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	for _, b := range toBlock {
		if err := b.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, b.StartTime)
		}
		if len(b.Reason) > domain.MaxBlockReasonLength {
			return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
		}
	}

	if _, err := s.facilities.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("BlockSlots: failed to load facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: BlockSlots - load facility: %v", ErrInternal, err)
	}

	template, err := s.slots.GetByFacility(ctx, facilityID, true)
	if err != nil {
		s.logger.Error("BlockSlots: failed to load template for facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: BlockSlots - load template: %v", ErrInternal, err)
	}

	known := make(map[types.TimeString]struct{}, len(template))
	for _, slot := range template {
		known[slot.StartTime] = struct{}{}
	}

	var invalid []types.TimeString
	for _, b := range toBlock {
		if _, ok := known[b.StartTime]; !ok {
			invalid = append(invalid, b.StartTime)
		}
	}
	if len(invalid) > 0 {
		s.logger.Warn("BlockSlots: %d start times not in template for facility %d", len(invalid), facilityID)
		return nil, &InvalidSlotsError{StartTimes: invalid}
	}

	entryID, err := s.blocked.UpsertEntry(ctx, facilityID, date)
	if err != nil {
		s.logger.Error("BlockSlots: failed to upsert entry for facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: BlockSlots - upsert entry: %v", ErrInternal, err)
	}

	if err := s.blocked.AddSlots(ctx, entryID, toBlock); err != nil {
		s.logger.Error("BlockSlots: failed to add slots to entry %d: %v", entryID, err)
		return nil, fmt.Errorf("%w: BlockSlots - add slots: %v", ErrInternal, err)
	}

	entry, err := s.blocked.GetByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		s.logger.Error("BlockSlots: failed to reload entry %d: %v", entryID, err)
		return nil, fmt.Errorf("%w: BlockSlots - reload entry: %v", ErrInternal, err)
	}

	s.logger.Info("BlockSlots: facility %d, date %s, %d slots blocked (total %d)",
		facilityID, date.Format(domain.DateFormat), len(toBlock), len(entry.Slots))
	return entry, nil
}

// GetBlocked возвращает блокировки площадки на дату
func (s *Service) GetBlocked(ctx context.Context, facilityID int64, date time.Time) (*domain.BlockedDateEntry, error) {
	entry, err := s.blocked.GetByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetBlocked: failed to load entry for facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: GetBlocked - load entry: %v", ErrInternal, err)
	}
	return entry, nil
}

// UnblockSlot снимает блокировку с одного слота записи.
// Когда после снятия у записи не остается слотов, запись удаляется целиком.
func (s *Service) UnblockSlot(ctx context.Context, entryID int64, startTime types.TimeString) error {
	if err := startTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, startTime)
	}

	entry, err := s.blocked.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("UnblockSlot: failed to load entry %d: %v", entryID, err)
		return fmt.Errorf("%w: UnblockSlot - load entry: %v", ErrInternal, err)
	}

	if !entry.Contains(startTime) {
		return ErrSlotNotBlocked
	}

	if err := s.blocked.RemoveSlot(ctx, entryID, startTime); err != nil {
		s.logger.Error("UnblockSlot: failed to remove slot %s from entry %d: %v", startTime, entryID, err)
		return fmt.Errorf("%w: UnblockSlot - remove slot: %v", ErrInternal, err)
	}

	remaining, err := s.blocked.CountSlots(ctx, entryID)
	if err != nil {
		s.logger.Error("UnblockSlot: failed to count slots for entry %d: %v", entryID, err)
		return fmt.Errorf("%w: UnblockSlot - count slots: %v", ErrInternal, err)
	}
	if remaining == 0 {
		if err := s.blocked.DeleteEntry(ctx, entryID); err != nil {
			s.logger.Error("UnblockSlot: failed to delete empty entry %d: %v", entryID, err)
			return fmt.Errorf("%w: UnblockSlot - delete empty entry: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UnblockSlot: entry %d, slot %s unblocked (%d left)", entryID, startTime, remaining)
	return nil
}

// UnblockAll удаляет запись блокировок вместе со всеми ее слотами
func (s *Service) UnblockAll(ctx context.Context, entryID int64) error {
	entry, err := s.blocked.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("UnblockAll: failed to load entry %d: %v", entryID, err)
		return fmt.Errorf("%w: UnblockAll - load entry: %v", ErrInternal, err)
	}

	if err := s.blocked.DeleteEntry(ctx, entryID); err != nil {
		s.logger.Error("UnblockAll: failed to delete entry %d: %v", entryID, err)
		return fmt.Errorf("%w: UnblockAll - delete entry: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockAll: facility %d, date %s, entry %d removed",
		entry.FacilityID, entry.Date.Format(domain.DateFormat), entryID)
	return nil
}

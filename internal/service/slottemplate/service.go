package slottemplate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	batchRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/batch"
	facilityRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/facility"
	slotRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/slottemplate"
)

// Service управление шаблоном расписания площадки.
// Шаблон - это набор интервалов, одинаковый для всех дат; доступность
// конкретной даты считается поверх шаблона (см. usecase/get_available_slots).
type Service struct {
	slots        SlotRepository
	facilities   FacilityRepository
	bookings     BookingRepository
	batches      BatchRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	slots SlotRepository,
	facilities FacilityRepository,
	bookings BookingRepository,
	batches BatchRepository,
	logger Logger,
) *Service {
	return &Service{
		slots:        slots,
		facilities:   facilities,
		bookings:     bookings,
		batches:      batches,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// DefineSlots добавляет новые слоты в шаблон площадки.
// Интервалы проверяются на корректность и на пересечение как между
// собой, так и со всеми существующими слотами, включая закрепленные
// за группами (is_active = false): такой слот вернется в пул при
// освобождении. Метки генерируются автоматически в 12-часовом формате.
func (s *Service) DefineSlots(ctx context.Context, facilityID int64, intervals []SlotInterval) ([]*domain.TemplateSlot, error) {
	if len(intervals) == 0 {
		return nil, fmt.Errorf("%w: at least one slot interval is required", ErrInvalidInput)
	}

	if _, err := s.facilities.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("DefineSlots: failed to load facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: DefineSlots - load facility: %v", ErrInternal, err)
	}

	newSlots := make([]*domain.TemplateSlot, 0, len(intervals))
	for _, iv := range intervals {
		slot, err := buildSlot(facilityID, iv)
		if err != nil {
			return nil, err
		}
		newSlots = append(newSlots, slot)
	}

	existing, err := s.slots.GetByFacility(ctx, facilityID, false)
	if err != nil {
		s.logger.Error("DefineSlots: failed to load existing slots for facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: DefineSlots - load existing slots: %v", ErrInternal, err)
	}

	if overlapErr := checkOverlaps(newSlots, existing); overlapErr != nil {
		s.logger.Warn("DefineSlots: overlap detected for facility %d: %v", facilityID, overlapErr)
		return nil, overlapErr
	}

	created, err := s.slots.CreateBatch(ctx, newSlots)
	if err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateSlot) {
			return nil, fmt.Errorf("%w: duplicate start time", ErrSlotOverlap)
		}
		s.logger.Error("DefineSlots: failed to create slots for facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: DefineSlots - create slots: %v", ErrInternal, err)
	}

	s.logger.Info("DefineSlots: created %d slots for facility %d", len(created), facilityID)
	return created, nil
}

// UpdateSlot изменяет интервал существующего слота.
// Новый интервал проверяется на пересечение со всеми остальными
// слотами площадки, включая закрепленные за группами (сам слот из
// проверки исключается).
func (s *Service) UpdateSlot(ctx context.Context, facilityID, slotID int64, interval SlotInterval) (*domain.TemplateSlot, error) {
	slot, err := s.getFacilitySlot(ctx, facilityID, slotID, "UpdateSlot")
	if err != nil {
		return nil, err
	}

	updated, err := buildSlot(facilityID, interval)
	if err != nil {
		return nil, err
	}
	updated.ID = slot.ID
	updated.IsActive = slot.IsActive

	existing, err := s.slots.GetByFacility(ctx, facilityID, false)
	if err != nil {
		s.logger.Error("UpdateSlot: failed to load existing slots for facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: UpdateSlot - load existing slots: %v", ErrInternal, err)
	}

	others := make([]*domain.TemplateSlot, 0, len(existing))
	for _, e := range existing {
		if e.ID != slotID {
			others = append(others, e)
		}
	}

	if overlapErr := checkOverlaps([]*domain.TemplateSlot{updated}, others); overlapErr != nil {
		s.logger.Warn("UpdateSlot: overlap detected for slot %d: %v", slotID, overlapErr)
		return nil, overlapErr
	}

	if err := s.slots.Update(ctx, updated); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("UpdateSlot: failed to update slot %d: %v", slotID, err)
		return nil, fmt.Errorf("%w: UpdateSlot - update slot: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSlot: updated slot %d for facility %d: %s", slotID, facilityID, updated.Label)
	return updated, nil
}

// DeleteSlot удаляет слот из шаблона.
// Слот нельзя удалить, пока на его время есть активные бронирования
// начиная с сегодняшнего дня или пока он закреплен за группой.
func (s *Service) DeleteSlot(ctx context.Context, facilityID, slotID int64) error {
	slot, err := s.getFacilitySlot(ctx, facilityID, slotID, "DeleteSlot")
	if err != nil {
		return err
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	active, err := s.bookings.CountActiveBySlotTime(ctx, facilityID, slot.StartTime, today)
	if err != nil {
		s.logger.Error("DeleteSlot: failed to count bookings for slot %d: %v", slotID, err)
		return fmt.Errorf("%w: DeleteSlot - count bookings: %v", ErrInternal, err)
	}
	if active > 0 {
		s.logger.Warn("DeleteSlot: slot %d has %d active bookings", slotID, active)
		return fmt.Errorf("%w: %d active bookings", ErrSlotInUse, active)
	}

	if _, err := s.batches.GetBySlotID(ctx, slotID); err == nil {
		s.logger.Warn("DeleteSlot: slot %d is attached to a batch", slotID)
		return fmt.Errorf("%w: attached to a batch", ErrSlotInUse)
	} else if !errors.Is(err, batchRepo.ErrBatchNotFound) {
		s.logger.Error("DeleteSlot: failed to check batch for slot %d: %v", slotID, err)
		return fmt.Errorf("%w: DeleteSlot - check batch: %v", ErrInternal, err)
	}

	if err := s.slots.Delete(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("DeleteSlot: failed to delete slot %d: %v", slotID, err)
		return fmt.Errorf("%w: DeleteSlot - delete slot: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSlot: deleted slot %d from facility %d", slotID, facilityID)
	return nil
}

// List возвращает слоты шаблона площадки, отсортированные по времени начала
func (s *Service) List(ctx context.Context, facilityID int64, onlyActive bool) ([]*domain.TemplateSlot, error) {
	if _, err := s.facilities.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("List: failed to load facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: List - load facility: %v", ErrInternal, err)
	}

	slots, err := s.slots.GetByFacility(ctx, facilityID, onlyActive)
	if err != nil {
		s.logger.Error("List: failed to load slots for facility %d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: List - load slots: %v", ErrInternal, err)
	}
	return slots, nil
}

// getFacilitySlot загружает слот и проверяет его принадлежность площадке
func (s *Service) getFacilitySlot(ctx context.Context, facilityID, slotID int64, op string) (*domain.TemplateSlot, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: failed to load slot %d: %v", op, slotID, err)
		return nil, fmt.Errorf("%w: %s - load slot: %v", ErrInternal, op, err)
	}
	if slot.FacilityID != facilityID {
		return nil, ErrSlotNotFound
	}
	return slot, nil
}

// buildSlot валидирует интервал и собирает доменный слот с автоматической меткой
func buildSlot(facilityID int64, iv SlotInterval) (*domain.TemplateSlot, error) {
	if err := iv.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, iv.StartTime)
	}
	if err := iv.EndTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, iv.EndTime)
	}
	if !iv.StartTime.IsBefore(iv.EndTime) {
		return nil, fmt.Errorf("%w: end time %s must be after start time %s", ErrInvalidInput, iv.EndTime, iv.StartTime)
	}

	return &domain.TemplateSlot{
		FacilityID: facilityID,
		StartTime:  iv.StartTime,
		EndTime:    iv.EndTime,
		Label:      domain.SlotLabel(iv.StartTime, iv.EndTime),
		IsActive:   true,
	}, nil
}

// checkOverlaps ищет пересечения новых слотов между собой и с существующими
func checkOverlaps(newSlots, existing []*domain.TemplateSlot) error {
	var pairs []OverlapPair

	for i := 0; i < len(newSlots); i++ {
		for j := i + 1; j < len(newSlots); j++ {
			if newSlots[i].Overlaps(newSlots[j]) {
				pairs = append(pairs, OverlapPair{First: newSlots[i].StartTime, Second: newSlots[j].StartTime})
			}
		}
		for _, e := range existing {
			if newSlots[i].Overlaps(e) {
				pairs = append(pairs, OverlapPair{First: newSlots[i].StartTime, Second: e.StartTime})
			}
		}
	}

	if len(pairs) > 0 {
		return &OverlapError{Pairs: pairs}
	}
	return nil
}

package batchlock

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	batchRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/batch"
	slotRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/slottemplate"
)

// Service закрепление слотов шаблона за тренировочными группами.
// Захват работает через условный UPDATE (is_active = true -> false),
// поэтому при конкуренции за один слот выигрывает ровно одна группа,
// без advisory-локов и без SELECT FOR UPDATE.
type Service struct {
	slots     SlotRepository
	batches   BatchRepository
	txManager TxManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса закрепления слотов
func NewService(slots SlotRepository, batches BatchRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		slots:     slots,
		batches:   batches,
		txManager: txManager,
		logger:    logger,
	}
}

// Acquire закрепляет слот за группой.
// Захват слота и привязка к группе выполняются в одной транзакции:
// при любой ошибке слот остается в исходном состоянии.
func (s *Service) Acquire(ctx context.Context, batchID, slotID int64) error {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, batchRepo.ErrBatchNotFound) {
			return ErrBatchNotFound
		}
		s.logger.Error("Acquire: failed to load batch %d: %v", batchID, err)
		return fmt.Errorf("%w: Acquire - load batch: %v", ErrInternal, err)
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Acquire: failed to load slot %d: %v", slotID, err)
		return fmt.Errorf("%w: Acquire - load slot: %v", ErrInternal, err)
	}
	if slot.FacilityID != batch.FacilityID {
		return ErrSlotMismatch
	}
	if batch.HasSlot() {
		if *batch.SlotID == slotID {
			// группа уже держит этот слот
			return nil
		}
		s.logger.Warn("Acquire: batch %d already holds slot %d, refusing to acquire slot %d", batchID, *batch.SlotID, slotID)
		return ErrSlotHeld
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.slots.AcquireLock(ctx, batch.FacilityID, slotID); err != nil {
			return err
		}
		return s.batches.UpdateSlotID(ctx, batchID, &slotID)
	})
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotLocked):
			s.logger.Warn("Acquire: slot %d already locked, batch %d lost the race", slotID, batchID)
			return ErrSlotLocked
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return ErrSlotNotFound
		case errors.Is(err, batchRepo.ErrSlotTaken):
			return ErrSlotLocked
		default:
			s.logger.Error("Acquire: transaction failed for batch %d, slot %d: %v", batchID, slotID, err)
			return fmt.Errorf("%w: Acquire - transaction: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Acquire: batch %d acquired slot %d on facility %d", batchID, slotID, batch.FacilityID)
	return nil
}

// Release возвращает слот группы в общий пул.
// Операция идемпотентна на уровне слота: повторное освобождение
// уже свободного слота не является ошибкой репозитория, но группа
// без слота получает ErrNoSlotHeld.
func (s *Service) Release(ctx context.Context, batchID int64) error {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, batchRepo.ErrBatchNotFound) {
			return ErrBatchNotFound
		}
		s.logger.Error("Release: failed to load batch %d: %v", batchID, err)
		return fmt.Errorf("%w: Release - load batch: %v", ErrInternal, err)
	}
	if !batch.HasSlot() {
		return ErrNoSlotHeld
	}
	slotID := *batch.SlotID

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.slots.ReleaseLock(ctx, batch.FacilityID, slotID); err != nil {
			return err
		}
		return s.batches.UpdateSlotID(ctx, batchID, nil)
	})
	if err != nil {
		s.logger.Error("Release: transaction failed for batch %d, slot %d: %v", batchID, slotID, err)
		return fmt.Errorf("%w: Release - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Release: batch %d released slot %d on facility %d", batchID, slotID, batch.FacilityID)
	return nil
}

// Transfer переводит группу со старого слота на новый.
// Последовательность: освободить старый, захватить новый; если захват
// нового не удался - компенсирующий повторный захват старого, чтобы
// группа не осталась вовсе без слота. Окно между освобождением и
// захватом намеренно допускает перехват старого слота другой группой.
func (s *Service) Transfer(ctx context.Context, batchID, newSlotID int64) error {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, batchRepo.ErrBatchNotFound) {
			return ErrBatchNotFound
		}
		s.logger.Error("Transfer: failed to load batch %d: %v", batchID, err)
		return fmt.Errorf("%w: Transfer - load batch: %v", ErrInternal, err)
	}
	if !batch.HasSlot() {
		return ErrNoSlotHeld
	}
	oldSlotID := *batch.SlotID
	if oldSlotID == newSlotID {
		return nil
	}

	newSlot, err := s.slots.GetByID(ctx, newSlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Transfer: failed to load slot %d: %v", newSlotID, err)
		return fmt.Errorf("%w: Transfer - load slot: %v", ErrInternal, err)
	}
	if newSlot.FacilityID != batch.FacilityID {
		return ErrSlotMismatch
	}

	if err := s.slots.ReleaseLock(ctx, batch.FacilityID, oldSlotID); err != nil {
		s.logger.Error("Transfer: failed to release old slot %d for batch %d: %v", oldSlotID, batchID, err)
		return fmt.Errorf("%w: Transfer - release old slot: %v", ErrInternal, err)
	}

	if err := s.slots.AcquireLock(ctx, batch.FacilityID, newSlotID); err != nil {
		// компенсация: пытаемся вернуть группе старый слот
		s.compensate(ctx, batchID, batch.FacilityID, oldSlotID)

		if errors.Is(err, slotRepo.ErrSlotLocked) {
			s.logger.Warn("Transfer: new slot %d already locked, batch %d keeps slot %d", newSlotID, batchID, oldSlotID)
			return ErrSlotLocked
		}
		s.logger.Error("Transfer: failed to acquire new slot %d for batch %d: %v", newSlotID, batchID, err)
		return fmt.Errorf("%w: Transfer - acquire new slot: %v", ErrInternal, err)
	}

	if err := s.batches.UpdateSlotID(ctx, batchID, &newSlotID); err != nil {
		// новый слот уже захвачен нами - освобождаем и возвращаем старый
		if relErr := s.slots.ReleaseLock(ctx, batch.FacilityID, newSlotID); relErr != nil {
			s.logger.Error("Transfer: failed to roll back new slot %d: %v", newSlotID, relErr)
		}
		s.compensate(ctx, batchID, batch.FacilityID, oldSlotID)

		s.logger.Error("Transfer: failed to rebind batch %d to slot %d: %v", batchID, newSlotID, err)
		return fmt.Errorf("%w: Transfer - rebind batch: %v", ErrInternal, err)
	}

	s.logger.Info("Transfer: batch %d moved from slot %d to slot %d", batchID, oldSlotID, newSlotID)
	return nil
}

// CreateBatch создает новую группу без закрепленного слота.
// Слот закрепляется отдельным вызовом Acquire.
func (s *Service) CreateBatch(ctx context.Context, batch *domain.Batch) (*domain.Batch, error) {
	if batch.FacilityID <= 0 {
		return nil, fmt.Errorf("%w: facility id is required", ErrInvalidInput)
	}
	if batch.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if batch.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	if batch.EndDate.Before(batch.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	batch.SlotID = nil
	created, err := s.batches.Create(ctx, batch)
	if err != nil {
		s.logger.Error("CreateBatch: failed to create batch for facility %d: %v", batch.FacilityID, err)
		return nil, fmt.Errorf("%w: CreateBatch - create: %v", ErrInternal, err)
	}
	s.logger.Info("CreateBatch: created batch %d (%s) for facility %d", created.ID, created.Name, created.FacilityID)
	return created, nil
}

// DeleteBatch удаляет группу. Захваченный слот возвращается в общий
// пул в той же транзакции, что и удаление.
func (s *Service) DeleteBatch(ctx context.Context, batchID int64) error {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, batchRepo.ErrBatchNotFound) {
			return ErrBatchNotFound
		}
		s.logger.Error("DeleteBatch: failed to load batch %d: %v", batchID, err)
		return fmt.Errorf("%w: DeleteBatch - load batch: %v", ErrInternal, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if batch.HasSlot() {
			if err := s.slots.ReleaseLock(ctx, batch.FacilityID, *batch.SlotID); err != nil {
				return err
			}
		}
		return s.batches.Delete(ctx, batchID)
	})
	if err != nil {
		s.logger.Error("DeleteBatch: transaction failed for batch %d: %v", batchID, err)
		return fmt.Errorf("%w: DeleteBatch - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBatch: deleted batch %d", batchID)
	return nil
}

// compensate возвращает группе старый слот после неудачного перевода.
// Старый слот могла успеть захватить другая группа: тогда группа
// остается без слота, и это фиксируется в логе для ручного разбора.
func (s *Service) compensate(ctx context.Context, batchID, facilityID, oldSlotID int64) {
	if err := s.slots.AcquireLock(ctx, facilityID, oldSlotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotLocked) {
			s.logger.Error("Transfer: old slot %d was taken during transfer, batch %d left without a slot", oldSlotID, batchID)
			if updErr := s.batches.UpdateSlotID(ctx, batchID, nil); updErr != nil {
				s.logger.Error("Transfer: failed to clear slot for batch %d: %v", batchID, updErr)
			}
			return
		}
		s.logger.Error("Transfer: failed to re-acquire old slot %d for batch %d: %v", oldSlotID, batchID, err)
	}
}

package facilities

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/facility"
)

// Service управление площадками: создание, список, смена статуса.
// Статус площадки учитывается при расчете доступности: maintenance и
// disabled закрывают все слоты разом без блокировок по датам.
type Service struct {
	facilities FacilityRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(facilities FacilityRepository, logger Logger) *Service {
	return &Service{
		facilities: facilities,
		logger:     logger,
	}
}

// Create создает новую площадку
func (s *Service) Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	if facility.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if facility.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate must be non-negative", ErrInvalidInput)
	}
	if facility.Status == "" {
		facility.Status = domain.FacilityActive
	}
	if !domain.ValidFacilityStatus(facility.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, facility.Status)
	}

	created, err := s.facilities.Create(ctx, facility)
	if err != nil {
		s.logger.Error("Create: failed to create facility %q: %v", facility.Name, err)
		return nil, fmt.Errorf("%w: Create - create facility: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created facility %d (%s)", created.ID, created.Name)
	return created, nil
}

// GetByID возвращает площадку по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	facility, err := s.facilities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetByID: failed to load facility %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - load facility: %v", ErrInternal, err)
	}
	return facility, nil
}

// List возвращает все площадки
func (s *Service) List(ctx context.Context) ([]*domain.Facility, error) {
	facilities, err := s.facilities.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to load facilities: %v", err)
		return nil, fmt.Errorf("%w: List - load facilities: %v", ErrInternal, err)
	}
	return facilities, nil
}

// UpdateStatus меняет статус площадки.
// Перевод в maintenance или disabled мгновенно закрывает все слоты
// для новых бронирований; уже созданные бронирования не трогаются.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.FacilityStatus) error {
	if !domain.ValidFacilityStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	if err := s.facilities.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return ErrFacilityNotFound
		}
		s.logger.Error("UpdateStatus: failed to update facility %d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - update facility: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: facility %d status set to %s", id, status)
	return nil
}

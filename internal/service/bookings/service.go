package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
)

// Service сервис для работы с созданными бронированиями: чтение,
// отмена, подтверждение оплаты. Создание живет в usecase/create_booking.
type Service struct {
	bookingRepo BookingRepository
	gateway     GatewayVerifier
	txManager   TxManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	gateway GatewayVerifier,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		gateway:     gateway,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только свои бронирования.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// GetFacilityBookings получает бронирования площадки с фильтрацией
// по периоду и статусу. Отмененные скрыты, пока фильтр не просит иначе.
func (s *Service) GetFacilityBookings(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	if filter.Status != nil && !domain.ValidBookingStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *filter.Status)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityBookings: repository error for facility=%d: %v", filter.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityBookings: fetched %d bookings for facility=%d", len(bookings), filter.FacilityID)
	return bookings, nil
}

// Cancel отменяет бронирование пользователя.
// Отмена и удаление строк резервации выполняются в одной транзакции:
// слоты освобождаются ровно в момент смены статуса. Сама запись
// бронирования сохраняется для истории.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64, reason string) error {
	if len(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", userID, bookingID)
		return ErrAccessDenied
	}
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.Cancel(ctx, bookingID, reason); err != nil {
			return err
		}
		return s.bookingRepo.ReleaseSlots(ctx, bookingID)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: transaction failed for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled by user=%d, %d slots released",
		bookingID, userID, len(booking.Slots))
	return nil
}

// ConfirmPayment подтверждает оплату gateway-бронирования по callback.
// Подпись сверяется до любых изменений; переход выполняется условным
// UPDATE только из статуса pending, поэтому повторный callback
// безопасен и возвращает ErrNotPending.
func (s *Service) ConfirmPayment(ctx context.Context, bookingID int64, orderID, paymentID, signature string) (*domain.Booking, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, fmt.Errorf("%w: orderId, paymentId and signature are required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ConfirmPayment: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ConfirmPayment: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ConfirmPayment - repository error: %v", ErrInternal, err)
	}

	if booking.GatewayOrderID == nil || *booking.GatewayOrderID != orderID {
		s.logger.Warn("ConfirmPayment: order id mismatch for booking id=%d", bookingID)
		return nil, ErrInvalidSignature
	}
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		s.logger.Warn("ConfirmPayment: signature verification failed for booking id=%d", bookingID)
		return nil, ErrInvalidSignature
	}

	if err := s.bookingRepo.ConfirmPayment(ctx, bookingID); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotPending):
			s.logger.Warn("ConfirmPayment: booking id=%d is not pending", bookingID)
			return nil, ErrNotPending
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		default:
			s.logger.Error("ConfirmPayment: repository error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: ConfirmPayment - repository error: %v", ErrInternal, err)
		}
	}

	confirmed, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("ConfirmPayment: failed to reload booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ConfirmPayment - reload booking: %v", ErrInternal, err)
	}

	s.logger.Info("ConfirmPayment: booking id=%d confirmed, payment id=%s", bookingID, paymentID)
	return confirmed, nil
}

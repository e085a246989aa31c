package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	bookings      map[int64]*domain.Booking
	slotsReleased map[int64]bool
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		bookings:      make(map[int64]*domain.Booking),
		slotsReleased: make(map[int64]bool),
	}
	for _, b := range bookings {
		f.bookings[b.ID] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByFacilityWithFilter(_ context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.FacilityID != filter.FacilityID {
			continue
		}
		if b.Status == domain.StatusCancelled && !filter.IncludeCancelled {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	return nil
}

func (f *fakeBookingRepo) ReleaseSlots(_ context.Context, bookingID int64) error {
	f.slotsReleased[bookingID] = true
	return nil
}

func (f *fakeBookingRepo) ConfirmPayment(_ context.Context, id int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.StatusPending {
		return bookingRepo.ErrNotPending
	}
	b.Status = domain.StatusConfirmed
	b.PaymentStatus = domain.PaymentPaid
	return nil
}

// fakeVerifier принимает единственную валидную подпись
type fakeVerifier struct {
	valid string
}

func (f fakeVerifier) VerifySignature(_, _, signature string) bool {
	return signature == f.valid
}

func strPtr(s string) *string { return &s }

func confirmedBooking(id, userID int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		Reference:     "ref-1",
		UserID:        userID,
		FacilityID:    1,
		Status:        domain.StatusConfirmed,
		PaymentMode:   domain.PaymentModeCash,
		PaymentStatus: domain.PaymentPaid,
		Slots:         []domain.BookedSlot{{StartTime: "07:00", EndTime: "08:00"}},
	}
}

func pendingGatewayBooking(id, userID int64) *domain.Booking {
	b := confirmedBooking(id, userID)
	b.Status = domain.StatusPending
	b.PaymentMode = domain.PaymentModeGateway
	b.PaymentStatus = domain.PaymentPending
	b.GatewayOrderID = strPtr("order_123")
	return b
}

func newTestService(repo *fakeBookingRepo) *Service {
	return NewService(repo, fakeVerifier{valid: "good-signature"}, passthroughTx{}, nopLogger{})
}

func TestGetByID_OwnerOnly(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1, 100))
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.GetByID(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)

	_, err = svc.GetByID(ctx, 1, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 42, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetFacilityBookings_Filter(t *testing.T) {
	cancelled := confirmedBooking(2, 100)
	cancelled.Status = domain.StatusCancelled
	repo := newFakeBookingRepo(confirmedBooking(1, 100), cancelled)
	svc := newTestService(repo)
	ctx := context.Background()

	out, err := svc.GetFacilityBookings(ctx, domain.FacilityBookingsFilter{FacilityID: 1})
	require.NoError(t, err)
	assert.Len(t, out, 1, "cancelled bookings hidden by default")

	out, err = svc.GetFacilityBookings(ctx, domain.FacilityBookingsFilter{FacilityID: 1, IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	bad := domain.BookingStatus("bogus")
	_, err = svc.GetFacilityBookings(ctx, domain.FacilityBookingsFilter{FacilityID: 1, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	start := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)
	_, err = svc.GetFacilityBookings(ctx, domain.FacilityBookingsFilter{FacilityID: 1, StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1, 100))
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Cancel(ctx, 1, 100, "change of plans"))

	cancelled := repo.bookings[1]
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "change of plans", *cancelled.CancellationReason)
	assert.True(t, repo.slotsReleased[1], "slots released together with cancellation")

	// Повторная отмена невозможна
	assert.ErrorIs(t, svc.Cancel(ctx, 1, 100, ""), ErrCannotCancel)
}

func TestCancel_Errors(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1, 100))
	svc := newTestService(repo)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Cancel(ctx, 42, 100, ""), ErrBookingNotFound)
	assert.ErrorIs(t, svc.Cancel(ctx, 1, 200, ""), ErrAccessDenied)

	longReason := strings.Repeat("x", domain.MaxCancellationReasonLength+1)
	assert.ErrorIs(t, svc.Cancel(ctx, 1, 100, longReason), ErrInvalidInput)
}

func TestConfirmPayment(t *testing.T) {
	repo := newFakeBookingRepo(pendingGatewayBooking(1, 100))
	svc := newTestService(repo)
	ctx := context.Background()

	confirmed, err := svc.ConfirmPayment(ctx, 1, "order_123", "pay_456", "good-signature")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, confirmed.Status)
	assert.Equal(t, domain.PaymentPaid, confirmed.PaymentStatus)

	// Повторный callback: бронирование уже не pending
	_, err = svc.ConfirmPayment(ctx, 1, "order_123", "pay_456", "good-signature")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestConfirmPayment_InvalidSignature(t *testing.T) {
	repo := newFakeBookingRepo(pendingGatewayBooking(1, 100))
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.ConfirmPayment(ctx, 1, "order_123", "pay_456", "forged")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// Бронирование осталось pending
	assert.Equal(t, domain.StatusPending, repo.bookings[1].Status)
}

func TestConfirmPayment_OrderMismatch(t *testing.T) {
	repo := newFakeBookingRepo(pendingGatewayBooking(1, 100))
	svc := newTestService(repo)

	_, err := svc.ConfirmPayment(context.Background(), 1, "order_other", "pay_456", "good-signature")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConfirmPayment_Validation(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(pendingGatewayBooking(1, 100)))
	ctx := context.Background()

	_, err := svc.ConfirmPayment(ctx, 1, "", "pay", "sig")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ConfirmPayment(ctx, 42, "order", "pay", "sig")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	blockedRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/blockeddates"
	facilityRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeFacilities struct {
	facility *domain.Facility
}

func (f *fakeFacilities) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	if f.facility == nil || f.facility.ID != id {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return f.facility, nil
}

type fakeSlots struct {
	slots []*domain.TemplateSlot
}

func (f *fakeSlots) GetByFacility(_ context.Context, _ int64, _ bool) ([]*domain.TemplateSlot, error) {
	return f.slots, nil
}

type fakeBlocked struct {
	entry *domain.BlockedDateEntry
}

func (f *fakeBlocked) GetByFacilityAndDate(_ context.Context, _ int64, _ time.Time) (*domain.BlockedDateEntry, error) {
	if f.entry == nil {
		return nil, blockedRepo.ErrEntryNotFound
	}
	return f.entry, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
}

func (f *fakeBookings) GetByFacilityWithFilter(_ context.Context, _ domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func activeFacility() *domain.Facility {
	return &domain.Facility{ID: 1, Name: "Main Arena", Status: domain.FacilityActive}
}

func morningTemplate() []*domain.TemplateSlot {
	return []*domain.TemplateSlot{
		{ID: 1, FacilityID: 1, StartTime: "07:00", EndTime: "08:00", Label: "07:00 AM - 08:00 AM", IsActive: true},
		{ID: 2, FacilityID: 1, StartTime: "08:00", EndTime: "09:00", Label: "08:00 AM - 09:00 AM", IsActive: true},
		{ID: 3, FacilityID: 1, StartTime: "09:00", EndTime: "10:00", Label: "09:00 AM - 10:00 AM", IsActive: true},
	}
}

func booking(status domain.BookingStatus, times ...string) *domain.Booking {
	b := &domain.Booking{ID: 1, FacilityID: 1, Status: status}
	for _, t := range times {
		start := types.TimeString(t)
		end, _ := start.AddMinutes(60)
		b.Slots = append(b.Slots, domain.BookedSlot{StartTime: start, EndTime: end})
	}
	return b
}

func newTestUseCase(facility *domain.Facility, blocked *domain.BlockedDateEntry, bookings []*domain.Booking) *UseCase {
	return NewUseCase(
		&fakeFacilities{facility: facility},
		&fakeSlots{slots: morningTemplate()},
		&fakeBlocked{entry: blocked},
		&fakeBookings{bookings: bookings},
		nopLogger{},
	)
}

func testRequest() *Request {
	return &Request{FacilityID: 1, Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)}
}

func statusByStart(t *testing.T, slots []domain.SlotAvailability, start types.TimeString) domain.SlotAvailability {
	t.Helper()
	for _, s := range slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("slot %s not found in response", start)
	return domain.SlotAvailability{}
}

func TestExecute_AllAvailable(t *testing.T) {
	uc := newTestUseCase(activeFacility(), nil, nil)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.SlotAvailable, s.Status)
		assert.Empty(t, s.Reason)
	}
}

func TestExecute_FacilityMaintenance(t *testing.T) {
	facility := activeFacility()
	facility.Status = domain.FacilityMaintenance
	uc := newTestUseCase(facility, nil, nil)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.SlotBlocked, s.Status)
		assert.Equal(t, "facility under maintenance", s.Reason)
	}
}

func TestExecute_FacilityDisabled(t *testing.T) {
	facility := activeFacility()
	facility.Status = domain.FacilityDisabled
	uc := newTestUseCase(facility, nil, nil)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.SlotBlocked, s.Status)
		assert.Equal(t, "facility disabled", s.Reason)
	}
}

func TestExecute_BlockedSlot(t *testing.T) {
	entry := &domain.BlockedDateEntry{
		ID:         1,
		FacilityID: 1,
		Slots: []domain.BlockedSlot{
			{StartTime: "07:00", Reason: "private event"},
			{StartTime: "08:00"},
		},
	}
	uc := newTestUseCase(activeFacility(), entry, nil)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	first := statusByStart(t, resp.Slots, "07:00")
	assert.Equal(t, domain.SlotBlocked, first.Status)
	assert.Equal(t, "private event", first.Reason)

	// Без причины - generic reason
	second := statusByStart(t, resp.Slots, "08:00")
	assert.Equal(t, domain.SlotBlocked, second.Status)
	assert.Equal(t, "blocked", second.Reason)

	assert.Equal(t, domain.SlotAvailable, statusByStart(t, resp.Slots, "09:00").Status)
}

func TestExecute_BookedSlot(t *testing.T) {
	bookings := []*domain.Booking{booking(domain.StatusConfirmed, "08:00")}
	uc := newTestUseCase(activeFacility(), nil, bookings)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.SlotAvailable, statusByStart(t, resp.Slots, "07:00").Status)
	assert.Equal(t, domain.SlotBooked, statusByStart(t, resp.Slots, "08:00").Status)
	assert.Equal(t, domain.SlotAvailable, statusByStart(t, resp.Slots, "09:00").Status)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	bookings := []*domain.Booking{booking(domain.StatusCancelled, "08:00")}
	uc := newTestUseCase(activeFacility(), nil, bookings)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, statusByStart(t, resp.Slots, "08:00").Status)
}

func TestExecute_BlockWinsOverBooking(t *testing.T) {
	// Приоритет: ручная блокировка важнее бронирования
	entry := &domain.BlockedDateEntry{ID: 1, FacilityID: 1, Slots: []domain.BlockedSlot{{StartTime: "08:00"}}}
	bookings := []*domain.Booking{booking(domain.StatusConfirmed, "08:00")}
	uc := newTestUseCase(activeFacility(), entry, bookings)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBlocked, statusByStart(t, resp.Slots, "08:00").Status)
}

func TestExecute_Idempotent(t *testing.T) {
	entry := &domain.BlockedDateEntry{ID: 1, FacilityID: 1, Slots: []domain.BlockedSlot{{StartTime: "07:00"}}}
	bookings := []*domain.Booking{booking(domain.StatusPending, "09:00")}
	uc := newTestUseCase(activeFacility(), entry, bookings)
	ctx := context.Background()

	first, err := uc.Execute(ctx, testRequest())
	require.NoError(t, err)
	second, err := uc.Execute(ctx, testRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(activeFacility(), nil, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{FacilityID: 0, Date: testRequest().Date})
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = uc.Execute(ctx, &Request{FacilityID: 1})
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = uc.Execute(ctx, &Request{FacilityID: 42, Date: testRequest().Date})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

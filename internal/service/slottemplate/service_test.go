package slottemplate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	batchRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/batch"
	facilityRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/facility"
	slotRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/slottemplate"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeSlotRepo struct {
	slots  map[int64]*domain.TemplateSlot
	nextID int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[int64]*domain.TemplateSlot)}
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.TemplateSlot) ([]*domain.TemplateSlot, error) {
	created := make([]*domain.TemplateSlot, 0, len(slots))
	for _, s := range slots {
		f.nextID++
		stored := *s
		stored.ID = f.nextID
		f.slots[stored.ID] = &stored
		created = append(created, &stored)
	}
	return created, nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.TemplateSlot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

func (f *fakeSlotRepo) GetByFacility(_ context.Context, facilityID int64, onlyActive bool) ([]*domain.TemplateSlot, error) {
	var out []*domain.TemplateSlot
	for _, s := range f.slots {
		if s.FacilityID == facilityID && (!onlyActive || s.IsActive) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) Update(_ context.Context, slot *domain.TemplateSlot) error {
	if _, ok := f.slots[slot.ID]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	stored := *slot
	f.slots[slot.ID] = &stored
	return nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(f.slots, id)
	return nil
}

type fakeFacilityRepo struct {
	facilities map[int64]*domain.Facility
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	fac, ok := f.facilities[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return fac, nil
}

type fakeBookingCounter struct {
	counts map[types.TimeString]int
}

func (f *fakeBookingCounter) CountActiveBySlotTime(_ context.Context, _ int64, startTime types.TimeString, _ time.Time) (int, error) {
	return f.counts[startTime], nil
}

type fakeBatchLookup struct {
	bySlot map[int64]*domain.Batch
}

func (f *fakeBatchLookup) GetBySlotID(_ context.Context, slotID int64) (*domain.Batch, error) {
	b, ok := f.bySlot[slotID]
	if !ok {
		return nil, batchRepo.ErrBatchNotFound
	}
	return b, nil
}

func newTestService(slots *fakeSlotRepo, bookings *fakeBookingCounter, batches *fakeBatchLookup) *Service {
	if bookings == nil {
		bookings = &fakeBookingCounter{counts: map[types.TimeString]int{}}
	}
	if batches == nil {
		batches = &fakeBatchLookup{bySlot: map[int64]*domain.Batch{}}
	}
	facilities := &fakeFacilityRepo{facilities: map[int64]*domain.Facility{
		1: {ID: 1, Name: "Main Arena", Status: domain.FacilityActive},
	}}
	return &Service{
		slots:        slots,
		facilities:   facilities,
		bookings:     bookings,
		batches:      batches,
		timeProvider: fixedTime{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)},
		logger:       nopLogger{},
	}
}

func interval(start, end string) SlotInterval {
	return SlotInterval{StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
}

func TestDefineSlots_Success(t *testing.T) {
	slots := newFakeSlotRepo()
	svc := newTestService(slots, nil, nil)

	created, err := svc.DefineSlots(context.Background(), 1, []SlotInterval{
		interval("07:00", "08:00"),
		interval("08:00", "09:00"),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "07:00 AM - 08:00 AM", created[0].Label)
	assert.True(t, created[0].IsActive)
}

func TestDefineSlots_FacilityNotFound(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), nil, nil)

	_, err := svc.DefineSlots(context.Background(), 99, []SlotInterval{interval("07:00", "08:00")})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestDefineSlots_InvalidIntervals(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.DefineSlots(ctx, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.DefineSlots(ctx, 1, []SlotInterval{interval("7:00", "08:00")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Конец раньше начала
	_, err = svc.DefineSlots(ctx, 1, []SlotInterval{interval("09:00", "08:00")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Нулевая длительность
	_, err = svc.DefineSlots(ctx, 1, []SlotInterval{interval("08:00", "08:00")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDefineSlots_OverlapWithinRequest(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), nil, nil)

	_, err := svc.DefineSlots(context.Background(), 1, []SlotInterval{
		interval("07:00", "08:30"),
		interval("08:00", "09:00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotOverlap)

	var overlapErr *OverlapError
	require.ErrorAs(t, err, &overlapErr)
	require.Len(t, overlapErr.Pairs, 1)
	assert.Equal(t, types.TimeString("07:00"), overlapErr.Pairs[0].First)
	assert.Equal(t, types.TimeString("08:00"), overlapErr.Pairs[0].Second)
}

func TestDefineSlots_OverlapWithExisting(t *testing.T) {
	slots := newFakeSlotRepo()
	svc := newTestService(slots, nil, nil)
	ctx := context.Background()

	_, err := svc.DefineSlots(ctx, 1, []SlotInterval{interval("07:00", "08:00")})
	require.NoError(t, err)

	_, err = svc.DefineSlots(ctx, 1, []SlotInterval{interval("07:30", "08:30")})
	assert.ErrorIs(t, err, ErrSlotOverlap)

	// Граничащий интервал проходит
	created, err := svc.DefineSlots(ctx, 1, []SlotInterval{interval("08:00", "09:00")})
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestDefineSlots_OverlapWithLockedSlot(t *testing.T) {
	slots := newFakeSlotRepo()
	svc := newTestService(slots, nil, nil)
	ctx := context.Background()

	created, err := svc.DefineSlots(ctx, 1, []SlotInterval{interval("07:00", "08:00")})
	require.NoError(t, err)

	// Слот закреплен за группой и скрыт из активного пула
	slots.slots[created[0].ID].IsActive = false

	_, err = svc.DefineSlots(ctx, 1, []SlotInterval{interval("07:30", "08:30")})
	assert.ErrorIs(t, err, ErrSlotOverlap, "locked slot still occupies its interval")

	_, err = svc.UpdateSlot(ctx, 1, mustDefine(t, svc, "09:00", "10:00").ID, interval("07:30", "08:30"))
	assert.ErrorIs(t, err, ErrSlotOverlap)
}

func mustDefine(t *testing.T, svc *Service, start, end string) *domain.TemplateSlot {
	t.Helper()
	created, err := svc.DefineSlots(context.Background(), 1, []SlotInterval{interval(start, end)})
	require.NoError(t, err)
	return created[0]
}

func TestUpdateSlot_Success(t *testing.T) {
	slots := newFakeSlotRepo()
	svc := newTestService(slots, nil, nil)
	ctx := context.Background()

	created, err := svc.DefineSlots(ctx, 1, []SlotInterval{
		interval("07:00", "08:00"),
		interval("08:00", "09:00"),
	})
	require.NoError(t, err)

	// Сдвиг без пересечения с соседним слотом
	updated, err := svc.UpdateSlot(ctx, 1, created[0].ID, interval("06:00", "07:00"))
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("06:00"), updated.StartTime)
	assert.Equal(t, "06:00 AM - 07:00 AM", updated.Label)
}

func TestUpdateSlot_OverlapExcludesSelf(t *testing.T) {
	slots := newFakeSlotRepo()
	svc := newTestService(slots, nil, nil)
	ctx := context.Background()

	created, err := svc.DefineSlots(ctx, 1, []SlotInterval{
		interval("07:00", "08:00"),
		interval("08:00", "09:00"),
	})
	require.NoError(t, err)

	// Пересечение с самим собой не считается
	_, err = svc.UpdateSlot(ctx, 1, created[0].ID, interval("07:15", "07:45"))
	require.NoError(t, err)

	// Пересечение с соседом - ошибка
	_, err = svc.UpdateSlot(ctx, 1, created[0].ID, interval("07:30", "08:30"))
	assert.ErrorIs(t, err, ErrSlotOverlap)
}

func TestUpdateSlot_WrongFacility(t *testing.T) {
	slots := newFakeSlotRepo()
	svc := newTestService(slots, nil, nil)
	ctx := context.Background()

	created, err := svc.DefineSlots(ctx, 1, []SlotInterval{interval("07:00", "08:00")})
	require.NoError(t, err)

	// Слот другой площадки невидим
	_, err = svc.UpdateSlot(ctx, 2, created[0].ID, interval("09:00", "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDeleteSlot_Success(t *testing.T) {
	slots := newFakeSlotRepo()
	svc := newTestService(slots, nil, nil)
	ctx := context.Background()

	created, err := svc.DefineSlots(ctx, 1, []SlotInterval{interval("07:00", "08:00")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSlot(ctx, 1, created[0].ID))

	_, err = slots.GetByID(ctx, created[0].ID)
	assert.ErrorIs(t, err, slotRepo.ErrSlotNotFound)
}

func TestDeleteSlot_WithActiveBookings(t *testing.T) {
	slots := newFakeSlotRepo()
	bookings := &fakeBookingCounter{counts: map[types.TimeString]int{"07:00": 2}}
	svc := newTestService(slots, bookings, nil)
	ctx := context.Background()

	created, err := svc.DefineSlots(ctx, 1, []SlotInterval{interval("07:00", "08:00")})
	require.NoError(t, err)

	err = svc.DeleteSlot(ctx, 1, created[0].ID)
	assert.ErrorIs(t, err, ErrSlotInUse)
}

func TestDeleteSlot_AttachedToBatch(t *testing.T) {
	slots := newFakeSlotRepo()
	svc := newTestService(slots, nil, nil)
	ctx := context.Background()

	created, err := svc.DefineSlots(ctx, 1, []SlotInterval{interval("07:00", "08:00")})
	require.NoError(t, err)

	batches := &fakeBatchLookup{bySlot: map[int64]*domain.Batch{
		created[0].ID: {ID: 10, FacilityID: 1},
	}}
	svc.batches = batches

	err = svc.DeleteSlot(ctx, 1, created[0].ID)
	assert.ErrorIs(t, err, ErrSlotInUse)
}

func TestList(t *testing.T) {
	slots := newFakeSlotRepo()
	svc := newTestService(slots, nil, nil)
	ctx := context.Background()

	_, err := svc.DefineSlots(ctx, 1, []SlotInterval{
		interval("07:00", "08:00"),
		interval("08:00", "09:00"),
	})
	require.NoError(t, err)

	listed, err := svc.List(ctx, 1, true)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	_, err = svc.List(ctx, 99, true)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

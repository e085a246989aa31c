package batchlock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	batchRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/batch"
	slotRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/slottemplate"
)

func int64Ptr(v int64) *int64 { return &v }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// passthroughTx выполняет функцию без реальной транзакции
type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeLockSlotRepo эмулирует условный захват: is_active true -> false
type fakeLockSlotRepo struct {
	slots map[int64]*domain.TemplateSlot
}

func (f *fakeLockSlotRepo) GetByID(_ context.Context, id int64) (*domain.TemplateSlot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

func (f *fakeLockSlotRepo) AcquireLock(_ context.Context, facilityID, slotID int64) error {
	s, ok := f.slots[slotID]
	if !ok || s.FacilityID != facilityID {
		return slotRepo.ErrSlotNotFound
	}
	if !s.IsActive {
		return slotRepo.ErrSlotLocked
	}
	s.IsActive = false
	return nil
}

func (f *fakeLockSlotRepo) ReleaseLock(_ context.Context, facilityID, slotID int64) error {
	s, ok := f.slots[slotID]
	if !ok || s.FacilityID != facilityID {
		return slotRepo.ErrSlotNotFound
	}
	s.IsActive = true
	return nil
}

type fakeBatchRepo struct {
	batches map[int64]*domain.Batch
	nextID  int64

	failUpdateFor int64 // UpdateSlotID с этим batchID возвращает ошибку
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[int64]*domain.Batch)}
}

func (f *fakeBatchRepo) Create(_ context.Context, b *domain.Batch) (*domain.Batch, error) {
	f.nextID++
	stored := *b
	stored.ID = f.nextID
	f.batches[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeBatchRepo) GetByID(_ context.Context, id int64) (*domain.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return nil, batchRepo.ErrBatchNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBatchRepo) UpdateSlotID(_ context.Context, batchID int64, slotID *int64) error {
	if f.failUpdateFor == batchID {
		return assert.AnError
	}
	b, ok := f.batches[batchID]
	if !ok {
		return batchRepo.ErrBatchNotFound
	}
	b.SlotID = slotID
	return nil
}

func (f *fakeBatchRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.batches[id]; !ok {
		return batchRepo.ErrBatchNotFound
	}
	delete(f.batches, id)
	return nil
}

func newTestEnv() (*Service, *fakeLockSlotRepo, *fakeBatchRepo) {
	slots := &fakeLockSlotRepo{slots: map[int64]*domain.TemplateSlot{
		1: {ID: 1, FacilityID: 1, StartTime: "07:00", EndTime: "08:00", IsActive: true},
		2: {ID: 2, FacilityID: 1, StartTime: "08:00", EndTime: "09:00", IsActive: true},
		3: {ID: 3, FacilityID: 2, StartTime: "07:00", EndTime: "08:00", IsActive: true},
	}}
	batches := newFakeBatchRepo()
	svc := NewService(slots, batches, passthroughTx{}, nopLogger{})
	return svc, slots, batches
}

func createBatch(t *testing.T, svc *Service, facilityID int64) *domain.Batch {
	t.Helper()
	created, err := svc.CreateBatch(context.Background(), &domain.Batch{FacilityID: facilityID, Name: "Morning group", Capacity: 12})
	require.NoError(t, err)
	return created
}

func TestCreateBatch_Validation(t *testing.T) {
	svc, _, _ := newTestEnv()
	ctx := context.Background()

	_, err := svc.CreateBatch(ctx, &domain.Batch{Name: "Morning group", Capacity: 12})
	assert.ErrorIs(t, err, ErrInvalidInput, "missing facility")

	_, err = svc.CreateBatch(ctx, &domain.Batch{FacilityID: 1, Capacity: 12})
	assert.ErrorIs(t, err, ErrInvalidInput, "missing name")

	_, err = svc.CreateBatch(ctx, &domain.Batch{FacilityID: 1, Name: "Morning group"})
	assert.ErrorIs(t, err, ErrInvalidInput, "zero capacity")

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.CreateBatch(ctx, &domain.Batch{
		FacilityID: 1, Name: "Morning group", Capacity: 12,
		StartDate: start, EndDate: start.Add(-24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "end before start")
}

func TestCreateBatch_StartsWithoutSlot(t *testing.T) {
	svc, _, _ := newTestEnv()

	created, err := svc.CreateBatch(context.Background(), &domain.Batch{
		FacilityID: 1, Name: "Morning group", Capacity: 12, SlotID: int64Ptr(1),
	})
	require.NoError(t, err)
	assert.Nil(t, created.SlotID, "slot is acquired separately")
}

func TestAcquire_Success(t *testing.T) {
	svc, slots, batches := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)

	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))

	// Слот скрыт из общего пула, группа привязана
	assert.False(t, slots.slots[1].IsActive)
	stored, err := batches.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SlotID)
	assert.Equal(t, int64(1), *stored.SlotID)
}

func TestAcquire_Contention(t *testing.T) {
	svc, _, _ := newTestEnv()
	ctx := context.Background()
	first := createBatch(t, svc, 1)
	second := createBatch(t, svc, 1)

	require.NoError(t, svc.Acquire(ctx, first.ID, 1))

	// Проигравший получает ErrSlotLocked, привязка не меняется
	err := svc.Acquire(ctx, second.ID, 1)
	assert.ErrorIs(t, err, ErrSlotLocked)
}

func TestAcquire_Idempotent(t *testing.T) {
	svc, _, _ := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)

	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))
	// Повторный захват того же слота той же группой: no-op
	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))
}

func TestAcquire_AnotherSlotHeld(t *testing.T) {
	svc, slots, batches := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)

	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))

	// Захват второго слота без освобождения первого запрещен:
	// иначе первый слот навсегда выпал бы из пула
	assert.ErrorIs(t, svc.Acquire(ctx, batch.ID, 2), ErrSlotHeld)

	stored, err := batches.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SlotID)
	assert.Equal(t, int64(1), *stored.SlotID, "batch keeps its original slot")
	assert.False(t, slots.slots[1].IsActive)
	assert.True(t, slots.slots[2].IsActive, "second slot untouched")
}

func TestAcquire_Errors(t *testing.T) {
	svc, _, _ := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)

	assert.ErrorIs(t, svc.Acquire(ctx, 999, 1), ErrBatchNotFound)
	assert.ErrorIs(t, svc.Acquire(ctx, batch.ID, 999), ErrSlotNotFound)
	// Слот чужой площадки
	assert.ErrorIs(t, svc.Acquire(ctx, batch.ID, 3), ErrSlotMismatch)
}

func TestRelease(t *testing.T) {
	svc, slots, batches := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)

	assert.ErrorIs(t, svc.Release(ctx, batch.ID), ErrNoSlotHeld)

	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))
	require.NoError(t, svc.Release(ctx, batch.ID))

	assert.True(t, slots.slots[1].IsActive)
	stored, err := batches.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.SlotID)
}

func TestTransfer_Success(t *testing.T) {
	svc, slots, batches := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)
	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))

	require.NoError(t, svc.Transfer(ctx, batch.ID, 2))

	assert.True(t, slots.slots[1].IsActive, "old slot returns to the pool")
	assert.False(t, slots.slots[2].IsActive, "new slot is locked")
	stored, err := batches.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SlotID)
	assert.Equal(t, int64(2), *stored.SlotID)
}

func TestTransfer_SameSlotNoop(t *testing.T) {
	svc, _, _ := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)
	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))

	require.NoError(t, svc.Transfer(ctx, batch.ID, 1))
}

func TestTransfer_NewSlotLocked_Compensates(t *testing.T) {
	svc, slots, batches := newTestEnv()
	ctx := context.Background()
	mover := createBatch(t, svc, 1)
	holder := createBatch(t, svc, 1)
	require.NoError(t, svc.Acquire(ctx, mover.ID, 1))
	require.NoError(t, svc.Acquire(ctx, holder.ID, 2))

	// Новый слот занят другой группой: перевод откатывается
	err := svc.Transfer(ctx, mover.ID, 2)
	assert.ErrorIs(t, err, ErrSlotLocked)

	// Группа сохранила старый слот
	assert.False(t, slots.slots[1].IsActive)
	stored, err := batches.GetByID(ctx, mover.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SlotID)
	assert.Equal(t, int64(1), *stored.SlotID)
}

func TestTransfer_RebindFails_RollsBackNewSlot(t *testing.T) {
	svc, slots, batches := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)
	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))

	batches.failUpdateFor = batch.ID

	err := svc.Transfer(ctx, batch.ID, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	// Новый слот освобожден, старый захвачен обратно
	assert.True(t, slots.slots[2].IsActive)
	assert.False(t, slots.slots[1].IsActive)
}

func TestTransfer_Errors(t *testing.T) {
	svc, _, _ := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)

	assert.ErrorIs(t, svc.Transfer(ctx, 999, 2), ErrBatchNotFound)
	assert.ErrorIs(t, svc.Transfer(ctx, batch.ID, 2), ErrNoSlotHeld)

	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))
	assert.ErrorIs(t, svc.Transfer(ctx, batch.ID, 999), ErrSlotNotFound)
	assert.ErrorIs(t, svc.Transfer(ctx, batch.ID, 3), ErrSlotMismatch)
}

func TestDeleteBatch_ReleasesSlot(t *testing.T) {
	svc, slots, batches := newTestEnv()
	ctx := context.Background()
	batch := createBatch(t, svc, 1)
	require.NoError(t, svc.Acquire(ctx, batch.ID, 1))

	require.NoError(t, svc.DeleteBatch(ctx, batch.ID))

	assert.True(t, slots.slots[1].IsActive, "slot returns to the pool on deletion")
	_, err := batches.GetByID(ctx, batch.ID)
	assert.ErrorIs(t, err, batchRepo.ErrBatchNotFound)

	assert.ErrorIs(t, svc.DeleteBatch(ctx, batch.ID), ErrBatchNotFound)
}

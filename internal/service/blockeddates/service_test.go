package blockeddates

import (
	"context"
	"strings"
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

type entryKey struct {
	facilityID int64
	date       string
}

// fakeBlockedRepo in-memory репозиторий записей блокировок
type fakeBlockedRepo struct {
	entries map[int64]*domain.BlockedDateEntry
	byDate  map[entryKey]int64
	nextID  int64
}

func newFakeBlockedRepo() *fakeBlockedRepo {
	return &fakeBlockedRepo{
		entries: make(map[int64]*domain.BlockedDateEntry),
		byDate:  make(map[entryKey]int64),
	}
}

func (f *fakeBlockedRepo) UpsertEntry(_ context.Context, facilityID int64, date time.Time) (int64, error) {
	key := entryKey{facilityID, date.Format(domain.DateFormat)}
	if id, ok := f.byDate[key]; ok {
		return id, nil
	}
	f.nextID++
	f.entries[f.nextID] = &domain.BlockedDateEntry{ID: f.nextID, FacilityID: facilityID, Date: date}
	f.byDate[key] = f.nextID
	return f.nextID, nil
}

func (f *fakeBlockedRepo) AddSlots(_ context.Context, entryID int64, slots []domain.BlockedSlot) error {
	entry := f.entries[entryID]
	for _, s := range slots {
		if entry.Contains(s.StartTime) {
			continue // идемпотентность как у ON CONFLICT DO NOTHING
		}
		entry.Slots = append(entry.Slots, s)
	}
	return nil
}

func (f *fakeBlockedRepo) GetByFacilityAndDate(_ context.Context, facilityID int64, date time.Time) (*domain.BlockedDateEntry, error) {
	key := entryKey{facilityID, date.Format(domain.DateFormat)}
	id, ok := f.byDate[key]
	if !ok {
		return nil, blockedRepo.ErrEntryNotFound
	}
	return f.entries[id], nil
}

func (f *fakeBlockedRepo) GetByID(_ context.Context, entryID int64) (*domain.BlockedDateEntry, error) {
	entry, ok := f.entries[entryID]
	if !ok {
		return nil, blockedRepo.ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakeBlockedRepo) RemoveSlot(_ context.Context, entryID int64, startTime types.TimeString) error {
	entry := f.entries[entryID]
	kept := entry.Slots[:0]
	for _, s := range entry.Slots {
		if s.StartTime != startTime {
			kept = append(kept, s)
		}
	}
	entry.Slots = kept
	return nil
}

func (f *fakeBlockedRepo) CountSlots(_ context.Context, entryID int64) (int, error) {
	return len(f.entries[entryID].Slots), nil
}

func (f *fakeBlockedRepo) DeleteEntry(_ context.Context, entryID int64) error {
	entry, ok := f.entries[entryID]
	if !ok {
		return blockedRepo.ErrEntryNotFound
	}
	delete(f.byDate, entryKey{entry.FacilityID, entry.Date.Format(domain.DateFormat)})
	delete(f.entries, entryID)
	return nil
}

type fakeSlotLister struct {
	slots []*domain.TemplateSlot
}

func (f *fakeSlotLister) GetByFacility(_ context.Context, _ int64, _ bool) ([]*domain.TemplateSlot, error) {
	return f.slots, nil
}

type fakeFacilityRepo struct{}

func (fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	if id != 1 {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return &domain.Facility{ID: 1, Name: "Main Arena", Status: domain.FacilityActive}, nil
}

func newTestService(blocked *fakeBlockedRepo) *Service {
	template := []*domain.TemplateSlot{
		{ID: 1, FacilityID: 1, StartTime: "07:00", EndTime: "08:00", IsActive: true},
		{ID: 2, FacilityID: 1, StartTime: "08:00", EndTime: "09:00", IsActive: true},
		{ID: 3, FacilityID: 1, StartTime: "18:00", EndTime: "19:00", IsActive: true},
	}
	return NewService(blocked, &fakeSlotLister{slots: template}, fakeFacilityRepo{}, nopLogger{})
}

func testDate() time.Time {
	return time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
}

func TestBlockSlots_Success(t *testing.T) {
	blocked := newFakeBlockedRepo()
	svc := newTestService(blocked)

	entry, err := svc.BlockSlots(context.Background(), 1, testDate(), []domain.BlockedSlot{
		{StartTime: "07:00", Reason: "maintenance"},
		{StartTime: "18:00"},
	})
	require.NoError(t, err)
	require.Len(t, entry.Slots, 2)
	assert.True(t, entry.Contains("07:00"))
	assert.True(t, entry.Contains("18:00"))
}

func TestBlockSlots_Idempotent(t *testing.T) {
	blocked := newFakeBlockedRepo()
	svc := newTestService(blocked)
	ctx := context.Background()

	_, err := svc.BlockSlots(ctx, 1, testDate(), []domain.BlockedSlot{{StartTime: "07:00"}})
	require.NoError(t, err)

	// Повторная блокировка того же слота плюс новый
	entry, err := svc.BlockSlots(ctx, 1, testDate(), []domain.BlockedSlot{
		{StartTime: "07:00"},
		{StartTime: "08:00"},
	})
	require.NoError(t, err)
	assert.Len(t, entry.Slots, 2)
}

func TestBlockSlots_NotInTemplate(t *testing.T) {
	blocked := newFakeBlockedRepo()
	svc := newTestService(blocked)

	_, err := svc.BlockSlots(context.Background(), 1, testDate(), []domain.BlockedSlot{
		{StartTime: "07:00"},
		{StartTime: "11:00"},
		{StartTime: "12:00"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSlots)

	var invalidErr *InvalidSlotsError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, []types.TimeString{"11:00", "12:00"}, invalidErr.StartTimes)

	// Ни один слот не заблокирован
	_, err = blocked.GetByFacilityAndDate(context.Background(), 1, testDate())
	assert.ErrorIs(t, err, blockedRepo.ErrEntryNotFound)
}

func TestBlockSlots_Validation(t *testing.T) {
	svc := newTestService(newFakeBlockedRepo())
	ctx := context.Background()

	_, err := svc.BlockSlots(ctx, 1, testDate(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.BlockSlots(ctx, 1, testDate(), []domain.BlockedSlot{{StartTime: "7:00"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	longReason := strings.Repeat("x", domain.MaxBlockReasonLength+1)
	_, err = svc.BlockSlots(ctx, 1, testDate(), []domain.BlockedSlot{{StartTime: "07:00", Reason: longReason}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.BlockSlots(ctx, 99, testDate(), []domain.BlockedSlot{{StartTime: "07:00"}})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestUnblockSlot(t *testing.T) {
	blocked := newFakeBlockedRepo()
	svc := newTestService(blocked)
	ctx := context.Background()

	entry, err := svc.BlockSlots(ctx, 1, testDate(), []domain.BlockedSlot{
		{StartTime: "07:00"},
		{StartTime: "08:00"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UnblockSlot(ctx, entry.ID, "07:00"))

	reloaded, err := blocked.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Contains("07:00"))
	assert.True(t, reloaded.Contains("08:00"))

	// Слот уже разблокирован
	assert.ErrorIs(t, svc.UnblockSlot(ctx, entry.ID, "07:00"), ErrSlotNotBlocked)
}

func TestUnblockSlot_DeletesEmptyEntry(t *testing.T) {
	blocked := newFakeBlockedRepo()
	svc := newTestService(blocked)
	ctx := context.Background()

	entry, err := svc.BlockSlots(ctx, 1, testDate(), []domain.BlockedSlot{{StartTime: "07:00"}})
	require.NoError(t, err)

	require.NoError(t, svc.UnblockSlot(ctx, entry.ID, "07:00"))

	// Последний слот снят - запись удалена целиком
	_, err = blocked.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, blockedRepo.ErrEntryNotFound)
}

func TestUnblockSlot_EntryNotFound(t *testing.T) {
	svc := newTestService(newFakeBlockedRepo())
	assert.ErrorIs(t, svc.UnblockSlot(context.Background(), 42, "07:00"), ErrEntryNotFound)
}

func TestUnblockAll(t *testing.T) {
	blocked := newFakeBlockedRepo()
	svc := newTestService(blocked)
	ctx := context.Background()

	entry, err := svc.BlockSlots(ctx, 1, testDate(), []domain.BlockedSlot{
		{StartTime: "07:00"},
		{StartTime: "08:00"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UnblockAll(ctx, entry.ID))

	_, err = blocked.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, blockedRepo.ErrEntryNotFound)

	assert.ErrorIs(t, svc.UnblockAll(ctx, entry.ID), ErrEntryNotFound)
}

func TestGetBlocked(t *testing.T) {
	blocked := newFakeBlockedRepo()
	svc := newTestService(blocked)
	ctx := context.Background()

	_, err := svc.GetBlocked(ctx, 1, testDate())
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = svc.BlockSlots(ctx, 1, testDate(), []domain.BlockedSlot{{StartTime: "07:00"}})
	require.NoError(t, err)

	entry, err := svc.GetBlocked(ctx, 1, testDate())
	require.NoError(t, err)
	assert.Len(t, entry.Slots, 1)
}

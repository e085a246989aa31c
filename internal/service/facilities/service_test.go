package facilities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/facility"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeFacilityRepo struct {
	facilities map[int64]*domain.Facility
	nextID     int64
}

func newFakeFacilityRepo() *fakeFacilityRepo {
	return &fakeFacilityRepo{facilities: make(map[int64]*domain.Facility), nextID: 1}
}

func (f *fakeFacilityRepo) Create(_ context.Context, facility *domain.Facility) (*domain.Facility, error) {
	created := *facility
	created.ID = f.nextID
	f.nextID++
	f.facilities[created.ID] = &created
	return &created, nil
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	facility, ok := f.facilities[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return facility, nil
}

func (f *fakeFacilityRepo) List(_ context.Context) ([]*domain.Facility, error) {
	out := make([]*domain.Facility, 0, len(f.facilities))
	for _, facility := range f.facilities {
		out = append(out, facility)
	}
	return out, nil
}

func (f *fakeFacilityRepo) UpdateStatus(_ context.Context, id int64, status domain.FacilityStatus) error {
	facility, ok := f.facilities[id]
	if !ok {
		return facilityRepo.ErrFacilityNotFound
	}
	facility.Status = status
	return nil
}

func TestCreate(t *testing.T) {
	repo := newFakeFacilityRepo()
	svc := NewService(repo, nopLogger{})

	created, err := svc.Create(context.Background(), &domain.Facility{
		Name:       "Turf A",
		SportIDs:   []int64{5, 7},
		HourlyRate: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, domain.FacilityActive, created.Status, "status defaults to active")
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeFacilityRepo(), nopLogger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.Facility{HourlyRate: 1000})
	assert.ErrorIs(t, err, ErrInvalidInput, "empty name")

	_, err = svc.Create(ctx, &domain.Facility{Name: "Turf A", HourlyRate: -1})
	assert.ErrorIs(t, err, ErrInvalidInput, "negative rate")

	_, err = svc.Create(ctx, &domain.Facility{Name: "Turf A", Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidInput, "unknown status")
}

func TestGetByID(t *testing.T) {
	repo := newFakeFacilityRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.Facility{Name: "Turf A", HourlyRate: 800})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Turf A", got.Name)

	_, err = svc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeFacilityRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.Facility{Name: "Turf A", HourlyRate: 800})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, created.ID, domain.FacilityMaintenance))
	assert.Equal(t, domain.FacilityMaintenance, repo.facilities[created.ID].Status)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, created.ID, "bogus"), ErrInvalidInput)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 42, domain.FacilityDisabled), ErrFacilityNotFound)
}

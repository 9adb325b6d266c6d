package shifttype

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisops/dienstplan-api/internal/model"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

type fakeShiftTypeRepo struct {
	types map[uuid.UUID]*model.ShiftType
}

func (r *fakeShiftTypeRepo) Create(_ context.Context, st *model.ShiftType) error {
	st.ID = uuid.New()
	r.types[st.ID] = st
	return nil
}

func (r *fakeShiftTypeRepo) Get(_ context.Context, id uuid.UUID) (*model.ShiftType, error) {
	st, ok := r.types[id]
	if !ok {
		return nil, apperrors.NewNotFound("shift type")
	}
	return st, nil
}

func (r *fakeShiftTypeRepo) Update(_ context.Context, st *model.ShiftType) error {
	if _, ok := r.types[st.ID]; !ok {
		return apperrors.NewNotFound("shift type")
	}
	r.types[st.ID] = st
	return nil
}

func (r *fakeShiftTypeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.types[id]; !ok {
		return apperrors.NewNotFound("shift type")
	}
	delete(r.types, id)
	return nil
}

func (r *fakeShiftTypeRepo) List(_ context.Context, practiceID uuid.UUID, activeOnly bool) ([]*model.ShiftType, error) {
	out := []*model.ShiftType{}
	for _, st := range r.types {
		if st.PracticeID != practiceID {
			continue
		}
		if activeOnly && !st.IsActive {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

func newFixture() (*Service, *fakeShiftTypeRepo) {
	repo := &fakeShiftTypeRepo{types: map[uuid.UUID]*model.ShiftType{}}
	return NewService(repo), repo
}

func TestCreateDefaultsActive(t *testing.T) {
	svc, _ := newFixture()

	st, err := svc.Create(context.Background(), uuid.New(), &model.CreateShiftTypeRequest{
		Name:      "Frühdienst",
		ShortName: "F",
		StartTime: "07:00",
		EndTime:   "15:00",
	})
	require.NoError(t, err)
	assert.True(t, st.IsActive)
}

func TestCreateRejectsInvertedTimes(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateShiftTypeRequest{
		Name:      "Nachtdienst",
		ShortName: "N",
		StartTime: "22:00",
		EndTime:   "06:00",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateRejectsInvertedTimes(t *testing.T) {
	svc, _ := newFixture()

	st, err := svc.Create(context.Background(), uuid.New(), &model.CreateShiftTypeRequest{
		Name:      "Spätdienst",
		ShortName: "S",
		StartTime: "13:00",
		EndTime:   "21:00",
	})
	require.NoError(t, err)

	late := "22:00"
	_, err = svc.Update(context.Background(), st.ID, &model.UpdateShiftTypeRequest{StartTime: &late})
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeactivateHidesFromActiveListOnly(t *testing.T) {
	svc, _ := newFixture()
	practiceID := uuid.New()

	st, err := svc.Create(context.Background(), practiceID, &model.CreateShiftTypeRequest{
		Name:      "Frühdienst",
		ShortName: "F",
		StartTime: "07:00",
		EndTime:   "15:00",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(context.Background(), st.ID, &model.UpdateShiftTypeRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "07:00", updated.StartTime)

	active, err := svc.List(context.Background(), practiceID, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(context.Background(), practiceID, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestDeactivatedTypeStillResolves(t *testing.T) {
	svc, _ := newFixture()

	st, err := svc.Create(context.Background(), uuid.New(), &model.CreateShiftTypeRequest{
		Name:      "Spätdienst",
		ShortName: "S",
		StartTime: "13:00",
		EndTime:   "21:00",
	})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(context.Background(), st.ID, &model.UpdateShiftTypeRequest{IsActive: &inactive})
	require.NoError(t, err)

	// Shifts created against the type keep resolving it for display.
	resolved, err := svc.Get(context.Background(), st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spätdienst", resolved.Name)
}

package availability

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisops/dienstplan-api/internal/model"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

type fakeAvailabilityRepo struct {
	rules map[uuid.UUID]*model.Availability
}

func (r *fakeAvailabilityRepo) Create(_ context.Context, a *model.Availability) error {
	a.ID = uuid.New()
	r.rules[a.ID] = a
	return nil
}

func (r *fakeAvailabilityRepo) Get(_ context.Context, id uuid.UUID) (*model.Availability, error) {
	a, ok := r.rules[id]
	if !ok {
		return nil, apperrors.NewNotFound("availability")
	}
	return a, nil
}

func (r *fakeAvailabilityRepo) Update(_ context.Context, a *model.Availability) error {
	r.rules[a.ID] = a
	return nil
}

func (r *fakeAvailabilityRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rules, id)
	return nil
}

func (r *fakeAvailabilityRepo) List(_ context.Context, _ uuid.UUID) ([]*model.Availability, error) {
	out := []*model.Availability{}
	for _, a := range r.rules {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]*model.Availability, error) {
	out := []*model.Availability{}
	for _, a := range r.rules {
		if a.TeamMemberID == memberID {
			out = append(out, a)
		}
	}
	return out, nil
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func newService() (*Service, *fakeAvailabilityRepo) {
	repo := &fakeAvailabilityRepo{rules: map[uuid.UUID]*model.Availability{}}
	return NewService(repo), repo
}

func TestCreateRecurringRule(t *testing.T) {
	svc, _ := newService()

	rule, err := svc.Create(context.Background(), uuid.New(), &model.CreateAvailabilityRequest{
		TeamMemberID: uuid.New().String(),
		Type:         model.AvailabilityUnavailable,
		IsRecurring:  true,
		DayOfWeek:    intPtr(4),
		SpecificDate: strPtr("2024-06-07"),
	})
	require.NoError(t, err)

	// Recurring wins: the stray date is dropped, not kept alongside.
	assert.Nil(t, rule.SpecificDate)
	require.NotNil(t, rule.DayOfWeek)
	assert.Equal(t, 4, *rule.DayOfWeek)
}

func TestCreateRecurringRequiresWeekday(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateAvailabilityRequest{
		TeamMemberID: uuid.New().String(),
		Type:         model.AvailabilityAvailable,
		IsRecurring:  true,
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateOneOffRequiresDate(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateAvailabilityRequest{
		TeamMemberID: uuid.New().String(),
		Type:         model.AvailabilityVacation,
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateRejectsInvertedTimeWindow(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateAvailabilityRequest{
		TeamMemberID: uuid.New().String(),
		Type:         model.AvailabilityPreferred,
		IsRecurring:  true,
		DayOfWeek:    intPtr(0),
		StartTime:    strPtr("16:00"),
		EndTime:      strPtr("08:00"),
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestMatchesForDate(t *testing.T) {
	memberID := uuid.New()

	// 2024-06-03 is a Monday.
	recurringMonday := &model.Availability{
		TeamMemberID: memberID,
		Type:         model.AvailabilityPreferred,
		IsRecurring:  true,
		DayOfWeek:    intPtr(0),
	}
	oneOffSameDay := &model.Availability{
		TeamMemberID: memberID,
		Type:         model.AvailabilityVacation,
		SpecificDate: strPtr("2024-06-03"),
	}
	recurringFriday := &model.Availability{
		TeamMemberID: memberID,
		Type:         model.AvailabilityUnavailable,
		IsRecurring:  true,
		DayOfWeek:    intPtr(4),
	}

	rules := []*model.Availability{recurringMonday, oneOffSameDay, recurringFriday}

	matched := MatchesForDate(rules, "2024-06-03")
	// Both the recurring and the one-off rule match; no precedence.
	require.Len(t, matched, 2)

	matched = MatchesForDate(rules, "2024-06-07")
	require.Len(t, matched, 1)
	assert.Equal(t, model.AvailabilityUnavailable, matched[0].Type)

	assert.Empty(t, MatchesForDate(rules, "2024-06-04"))
}

func TestRecurringRuleMatchesEveryWeek(t *testing.T) {
	rule := &model.Availability{
		IsRecurring: true,
		DayOfWeek:   intPtr(0),
	}

	for _, date := range []string{"2024-06-03", "2024-06-10", "2025-01-06"} {
		assert.Len(t, MatchesForDate([]*model.Availability{rule}, date), 1, date)
	}
}

package swap

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisops/dienstplan-api/internal/model"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
	"github.com/praxisops/dienstplan-api/pkg/logger"
)

type fakeShiftRepo struct {
	shifts map[uuid.UUID]*model.Shift
}

func (r *fakeShiftRepo) Create(_ context.Context, s *model.Shift) error {
	s.ID = uuid.New()
	r.shifts[s.ID] = s
	return nil
}

func (r *fakeShiftRepo) CreateBatch(_ context.Context, shifts []*model.Shift) error {
	for _, s := range shifts {
		s.ID = uuid.New()
		r.shifts[s.ID] = s
	}
	return nil
}

func (r *fakeShiftRepo) Get(_ context.Context, id uuid.UUID) (*model.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, apperrors.NewNotFound("shift")
	}
	return s, nil
}

func (r *fakeShiftRepo) Update(_ context.Context, _ *model.Shift) error { return nil }
func (r *fakeShiftRepo) Delete(_ context.Context, _ uuid.UUID) error    { return nil }

func (r *fakeShiftRepo) ListByRange(_ context.Context, f *model.ShiftFilters) ([]*model.Shift, error) {
	out := []*model.Shift{}
	for _, s := range r.shifts {
		if s.ShiftDate >= f.DateStart && s.ShiftDate <= f.DateEnd {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSwapRepo struct {
	requests map[uuid.UUID]*model.SwapRequest
	shifts   *fakeShiftRepo
}

func (r *fakeSwapRepo) Create(_ context.Context, req *model.SwapRequest, _ *model.OutboxEvent) error {
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return nil
}

func (r *fakeSwapRepo) Get(_ context.Context, id uuid.UUID) (*model.SwapRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.NewNotFound("swap request")
	}
	return req, nil
}

func (r *fakeSwapRepo) List(_ context.Context, _ uuid.UUID, status *model.SwapStatus) ([]*model.SwapRequest, error) {
	out := []*model.SwapRequest{}
	for _, req := range r.requests {
		if status == nil || req.Status == *status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeSwapRepo) Approve(ctx context.Context, id, reviewerID uuid.UUID, _ *model.OutboxEvent) (*model.SwapRequest, error) {
	req, err := r.decide(id, reviewerID, model.SwapStatusApproved)
	if err != nil {
		return nil, err
	}

	a := r.shifts.shifts[req.RequesterShiftID]
	b := r.shifts.shifts[req.TargetShiftID]
	a.TeamMemberID, b.TeamMemberID = b.TeamMemberID, a.TeamMemberID
	return req, nil
}

func (r *fakeSwapRepo) Reject(_ context.Context, id, reviewerID uuid.UUID, _ *model.OutboxEvent) (*model.SwapRequest, error) {
	return r.decide(id, reviewerID, model.SwapStatusRejected)
}

// decide blindly applies the transition; guarding terminal states is the
// service's job.
func (r *fakeSwapRepo) decide(id, reviewerID uuid.UUID, status model.SwapStatus) (*model.SwapRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.NewNotFound("swap request")
	}
	now := time.Now()
	req.Status = status
	req.ReviewedAt = &now
	req.ReviewedBy = uuid.NullUUID{UUID: reviewerID, Valid: true}
	return req, nil
}

func (r *fakeSwapRepo) CountPending(_ context.Context, _ uuid.UUID) (int, error) {
	n := 0
	for _, req := range r.requests {
		if req.Status == model.SwapStatusPending {
			n++
		}
	}
	return n, nil
}

type fakeMemberRepo struct {
	members map[uuid.UUID]*model.TeamMember
}

func (r *fakeMemberRepo) Get(_ context.Context, id uuid.UUID) (*model.TeamMember, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, apperrors.NewNotFound("team member")
	}
	return m, nil
}

func (r *fakeMemberRepo) List(_ context.Context, _ uuid.UUID) ([]*model.TeamMember, error) {
	return nil, nil
}

func (r *fakeMemberRepo) ListByRole(_ context.Context, _ uuid.UUID, _ string) ([]*model.TeamMember, error) {
	return nil, nil
}

type recordingNotifier struct {
	decisions []bool
}

func (n *recordingNotifier) SendSwapDecision(_, _ string, approved bool, _ string) error {
	n.decisions = append(n.decisions, approved)
	return nil
}

type fixture struct {
	svc       *Service
	shifts    *fakeShiftRepo
	swaps     *fakeSwapRepo
	members   *fakeMemberRepo
	notifier  *recordingNotifier
	practice  uuid.UUID
	memberA   uuid.UUID
	memberB   uuid.UUID
	shiftA    *model.Shift
	shiftB    *model.Shift
	requestID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	shifts := &fakeShiftRepo{shifts: map[uuid.UUID]*model.Shift{}}
	swaps := &fakeSwapRepo{requests: map[uuid.UUID]*model.SwapRequest{}, shifts: shifts}
	members := &fakeMemberRepo{members: map[uuid.UUID]*model.TeamMember{}}
	notifier := &recordingNotifier{}

	f := &fixture{
		svc:      NewService(swaps, shifts, members, notifier, logger.NewLogger(nil)),
		shifts:   shifts,
		swaps:    swaps,
		members:  members,
		notifier: notifier,
		practice: uuid.New(),
		memberA:  uuid.New(),
		memberB:  uuid.New(),
	}

	members.members[f.memberA] = &model.TeamMember{ID: f.memberA, FirstName: "Anna", LastName: "Weber", Email: "anna@example.org"}
	members.members[f.memberB] = &model.TeamMember{ID: f.memberB, FirstName: "Ben", LastName: "Koch", Email: "ben@example.org"}

	f.shiftA = f.addShift(f.memberA, "2024-06-03", model.ShiftStatusScheduled)
	f.shiftB = f.addShift(f.memberB, "2024-06-04", model.ShiftStatusConfirmed)
	return f
}

func (f *fixture) addShift(member uuid.UUID, date string, status model.ShiftStatus) *model.Shift {
	s := &model.Shift{
		PracticeID:   f.practice,
		TeamMemberID: uuid.NullUUID{UUID: member, Valid: true},
		ShiftTypeID:  uuid.New(),
		ShiftDate:    date,
		StartTime:    "08:00",
		EndTime:      "16:00",
		Status:       status,
	}
	_ = f.shifts.Create(context.Background(), s)
	return s
}

func (f *fixture) createRequest(t *testing.T) *model.SwapRequest {
	t.Helper()
	req, err := f.svc.Create(context.Background(), f.practice, &model.CreateSwapRequest{
		RequesterShiftID: f.shiftA.ID.String(),
		TargetShiftID:    f.shiftB.ID.String(),
		Reason:           "Arzttermin",
	})
	require.NoError(t, err)
	return req
}

func TestCreateSwapRequest(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest(t)

	assert.Equal(t, model.SwapStatusPending, req.Status)
	assert.Equal(t, f.memberA, req.RequesterID)
	assert.Equal(t, f.memberB, req.TargetID)
}

func TestCreateRejectsSameShift(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.practice, &model.CreateSwapRequest{
		RequesterShiftID: f.shiftA.ID.String(),
		TargetShiftID:    f.shiftA.ID.String(),
		Reason:           "x",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateRejectsSameOwner(t *testing.T) {
	f := newFixture(t)
	other := f.addShift(f.memberA, "2024-06-05", model.ShiftStatusScheduled)

	_, err := f.svc.Create(context.Background(), f.practice, &model.CreateSwapRequest{
		RequesterShiftID: f.shiftA.ID.String(),
		TargetShiftID:    other.ID.String(),
		Reason:           "x",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateRejectsCompletedTarget(t *testing.T) {
	f := newFixture(t)
	f.shiftB.Status = model.ShiftStatusCompleted

	_, err := f.svc.Create(context.Background(), f.practice, &model.CreateSwapRequest{
		RequesterShiftID: f.shiftA.ID.String(),
		TargetShiftID:    f.shiftB.ID.String(),
		Reason:           "x",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateRejectsBlankReason(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.practice, &model.CreateSwapRequest{
		RequesterShiftID: f.shiftA.ID.String(),
		TargetShiftID:    f.shiftB.ID.String(),
		Reason:           "   ",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestApproveExchangesOwnersAndNotifies(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t)

	decided, err := f.svc.Approve(context.Background(), req.ID, &model.ReviewRequest{
		ReviewerID: uuid.New().String(),
	})
	require.NoError(t, err)

	assert.Equal(t, model.SwapStatusApproved, decided.Status)
	assert.Equal(t, f.memberB, f.shiftA.TeamMemberID.UUID)
	assert.Equal(t, f.memberA, f.shiftB.TeamMemberID.UUID)
	assert.Equal(t, []bool{true}, f.notifier.decisions)
}

func TestRejectFlipsStatusOnly(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t)

	decided, err := f.svc.Reject(context.Background(), req.ID, &model.ReviewRequest{
		ReviewerID: uuid.New().String(),
	})
	require.NoError(t, err)

	assert.Equal(t, model.SwapStatusRejected, decided.Status)
	assert.Equal(t, f.memberA, f.shiftA.TeamMemberID.UUID)
	assert.Equal(t, f.memberB, f.shiftB.TeamMemberID.UUID)
	assert.Equal(t, []bool{false}, f.notifier.decisions)
}

func TestDecisionsAreTerminal(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t)

	_, err := f.svc.Reject(context.Background(), req.ID, &model.ReviewRequest{ReviewerID: uuid.New().String()})
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), req.ID, &model.ReviewRequest{ReviewerID: uuid.New().String()})
	assert.True(t, apperrors.IsInvalidState(err))

	_, err = f.svc.Reject(context.Background(), req.ID, &model.ReviewRequest{ReviewerID: uuid.New().String()})
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestDecideUnknownRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Approve(context.Background(), uuid.New(), &model.ReviewRequest{ReviewerID: uuid.New().String()})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEligibleFromFiltersAndGroups(t *testing.T) {
	f := newFixture(t)
	cancelled := f.addShift(f.memberB, "2024-06-05", model.ShiftStatusCancelled)
	ownShift := f.addShift(f.memberA, "2024-06-06", model.ShiftStatusScheduled)
	unassigned := f.addShift(uuid.Nil, "2024-06-06", model.ShiftStatusScheduled)
	unassigned.TeamMemberID = uuid.NullUUID{}

	candidates := []*model.Shift{f.shiftA, f.shiftB, cancelled, ownShift, unassigned}
	groups := EligibleFrom(f.shiftA, candidates)

	require.Len(t, groups, 1)
	assert.Equal(t, f.memberB, groups[0].TeamMemberID)
	require.Len(t, groups[0].Shifts, 1)
	assert.Equal(t, f.shiftB.ID, groups[0].Shifts[0].ID)
}

func TestEligibilityIsSymmetric(t *testing.T) {
	f := newFixture(t)
	candidates := []*model.Shift{f.shiftA, f.shiftB}

	fromA := EligibleFrom(f.shiftA, candidates)
	fromB := EligibleFrom(f.shiftB, candidates)

	require.Len(t, fromA, 1)
	require.Len(t, fromB, 1)
	assert.Equal(t, f.shiftB.ID, fromA[0].Shifts[0].ID)
	assert.Equal(t, f.shiftA.ID, fromB[0].Shifts[0].ID)
}

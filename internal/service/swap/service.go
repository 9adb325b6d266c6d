package swap

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/email"
	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
	"github.com/praxisops/dienstplan-api/pkg/logger"
)

type Service struct {
	repo       repository.SwapRepository
	shiftRepo  repository.ShiftRepository
	memberRepo repository.TeamMemberRepository
	notifier   email.Notifier
	logger     *logger.Logger
}

func NewService(
	repo repository.SwapRepository,
	shiftRepo repository.ShiftRepository,
	memberRepo repository.TeamMemberRepository,
	notifier email.Notifier,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:       repo,
		shiftRepo:  shiftRepo,
		memberRepo: memberRepo,
		notifier:   notifier,
		logger:     log,
	}
}

func (s *Service) List(ctx context.Context, practiceID uuid.UUID, status *model.SwapStatus) ([]*model.SwapRequest, error) {
	return s.repo.List(ctx, practiceID, status)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.SwapRequest, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the proposed exchange and records it as pending. Both
// shifts must exist, belong to different members and still be live; the
// requester and target are derived from the shifts, never from the payload.
func (s *Service) Create(ctx context.Context, practiceID uuid.UUID, req *model.CreateSwapRequest) (*model.SwapRequest, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidation("reason is required")
	}

	requesterShiftID, err := uuid.Parse(req.RequesterShiftID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid requester shift ID")
	}
	targetShiftID, err := uuid.Parse(req.TargetShiftID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid target shift ID")
	}
	if requesterShiftID == targetShiftID {
		return nil, apperrors.NewValidation("cannot swap a shift with itself")
	}

	requesterShift, err := s.shiftRepo.Get(ctx, requesterShiftID)
	if err != nil {
		return nil, err
	}
	targetShift, err := s.shiftRepo.Get(ctx, targetShiftID)
	if err != nil {
		return nil, err
	}

	if !requesterShift.TeamMemberID.Valid || !targetShift.TeamMemberID.Valid {
		return nil, apperrors.NewValidation("both shifts must be assigned to a team member")
	}
	if requesterShift.TeamMemberID.UUID == targetShift.TeamMemberID.UUID {
		return nil, apperrors.NewValidation("cannot swap shifts belonging to the same team member")
	}
	if !requesterShift.Live() || !targetShift.Live() {
		return nil, apperrors.NewValidation("only scheduled or confirmed shifts can be swapped")
	}

	swap := &model.SwapRequest{
		ID:               uuid.New(),
		PracticeID:       practiceID,
		RequesterID:      requesterShift.TeamMemberID.UUID,
		TargetID:         targetShift.TeamMemberID.UUID,
		RequesterShiftID: requesterShiftID,
		TargetShiftID:    targetShiftID,
		Status:           model.SwapStatusPending,
		Reason:           strings.TrimSpace(req.Reason),
	}

	event, err := model.NewOutboxEvent(model.EventSwapRequested, swap)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, swap, event); err != nil {
		return nil, err
	}
	return swap, nil
}

// Approve resolves a pending request. The repository flips the status and
// exchanges shift ownership in one transaction; a concurrent second decision
// loses with an invalid state error.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, req *model.ReviewRequest) (*model.SwapRequest, error) {
	reviewerID, err := uuid.Parse(req.ReviewerID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid reviewer ID")
	}
	if err := s.ensurePending(ctx, id); err != nil {
		return nil, err
	}

	event, err := model.NewOutboxEvent(model.EventSwapApproved, map[string]interface{}{"swap_request_id": id})
	if err != nil {
		return nil, err
	}

	swap, err := s.repo.Approve(ctx, id, reviewerID, event)
	if err != nil {
		return nil, err
	}

	s.notifyRequester(ctx, swap, true)
	return swap, nil
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID, req *model.ReviewRequest) (*model.SwapRequest, error) {
	reviewerID, err := uuid.Parse(req.ReviewerID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid reviewer ID")
	}
	if err := s.ensurePending(ctx, id); err != nil {
		return nil, err
	}

	event, err := model.NewOutboxEvent(model.EventSwapRejected, map[string]interface{}{"swap_request_id": id})
	if err != nil {
		return nil, err
	}

	swap, err := s.repo.Reject(ctx, id, reviewerID, event)
	if err != nil {
		return nil, err
	}

	s.notifyRequester(ctx, swap, false)
	return swap, nil
}

// ensurePending rejects decisions on requests that already reached a
// terminal state. The repository repeats this check under the row lock, so
// this is the fast path, not the authoritative one.
func (s *Service) ensurePending(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status.Terminal() {
		return apperrors.NewInvalidState(fmt.Sprintf("swap request is already %s", current.Status))
	}
	return nil
}

// EligibleTargets lists the shifts of other members the given shift could be
// exchanged with, grouped per member. Candidates are drawn from the same date
// range the planner currently shows.
func (s *Service) EligibleTargets(ctx context.Context, shiftID uuid.UUID, dateStart, dateEnd string) ([]*model.EligibleTargetGroup, error) {
	requesterShift, err := s.shiftRepo.Get(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if !requesterShift.TeamMemberID.Valid {
		return nil, apperrors.NewValidation("unassigned shifts cannot be swapped")
	}

	if dateStart == "" {
		dateStart = requesterShift.ShiftDate
	}
	if dateEnd == "" {
		dateEnd = requesterShift.ShiftDate
	}

	candidates, err := s.shiftRepo.ListByRange(ctx, &model.ShiftFilters{
		PracticeID: requesterShift.PracticeID,
		DateStart:  dateStart,
		DateEnd:    dateEnd,
	})
	if err != nil {
		return nil, err
	}

	return EligibleFrom(requesterShift, candidates), nil
}

// EligibleFrom filters candidate shifts down to valid swap targets: a
// different live shift owned by a different member. Eligibility is symmetric,
// if A's shift can target B's then B's can target A's.
func EligibleFrom(requester *model.Shift, candidates []*model.Shift) []*model.EligibleTargetGroup {
	byMember := map[uuid.UUID]*model.EligibleTargetGroup{}
	groups := []*model.EligibleTargetGroup{}

	for _, c := range candidates {
		if c.ID == requester.ID {
			continue
		}
		if !c.TeamMemberID.Valid || c.TeamMemberID.UUID == requester.TeamMemberID.UUID {
			continue
		}
		if !c.Live() {
			continue
		}

		group, ok := byMember[c.TeamMemberID.UUID]
		if !ok {
			group = &model.EligibleTargetGroup{TeamMemberID: c.TeamMemberID.UUID}
			byMember[c.TeamMemberID.UUID] = group
			groups = append(groups, group)
		}
		group.Shifts = append(group.Shifts, c)
	}
	return groups
}

func (s *Service) notifyRequester(ctx context.Context, swap *model.SwapRequest, approved bool) {
	member, err := s.memberRepo.Get(ctx, swap.RequesterID)
	if err != nil {
		s.logger.Error(err, "failed to resolve swap requester for notification")
		return
	}
	if member.Email == "" {
		return
	}

	shiftDate := ""
	if shift, err := s.shiftRepo.Get(ctx, swap.RequesterShiftID); err == nil {
		shiftDate = shift.ShiftDate
	}

	if err := s.notifier.SendSwapDecision(member.Email, member.FullName(), approved, shiftDate); err != nil {
		s.logger.Error(err, "failed to send swap decision mail")
	}
}

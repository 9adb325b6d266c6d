package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
)

// All repository interfaces in one file
type (
	// ShiftRepository persists shift assignments.
	ShiftRepository interface {
		Create(ctx context.Context, shift *model.Shift) error
		CreateBatch(ctx context.Context, shifts []*model.Shift) error
		Get(ctx context.Context, id uuid.UUID) (*model.Shift, error)
		Update(ctx context.Context, shift *model.Shift) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByRange(ctx context.Context, filters *model.ShiftFilters) ([]*model.Shift, error)
	}

	ShiftTypeRepository interface {
		Create(ctx context.Context, st *model.ShiftType) error
		Get(ctx context.Context, id uuid.UUID) (*model.ShiftType, error)
		Update(ctx context.Context, st *model.ShiftType) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, practiceID uuid.UUID, activeOnly bool) ([]*model.ShiftType, error)
	}

	AvailabilityRepository interface {
		Create(ctx context.Context, a *model.Availability) error
		Get(ctx context.Context, id uuid.UUID) (*model.Availability, error)
		Update(ctx context.Context, a *model.Availability) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, practiceID uuid.UUID) ([]*model.Availability, error)
		ListByMember(ctx context.Context, memberID uuid.UUID) ([]*model.Availability, error)
	}

	TemplateRepository interface {
		Create(ctx context.Context, t *model.ScheduleTemplate) error
		Get(ctx context.Context, id uuid.UUID) (*model.ScheduleTemplate, error)
		Update(ctx context.Context, t *model.ScheduleTemplate) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, practiceID uuid.UUID) ([]*model.ScheduleTemplate, error)
	}

	// SwapRepository owns the swap state machine's persistence. Approve and
	// Reject run the whole transition in one transaction; Approve also
	// exchanges ownership of the two referenced shifts.
	SwapRepository interface {
		Create(ctx context.Context, req *model.SwapRequest, event *model.OutboxEvent) error
		Get(ctx context.Context, id uuid.UUID) (*model.SwapRequest, error)
		List(ctx context.Context, practiceID uuid.UUID, status *model.SwapStatus) ([]*model.SwapRequest, error)
		Approve(ctx context.Context, id, reviewerID uuid.UUID, event *model.OutboxEvent) (*model.SwapRequest, error)
		Reject(ctx context.Context, id, reviewerID uuid.UUID, event *model.OutboxEvent) (*model.SwapRequest, error)
		CountPending(ctx context.Context, practiceID uuid.UUID) (int, error)
	}

	HolidayRequestRepository interface {
		Create(ctx context.Context, r *model.HolidayRequest) error
		Get(ctx context.Context, id uuid.UUID) (*model.HolidayRequest, error)
		List(ctx context.Context, practiceID uuid.UUID) ([]*model.HolidayRequest, error)
		Review(ctx context.Context, id, reviewerID uuid.UUID, status model.AbsenceStatus) (*model.HolidayRequest, error)
	}

	SickLeaveRepository interface {
		Create(ctx context.Context, s *model.SickLeave) error
		List(ctx context.Context, practiceID uuid.UUID) ([]*model.SickLeave, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	// TeamMemberRepository is the read-only employee directory.
	TeamMemberRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.TeamMember, error)
		List(ctx context.Context, practiceID uuid.UUID) ([]*model.TeamMember, error)
		ListByRole(ctx context.Context, practiceID uuid.UUID, role string) ([]*model.TeamMember, error)
	}

	SettingsRepository interface {
		GetPlannerDays(ctx context.Context, practiceID uuid.UUID) (int, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		ClaimPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)

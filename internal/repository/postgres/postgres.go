package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/praxisops/dienstplan-api/internal/repository"
)

type shiftRepository struct {
	db *sqlx.DB
}

type shiftTypeRepository struct {
	db *sqlx.DB
}

type availabilityRepository struct {
	db *sqlx.DB
}

type templateRepository struct {
	db *sqlx.DB
}

type swapRepository struct {
	db *sqlx.DB
}

type holidayRequestRepository struct {
	db *sqlx.DB
}

type sickLeaveRepository struct {
	db *sqlx.DB
}

type teamMemberRepository struct {
	db *sqlx.DB
}

type settingsRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewShiftRepository(db *sqlx.DB) repository.ShiftRepository {
	return &shiftRepository{db: db}
}

func NewShiftTypeRepository(db *sqlx.DB) repository.ShiftTypeRepository {
	return &shiftTypeRepository{db: db}
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func NewTemplateRepository(db *sqlx.DB) repository.TemplateRepository {
	return &templateRepository{db: db}
}

func NewSwapRepository(db *sqlx.DB) repository.SwapRepository {
	return &swapRepository{db: db}
}

func NewHolidayRequestRepository(db *sqlx.DB) repository.HolidayRequestRepository {
	return &holidayRequestRepository{db: db}
}

func NewSickLeaveRepository(db *sqlx.DB) repository.SickLeaveRepository {
	return &sickLeaveRepository{db: db}
}

func NewTeamMemberRepository(db *sqlx.DB) repository.TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type AbsenceStatus string

const (
	AbsenceStatusPending  AbsenceStatus = "pending"
	AbsenceStatusApproved AbsenceStatus = "approved"
	AbsenceStatusRejected AbsenceStatus = "rejected"
)

func (s AbsenceStatus) Terminal() bool {
	return s == AbsenceStatusApproved || s == AbsenceStatusRejected
}

// HolidayRequest is a dated leave request feeding the planner view. It runs
// the same pending/approved/rejected machine as swap requests.
type HolidayRequest struct {
	Base
	PracticeID   uuid.UUID     `db:"practice_id" json:"practice_id"`
	TeamMemberID uuid.UUID     `db:"team_member_id" json:"team_member_id"`
	StartDate    string        `db:"start_date" json:"start_date"`
	EndDate      string        `db:"end_date" json:"end_date"`
	Reason       string        `db:"reason" json:"reason,omitempty"`
	Status       AbsenceStatus `db:"status" json:"status"`
	ReviewedAt   *time.Time    `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy   uuid.NullUUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
}

// SickLeave is a reported sick period. There is no approval step.
type SickLeave struct {
	Base
	PracticeID   uuid.UUID `db:"practice_id" json:"practice_id"`
	TeamMemberID uuid.UUID `db:"team_member_id" json:"team_member_id"`
	StartDate    string    `db:"start_date" json:"start_date"`
	EndDate      string    `db:"end_date" json:"end_date"`
	Notes        string    `db:"notes" json:"notes,omitempty"`
}

type CreateHolidayRequest struct {
	TeamMemberID string `json:"team_member_id" binding:"required,uuid"`
	StartDate    string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason       string `json:"reason" binding:"max=500"`
}

type CreateSickLeaveRequest struct {
	TeamMemberID string `json:"team_member_id" binding:"required,uuid"`
	StartDate    string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Notes        string `json:"notes" binding:"max=500"`
}

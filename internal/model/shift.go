package model

import (
	"github.com/google/uuid"
)

type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusConfirmed ShiftStatus = "confirmed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
	ShiftStatusCompleted ShiftStatus = "completed"
)

// Shift is one dated assignment of a team member to a shift type. A member
// may hold several shifts on the same date; overlap between them is not
// checked. TeamMemberID is NULL only for planning slots created by template
// application.
type Shift struct {
	Base
	PracticeID   uuid.UUID     `db:"practice_id" json:"practice_id"`
	TeamMemberID uuid.NullUUID `db:"team_member_id" json:"team_member_id,omitempty"`
	ShiftTypeID  uuid.UUID     `db:"shift_type_id" json:"shift_type_id"`
	ShiftDate    string        `db:"shift_date" json:"shift_date"`
	StartTime    string        `db:"start_time" json:"start_time"`
	EndTime      string        `db:"end_time" json:"end_time"`
	Status       ShiftStatus   `db:"status" json:"status"`
	Notes        string        `db:"notes" json:"notes,omitempty"`
}

// Live reports whether the shift still counts as a real assignment, i.e. it
// has not been cancelled or worked off.
func (s *Shift) Live() bool {
	return s.Status == ShiftStatusScheduled || s.Status == ShiftStatusConfirmed
}

type CreateShiftRequest struct {
	TeamMemberID string `json:"team_member_id" binding:"required,uuid"`
	ShiftTypeID  string `json:"shift_type_id" binding:"required,uuid"`
	ShiftDate    string `json:"shift_date" binding:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime      string `json:"end_time" binding:"omitempty,datetime=15:04"`
	Notes        string `json:"notes" binding:"max=1000"`
}

type UpdateShiftRequest struct {
	TeamMemberID *string      `json:"team_member_id" binding:"omitempty,uuid"`
	ShiftTypeID  *string      `json:"shift_type_id" binding:"omitempty,uuid"`
	ShiftDate    *string      `json:"shift_date" binding:"omitempty,datetime=2006-01-02"`
	StartTime    *string      `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime      *string      `json:"end_time" binding:"omitempty,datetime=15:04"`
	Status       *ShiftStatus `json:"status" binding:"omitempty,oneof=scheduled confirmed cancelled completed"`
	Notes        *string      `json:"notes" binding:"omitempty,max=1000"`
}

// ShiftFilters narrows list queries. Dates are inclusive bounds compared as
// yyyy-MM-dd strings.
type ShiftFilters struct {
	PracticeID   uuid.UUID
	TeamMemberID *uuid.UUID
	DateStart    string
	DateEnd      string
}

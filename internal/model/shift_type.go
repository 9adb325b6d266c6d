package model

import "github.com/google/uuid"

// ShiftType is a reusable time-of-day pattern ("Früh", "Spät", ...).
// Deactivating one hides it from new-assignment pickers without touching
// shifts that already reference it.
type ShiftType struct {
	Base
	PracticeID   uuid.UUID `db:"practice_id" json:"practice_id"`
	Name         string    `db:"name" json:"name"`
	ShortName    string    `db:"short_name" json:"short_name"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	BreakMinutes int       `db:"break_minutes" json:"break_minutes"`
	Color        string    `db:"color" json:"color"`
	MinStaff     int       `db:"min_staff" json:"min_staff"`
	IsActive     bool      `db:"is_active" json:"is_active"`
}

// Display defaults when a shift references a type that no longer resolves.
const (
	UnknownShiftTypeName  = "Unknown"
	UnknownShiftTypeColor = "#9ca3af"
)

type CreateShiftTypeRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	ShortName    string `json:"short_name" binding:"required,max=10"`
	StartTime    string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime      string `json:"end_time" binding:"required,datetime=15:04"`
	BreakMinutes int    `json:"break_minutes" binding:"min=0"`
	Color        string `json:"color" binding:"omitempty,hexcolor"`
	MinStaff     int    `json:"min_staff" binding:"min=0"`
}

type UpdateShiftTypeRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	ShortName    *string `json:"short_name" binding:"omitempty,max=10"`
	StartTime    *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime      *string `json:"end_time" binding:"omitempty,datetime=15:04"`
	BreakMinutes *int    `json:"break_minutes" binding:"omitempty,min=0"`
	Color        *string `json:"color" binding:"omitempty,hexcolor"`
	MinStaff     *int    `json:"min_staff" binding:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active"`
}

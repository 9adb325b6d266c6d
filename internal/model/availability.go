package model

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityType string

const (
	AvailabilityAvailable   AvailabilityType = "available"
	AvailabilityUnavailable AvailabilityType = "unavailable"
	AvailabilityPreferred   AvailabilityType = "preferred"
	AvailabilityVacation    AvailabilityType = "vacation"
	AvailabilitySick        AvailabilityType = "sick"
)

// Availability is an employee-declared rule about when they can, cannot or
// prefer to work. A recurring rule matches its weekday every week until
// deleted; a one-off rule matches exactly one date. The row keeps the flat
// is_recurring/day_of_week/specific_date shape on the wire; Scope() is the
// only sanctioned way to interpret it.
type Availability struct {
	Base
	PracticeID   uuid.UUID        `db:"practice_id" json:"practice_id"`
	TeamMemberID uuid.UUID        `db:"team_member_id" json:"team_member_id"`
	Type         AvailabilityType `db:"availability_type" json:"availability_type"`
	IsRecurring  bool             `db:"is_recurring" json:"is_recurring"`
	DayOfWeek    *int             `db:"day_of_week" json:"day_of_week,omitempty"`
	SpecificDate *string          `db:"specific_date" json:"specific_date,omitempty"`
	StartTime    *string          `db:"start_time" json:"start_time,omitempty"`
	EndTime      *string          `db:"end_time" json:"end_time,omitempty"`
	Notes        string           `db:"notes" json:"notes,omitempty"`
}

// AvailabilityScope is the tagged interpretation of a rule's temporal reach:
// either a recurring weekday (0=Monday..6=Sunday) or a single concrete date.
type AvailabilityScope struct {
	Recurring bool
	Weekday   int
	Date      string
}

func RecurringScope(weekday int) AvailabilityScope {
	return AvailabilityScope{Recurring: true, Weekday: weekday}
}

func OneOffScope(date string) AvailabilityScope {
	return AvailabilityScope{Date: date}
}

// Scope returns the rule's temporal scope. Rules are validated on write, so
// the second return value is false only for rows predating validation.
func (a *Availability) Scope() (AvailabilityScope, bool) {
	if a.IsRecurring {
		if a.DayOfWeek == nil {
			return AvailabilityScope{}, false
		}
		return RecurringScope(*a.DayOfWeek), true
	}
	if a.SpecificDate == nil {
		return AvailabilityScope{}, false
	}
	return OneOffScope(*a.SpecificDate), true
}

// MatchesDate reports whether the scope covers the given yyyy-MM-dd date.
func (s AvailabilityScope) MatchesDate(date string) bool {
	if !s.Recurring {
		return s.Date == date
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return MondayWeekday(t) == s.Weekday
}

// MondayWeekday converts time.Weekday (Sunday=0) to the Monday-based index
// used throughout the planner (0=Monday..6=Sunday).
func MondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

type CreateAvailabilityRequest struct {
	TeamMemberID string           `json:"team_member_id" binding:"required,uuid"`
	Type         AvailabilityType `json:"availability_type" binding:"required,oneof=available unavailable preferred vacation sick"`
	IsRecurring  bool             `json:"is_recurring"`
	DayOfWeek    *int             `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	SpecificDate *string          `json:"specific_date" binding:"omitempty,datetime=2006-01-02"`
	StartTime    *string          `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime      *string          `json:"end_time" binding:"omitempty,datetime=15:04"`
	Notes        string           `json:"notes" binding:"max=500"`
}

type UpdateAvailabilityRequest struct {
	Type         *AvailabilityType `json:"availability_type" binding:"omitempty,oneof=available unavailable preferred vacation sick"`
	IsRecurring  *bool             `json:"is_recurring"`
	DayOfWeek    *int              `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	SpecificDate *string           `json:"specific_date" binding:"omitempty,datetime=2006-01-02"`
	StartTime    *string           `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime      *string           `json:"end_time" binding:"omitempty,datetime=15:04"`
	Notes        *string           `json:"notes" binding:"omitempty,max=500"`
}

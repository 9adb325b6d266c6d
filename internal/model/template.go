package model

import "github.com/google/uuid"

// ScheduleTemplate is a reusable weekly pattern. It is independent of any
// calendar week; applying it projects its rules onto concrete dates without
// ever mutating the template itself.
type ScheduleTemplate struct {
	Base
	PracticeID  uuid.UUID       `db:"practice_id" json:"practice_id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description,omitempty"`
	IsDefault   bool            `db:"is_default" json:"is_default"`
	Shifts      []TemplateShift `json:"shifts"`
}

// TemplateShift is one rule of a template: on this weekday, this shift type,
// optionally restricted to one role. DayOfWeek is Monday-based (0..6).
type TemplateShift struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TemplateID  uuid.UUID `db:"template_id" json:"template_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	ShiftTypeID uuid.UUID `db:"shift_type_id" json:"shift_type_id"`
	RoleFilter  *string   `db:"role_filter" json:"role_filter,omitempty"`
}

type TemplateShiftInput struct {
	DayOfWeek   int     `json:"day_of_week" binding:"min=0,max=6"`
	ShiftTypeID string  `json:"shift_type_id" binding:"required,uuid"`
	RoleFilter  *string `json:"role_filter" binding:"omitempty,max=50"`
}

type CreateTemplateRequest struct {
	Name        string               `json:"name" binding:"required,max=100"`
	Description string               `json:"description" binding:"max=500"`
	IsDefault   bool                 `json:"is_default"`
	Shifts      []TemplateShiftInput `json:"shifts" binding:"required,min=1,dive"`
}

type UpdateTemplateRequest struct {
	Name        *string              `json:"name" binding:"omitempty,max=100"`
	Description *string              `json:"description" binding:"omitempty,max=500"`
	IsDefault   *bool                `json:"is_default"`
	Shifts      []TemplateShiftInput `json:"shifts" binding:"omitempty,min=1,dive"`
}

type ApplyTemplateRequest struct {
	Week string `json:"week" binding:"required,datetime=2006-01-02"`
}

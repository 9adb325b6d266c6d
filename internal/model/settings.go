package model

import "github.com/google/uuid"

// DefaultPlannerDays is used whenever a practice has no stored setting or
// the stored value is invalid.
const DefaultPlannerDays = 5

// ValidPlannerDays reports whether n is an accepted planner width.
func ValidPlannerDays(n int) bool {
	return n == 5 || n == 6 || n == 7
}

// PracticeSettings carries the subset of practice configuration the planner
// reads. The settings document itself is owned by the practice admin area.
type PracticeSettings struct {
	PracticeID  uuid.UUID `db:"practice_id" json:"practice_id"`
	PlannerDays int       `db:"planner_days" json:"planner_days"`
}

package model

// ScheduleStats are the read-only summary numbers for a week view. They are
// recomputed from current state on every query, never cached or stored.
type ScheduleStats struct {
	PendingSwaps     int `json:"pending_swaps"`
	ActiveViolations int `json:"active_violations"`
	TotalShifts      int `json:"total_shifts"`
	CoveredShifts    int `json:"covered_shifts"`
	CoverageRate     int `json:"coverage_rate"`
}

// WeekSchedule is the full payload for one planner week: the visible grid
// plus everything rendered on it.
type WeekSchedule struct {
	WeekStart    string          `json:"week_start"`
	Days         []string        `json:"days"`
	TeamMembers  []*TeamMember   `json:"team_members"`
	Shifts       []*Shift        `json:"shifts"`
	Availability []*Availability `json:"availability"`
	PendingSwaps []*SwapRequest  `json:"pending_swaps"`
	Stats        ScheduleStats   `json:"stats"`
}

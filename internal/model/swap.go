package model

import (
	"time"

	"github.com/google/uuid"
)

type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "pending"
	SwapStatusApproved SwapStatus = "approved"
	SwapStatusRejected SwapStatus = "rejected"
)

// Terminal reports whether the status admits no further transition.
func (s SwapStatus) Terminal() bool {
	return s == SwapStatusApproved || s == SwapStatusRejected
}

// SwapRequest proposes exchanging two shift assignments between two team
// members. Approval flips the status and swaps the owners of both shifts in
// one transaction; rejection flips the status only.
type SwapRequest struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	PracticeID       uuid.UUID     `db:"practice_id" json:"practice_id"`
	RequesterID      uuid.UUID     `db:"requester_id" json:"requester_id"`
	TargetID         uuid.UUID     `db:"target_id" json:"target_id"`
	RequesterShiftID uuid.UUID     `db:"requester_shift_id" json:"requester_shift_id"`
	TargetShiftID    uuid.UUID     `db:"target_shift_id" json:"target_shift_id"`
	Status           SwapStatus    `db:"status" json:"status"`
	Reason           string        `db:"reason" json:"reason"`
	AIRecommendation *string       `db:"ai_recommendation" json:"ai_recommendation,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	ReviewedAt       *time.Time    `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy       uuid.NullUUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
}

type CreateSwapRequest struct {
	RequesterShiftID string `json:"requester_shift_id" binding:"required,uuid"`
	TargetShiftID    string `json:"target_shift_id" binding:"required,uuid"`
	Reason           string `json:"reason" binding:"required,max=500"`
}

// EligibleTargetGroup is one candidate member with their swappable shifts,
// the shape the swap dialog renders.
type EligibleTargetGroup struct {
	TeamMemberID uuid.UUID `json:"team_member_id"`
	Shifts       []*Shift  `json:"shifts"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReviewRequest carries the reviewer identity for any approve/reject
// decision (swap requests, holiday requests).
type ReviewRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required,uuid"`
}

// Dates and times are persisted and compared as plain strings. Shift
// scheduling is wall-clock local to the practice; converting through zoned
// instants would shift dates around midnight and DST boundaries.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

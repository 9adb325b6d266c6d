package model

import "github.com/google/uuid"

// TeamMember is owned by the HR side of the product. The scheduler reads it
// for names, roles and notification addresses and never writes it.
type TeamMember struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PracticeID uuid.UUID `json:"practice_id" db:"practice_id"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Role       string    `json:"role" db:"role"`
	Email      string    `json:"email" db:"email"`
	AvatarURL  string    `json:"avatar_url,omitempty" db:"avatar_url"`
}

func (m *TeamMember) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	return m.FirstName + " " + m.LastName
}

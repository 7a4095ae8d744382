package family

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentacare/dentacare/pkg/date"
)

// Genders a family member can be recorded with.
var ValidGenders = map[string]bool{
	"Male":   true,
	"Female": true,
	"Other":  true,
}

// Member maps to the family_members table. Rows are hard-deleted and cascade
// away with their patient.
type Member struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patientId"`
	Name        string    `db:"name" json:"name"`
	DateOfBirth date.Date `db:"date_of_birth" json:"dateOfBirth"`
	Gender      string    `db:"gender" json:"gender"`
	Relation    string    `db:"relation" json:"relation"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateInput is the payload for adding a family member.
type CreateInput struct {
	Name        string    `json:"name"`
	DateOfBirth date.Date `json:"dateOfBirth"`
	Gender      string    `json:"gender"`
	Relation    string    `json:"relation"`
}

// UpdateInput is the partial-update payload; nil fields keep prior values.
type UpdateInput struct {
	Name        *string    `json:"name"`
	DateOfBirth *date.Date `json:"dateOfBirth"`
	Gender      *string    `json:"gender"`
	Relation    *string    `json:"relation"`
}

package consultation

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentacare/dentacare/pkg/date"
)

// Report maps to the consultation_reports table: one in-clinic visit record.
// Rows are immutable after creation and cascade away with their patient.
type Report struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PatientID        uuid.UUID  `db:"patient_id" json:"patientId"`
	DoctorName       string     `db:"doctor_name" json:"doctorName"`
	ConsultationDate date.Date  `db:"consultation_date" json:"consultationDate"`
	Diagnosis        string     `db:"diagnosis" json:"diagnosis"`
	Prescription     *string    `db:"prescription" json:"prescription,omitempty"`
	Notes            *string    `db:"notes" json:"notes,omitempty"`
	FollowUpDate     *date.Date `db:"follow_up_date" json:"followUpDate,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// CreateInput is the payload for recording a consultation.
type CreateInput struct {
	DoctorName       string     `json:"doctorName"`
	ConsultationDate date.Date  `json:"consultationDate"`
	Diagnosis        string     `json:"diagnosis"`
	Prescription     *string    `json:"prescription"`
	Notes            *string    `json:"notes"`
	FollowUpDate     *date.Date `json:"followUpDate"`
}

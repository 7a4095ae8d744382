package history

import (
	"time"

	"github.com/google/uuid"
)

// Tobacco forms a history row can record.
var ValidTobaccoForms = map[string]bool{
	"Cigarette":  true,
	"Gutkha":     true,
	"Pan Masala": true,
	"Other":      true,
}

// History maps to the medical_histories table; at most one row per patient.
type History struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	PatientID          uuid.UUID `db:"patient_id" json:"patientId"`
	Diabetes           bool      `db:"diabetes" json:"diabetes"`
	Hypertension       bool      `db:"hypertension" json:"hypertension"`
	Thyroid            bool      `db:"thyroid" json:"thyroid"`
	Asthma             bool      `db:"asthma" json:"asthma"`
	OtherConditions    *string   `db:"other_conditions" json:"otherConditions,omitempty"`
	Allergies          *string   `db:"allergies" json:"allergies,omitempty"`
	PastDentalHistory  *string   `db:"past_dental_history" json:"pastDentalHistory,omitempty"`
	CurrentMedications *string   `db:"current_medications" json:"currentMedications,omitempty"`
	SmokesTobacco      bool      `db:"smokes_tobacco" json:"smokesTobacco"`
	TobaccoForm        *string   `db:"tobacco_form" json:"tobaccoForm,omitempty"`
	TobaccoFrequency   *int      `db:"tobacco_frequency_per_day" json:"tobaccoFrequencyPerDay,omitempty"`
	TobaccoYears       *int      `db:"tobacco_duration_years" json:"tobaccoDurationYears,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// SetupInput is the upsert payload. All fields are optional; absent fields
// keep prior values (or the column defaults on first setup).
type SetupInput struct {
	Diabetes           *bool   `json:"diabetes"`
	Hypertension       *bool   `json:"hypertension"`
	Thyroid            *bool   `json:"thyroid"`
	Asthma             *bool   `json:"asthma"`
	OtherConditions    *string `json:"otherConditions"`
	Allergies          *string `json:"allergies"`
	PastDentalHistory  *string `json:"pastDentalHistory"`
	CurrentMedications *string `json:"currentMedications"`
	SmokesTobacco      *bool   `json:"smokesTobacco"`
	TobaccoForm        *string `json:"tobaccoForm"`
	TobaccoFrequency   *int    `json:"tobaccoFrequencyPerDay"`
	TobaccoYears       *int    `json:"tobaccoDurationYears"`
}

package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Subject kinds: an analysis is about the patient themselves or about one of
// their family members.
const (
	SubjectSelf   = "self"
	SubjectFamily = "family"
)

// Analysis categories produced by the imaging pipeline.
var ValidReportTypes = map[string]bool{
	"oral_diagnosis":   true,
	"dental_analysis":  true,
	"teeth_detection":  true,
	"cavity_detection": true,
	"plaque_detection": true,
	"other":            true,
}

// DefaultListLimit is the page size used when the client sends no limit.
const DefaultListLimit = 10

// Subject is who an analysis report is about. Kind "family" carries the
// family member id; kind "self" carries nothing.
type Subject struct {
	Kind     string     `json:"kind"`
	FamilyID *uuid.UUID `json:"familyMemberId,omitempty"`
}

// Report maps to the analysis_reports table: one externally produced analysis
// result. bounding_box_data is opaque JSON, stored and returned verbatim.
type Report struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	PatientID       uuid.UUID       `db:"patient_id" json:"patientId"`
	Subject         Subject         `json:"subject"`
	RelativeName    string          `db:"relative_name" json:"relativeName"`
	ReportType      string          `db:"report_type" json:"reportType"`
	BoundingBoxData json.RawMessage `db:"bounding_box_data" json:"boundingBoxData"`
	Images          []string        `db:"images" json:"images,omitempty"`
	Summary         *string         `db:"summary" json:"summary,omitempty"`
	IsActive        bool            `db:"is_active" json:"isActive"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// CreateInput is the creation payload. relativeId is the client sentinel:
// absent, empty, or "0" means the patient themselves; anything else must be
// the id of a family member of the target patient.
type CreateInput struct {
	PatientID       *uuid.UUID      `json:"patientId"`
	RelativeID      *string         `json:"relativeId"`
	ReportType      string          `json:"reportType"`
	BoundingBoxData json.RawMessage `json:"boundingBoxData"`
	Images          []string        `json:"images"`
	Summary         *string         `json:"summary"`
}

// ListFilter narrows a report listing.
type ListFilter struct {
	PatientID  *uuid.UUID
	ReportType *string
}

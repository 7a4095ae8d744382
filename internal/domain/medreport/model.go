package medreport

import (
	"time"

	"github.com/google/uuid"
)

// Report categories a medical report can be filed under. An empty category
// on upload falls back to Other.
var ValidReportTypes = map[string]bool{
	"Xray":         true,
	"Prescription": true,
	"LabReport":    true,
	"Scan":         true,
	"Other":        true,
}

// DefaultListLimit is the page size used when the client sends no limit.
const DefaultListLimit = 10

// Report maps to the medical_reports table: one uploaded document with its
// blob-store reference. Deletion is soft; the blob stays.
type Report struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patientId"`
	UploadedBy  uuid.UUID `db:"uploaded_by" json:"uploadedBy"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	FilePath    string    `db:"file_path" json:"filePath"`
	FileName    string    `db:"file_name" json:"fileName"`
	FileSize    int64     `db:"file_size" json:"fileSize"`
	FileType    string    `db:"file_type" json:"fileType"`
	ReportType  string    `db:"report_type" json:"reportType"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	UploadDate  time.Time `db:"upload_date" json:"uploadDate"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateInput is the metadata block of the multipart upload; the file itself
// travels beside it.
type CreateInput struct {
	PatientID   uuid.UUID
	Title       string
	Description *string
	ReportType  string
}

// UpdateInput is the partial-update payload; nil fields keep prior values.
type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ReportType  *string `json:"reportType"`
}

// ListFilter narrows a report listing.
type ListFilter struct {
	PatientID  *uuid.UUID
	ReportType *string
}

// Download is the payload of the download endpoint: the stored direct-view
// URL plus enough metadata to name the file client-side.
type Download struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

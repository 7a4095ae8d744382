package dentalimage

import (
	"time"

	"github.com/google/uuid"
)

// DefaultListLimit is the page size used when the client sends no limit.
const DefaultListLimit = 20

// Image maps to the dental_images table: one capture session of 1..N photos,
// stored as an ordered list of blob URLs. Deletion is soft.
type Image struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"userId"`
	RelativeID  *uuid.UUID `db:"relative_id" json:"relativeId,omitempty"`
	ImageURLs   []string   `db:"image_urls" json:"imageUrls"`
	Description *string    `db:"description" json:"description,omitempty"`
	ImageType   string     `db:"image_type" json:"imageType"`
	IsActive    bool       `db:"is_active" json:"isActive"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// CreateInput is the metadata block of the multipart upload.
type CreateInput struct {
	ImageType   string
	Description *string
	RelativeID  *uuid.UUID
}

// ListFilter narrows an image listing.
type ListFilter struct {
	UserID    *uuid.UUID
	ImageType *string
	// ActiveOnly hides soft-deleted rows; single-row reads ignore it.
	ActiveOnly bool
}

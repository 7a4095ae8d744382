package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentacare/dentacare/internal/domain/user"
)

// Patient maps to the patients table; exactly one row per patient user.
type Patient struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"userId"`
	Email        *string   `db:"email" json:"email,omitempty"`
	ProfileImage *string   `db:"profile_image" json:"profileImage,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Profile is the API view of a patient: the patient row plus its user row.
type Profile struct {
	Patient *Patient   `json:"patient"`
	User    *user.User `json:"user"`
}

// UserBlock is the nested user fragment accepted by profile setup.
type UserBlock struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Gender *string `json:"gender"`
}

// SetupInput is the profile upsert payload. All fields are optional; absent
// fields keep prior values. A top-level name is shorthand for user.name.
type SetupInput struct {
	Name  *string    `json:"name"`
	Email *string    `json:"email"`
	User  *UserBlock `json:"user"`
}

package query

import (
	"time"

	"github.com/google/uuid"
)

// Roles a query row can carry. Patient callers file as "user".
const (
	RoleUser   = "user"
	RoleDoctor = "doctor"
)

// Query maps to the queries table: one free-text contact-inbox message.
type Query struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Message   string    `db:"message" json:"message"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateInput is the submission payload; the role comes from the token, not
// the body.
type CreateInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// EditInput replaces the message text of an existing query.
type EditInput struct {
	Message string `json:"message"`
}

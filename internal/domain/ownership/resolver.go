// Package ownership resolves the ownership chain that links a target row back
// to a user. Every read/write against patient-scoped data goes through it.
// An absent row and a row owned by someone else are indistinguishable to the
// caller: both come back NotFound so ids cannot be enumerated.
package ownership

import (
	"context"

	"github.com/google/uuid"
)

// Resolver answers ownership questions for the clinical entity graph.
type Resolver interface {
	// PatientIDForUser returns the patient row owned by the given user, or
	// NotFound when the user has no patient profile.
	PatientIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	// FamilyMemberName returns the name of the family member only when it
	// belongs to the given patient; NotFound otherwise.
	FamilyMemberName(ctx context.Context, familyMemberID, patientID uuid.UUID) (string, error)
	// PatientDisplayName returns the display name of the patient's user row.
	PatientDisplayName(ctx context.Context, patientID uuid.UUID) (string, error)
}

package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentacare/dentacare/internal/domain/ownership"
	"github.com/dentacare/dentacare/internal/platform/apperr"
)

// TxRunner executes fn inside a database transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Service provides business logic for the one-per-patient medical history.
type Service struct {
	histories Repository
	owners    ownership.Resolver
	inTx      TxRunner
}

// NewService creates the medical history service.
func NewService(histories Repository, owners ownership.Resolver, inTx TxRunner) *Service {
	return &Service{histories: histories, owners: owners, inTx: inTx}
}

// Get returns the caller's medical history, or nil when none has been set up
// yet. Absence is not an error: the client probes for it on every visit.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*History, error) {
	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	h, err := s.histories.GetByPatient(ctx, patientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return h, nil
}

func (in SetupInput) apply(h *History) error {
	if in.Diabetes != nil {
		h.Diabetes = *in.Diabetes
	}
	if in.Hypertension != nil {
		h.Hypertension = *in.Hypertension
	}
	if in.Thyroid != nil {
		h.Thyroid = *in.Thyroid
	}
	if in.Asthma != nil {
		h.Asthma = *in.Asthma
	}
	if in.OtherConditions != nil {
		h.OtherConditions = in.OtherConditions
	}
	if in.Allergies != nil {
		h.Allergies = in.Allergies
	}
	if in.PastDentalHistory != nil {
		h.PastDentalHistory = in.PastDentalHistory
	}
	if in.CurrentMedications != nil {
		h.CurrentMedications = in.CurrentMedications
	}
	if in.SmokesTobacco != nil {
		h.SmokesTobacco = *in.SmokesTobacco
	}
	if in.TobaccoForm != nil {
		if !ValidTobaccoForms[*in.TobaccoForm] {
			return apperr.New(apperr.BadRequest, fmt.Sprintf(
				"tobaccoForm must be one of Cigarette, Gutkha, Pan Masala, Other; got %q",
				*in.TobaccoForm))
		}
		h.TobaccoForm = in.TobaccoForm
	}
	if in.TobaccoFrequency != nil {
		if *in.TobaccoFrequency < 0 {
			return apperr.New(apperr.BadRequest, "tobaccoFrequencyPerDay must not be negative")
		}
		h.TobaccoFrequency = in.TobaccoFrequency
	}
	if in.TobaccoYears != nil {
		if *in.TobaccoYears < 0 {
			return apperr.New(apperr.BadRequest, "tobaccoDurationYears must not be negative")
		}
		h.TobaccoYears = in.TobaccoYears
	}
	return nil
}

// Setup finds or creates the caller's history row and applies a partial
// update. The returned flag is true when the row was created. The
// find-or-create runs in a transaction; a concurrent first-time setup loses
// on the unique (patient_id) index and surfaces as Conflict.
func (s *Service) Setup(ctx context.Context, userID uuid.UUID, in SetupInput) (*History, bool, error) {
	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	var out *History
	created := false
	err = s.inTx(ctx, func(ctx context.Context) error {
		h, err := s.histories.GetByPatient(ctx, patientID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			h = &History{PatientID: patientID}
			if err := in.apply(h); err != nil {
				return err
			}
			if err := s.histories.Create(ctx, h); err != nil {
				return apperr.FromDB(err, "")
			}
			created = true
		case err != nil:
			return apperr.FromDB(err, "")
		default:
			if err := in.apply(h); err != nil {
				return err
			}
			if err := s.histories.Update(ctx, h); err != nil {
				return apperr.FromDB(err, "")
			}
		}
		out = h
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

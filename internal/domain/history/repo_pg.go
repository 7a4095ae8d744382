package history

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentacare/dentacare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const historyCols = `id, patient_id, diabetes, hypertension, thyroid, asthma,
	other_conditions, allergies, past_dental_history, current_medications,
	smokes_tobacco, tobacco_form, tobacco_frequency_per_day, tobacco_duration_years,
	created_at, updated_at`

func scanHistory(row pgx.Row) (*History, error) {
	var h History
	err := row.Scan(&h.ID, &h.PatientID, &h.Diabetes, &h.Hypertension, &h.Thyroid,
		&h.Asthma, &h.OtherConditions, &h.Allergies, &h.PastDentalHistory,
		&h.CurrentMedications, &h.SmokesTobacco, &h.TobaccoForm,
		&h.TobaccoFrequency, &h.TobaccoYears, &h.CreatedAt, &h.UpdatedAt)
	return &h, err
}

func (r *repoPG) Create(ctx context.Context, h *History) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medical_histories (
			id, patient_id, diabetes, hypertension, thyroid, asthma,
			other_conditions, allergies, past_dental_history, current_medications,
			smokes_tobacco, tobacco_form, tobacco_frequency_per_day, tobacco_duration_years)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		h.ID, h.PatientID, h.Diabetes, h.Hypertension, h.Thyroid, h.Asthma,
		h.OtherConditions, h.Allergies, h.PastDentalHistory, h.CurrentMedications,
		h.SmokesTobacco, h.TobaccoForm, h.TobaccoFrequency, h.TobaccoYears)
	return err
}

func (r *repoPG) GetByPatient(ctx context.Context, patientID uuid.UUID) (*History, error) {
	return scanHistory(r.conn(ctx).QueryRow(ctx,
		`SELECT `+historyCols+` FROM medical_histories WHERE patient_id = $1`, patientID))
}

func (r *repoPG) Update(ctx context.Context, h *History) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medical_histories SET
			diabetes = $2, hypertension = $3, thyroid = $4, asthma = $5,
			other_conditions = $6, allergies = $7, past_dental_history = $8,
			current_medications = $9, smokes_tobacco = $10, tobacco_form = $11,
			tobacco_frequency_per_day = $12, tobacco_duration_years = $13,
			updated_at = NOW()
		WHERE id = $1`,
		h.ID, h.Diabetes, h.Hypertension, h.Thyroid, h.Asthma,
		h.OtherConditions, h.Allergies, h.PastDentalHistory, h.CurrentMedications,
		h.SmokesTobacco, h.TobaccoForm, h.TobaccoFrequency, h.TobaccoYears)
	return err
}

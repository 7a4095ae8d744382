package consultation

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

const reportCols = `id, patient_id, doctor_name, consultation_date, diagnosis,
	prescription, notes, follow_up_date, created_at, updated_at`

func scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	err := row.Scan(&rep.ID, &rep.PatientID, &rep.DoctorName, &rep.ConsultationDate,
		&rep.Diagnosis, &rep.Prescription, &rep.Notes, &rep.FollowUpDate,
		&rep.CreatedAt, &rep.UpdatedAt)
	return &rep, err
}

func (r *repoPG) Create(ctx context.Context, rep *Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO consultation_reports (
			id, patient_id, doctor_name, consultation_date, diagnosis,
			prescription, notes, follow_up_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rep.ID, rep.PatientID, rep.DoctorName, rep.ConsultationDate, rep.Diagnosis,
		rep.Prescription, rep.Notes, rep.FollowUpDate)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id, patientID uuid.UUID) (*Report, error) {
	return scanReport(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reportCols+` FROM consultation_reports WHERE id = $1 AND patient_id = $2`,
		id, patientID))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+reportCols+` FROM consultation_reports
		WHERE patient_id = $1
		ORDER BY consultation_date DESC, created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []*Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

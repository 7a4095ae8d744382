package medreport

import (
	"context"
	"fmt"

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

const reportCols = `id, patient_id, uploaded_by, title, description, file_path,
	file_name, file_size, file_type, report_type, is_active, upload_date,
	created_at, updated_at`

func scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	err := row.Scan(&rep.ID, &rep.PatientID, &rep.UploadedBy, &rep.Title,
		&rep.Description, &rep.FilePath, &rep.FileName, &rep.FileSize,
		&rep.FileType, &rep.ReportType, &rep.IsActive, &rep.UploadDate,
		&rep.CreatedAt, &rep.UpdatedAt)
	return &rep, err
}

func (r *repoPG) Create(ctx context.Context, rep *Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medical_reports (
			id, patient_id, uploaded_by, title, description, file_path,
			file_name, file_size, file_type, report_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rep.ID, rep.PatientID, rep.UploadedBy, rep.Title, rep.Description,
		rep.FilePath, rep.FileName, rep.FileSize, rep.FileType, rep.ReportType)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	return scanReport(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reportCols+` FROM medical_reports WHERE id = $1`, id))
}

func listClauses(f ListFilter) (string, []interface{}) {
	where := `WHERE is_active = TRUE`
	args := []interface{}{}
	if f.PatientID != nil {
		args = append(args, *f.PatientID)
		where += fmt.Sprintf(` AND patient_id = $%d`, len(args))
	}
	if f.ReportType != nil {
		args = append(args, *f.ReportType)
		where += fmt.Sprintf(` AND report_type = $%d`, len(args))
	}
	return where, args
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Report, int, error) {
	where, args := listClauses(f)

	var total int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM medical_reports `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(`
		SELECT %s FROM medical_reports %s
		ORDER BY upload_date DESC
		LIMIT $%d OFFSET $%d`, reportCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reports := []*Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, rep)
	}
	return reports, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, rep *Report) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medical_reports
		SET title = $2, description = $3, report_type = $4, updated_at = NOW()
		WHERE id = $1`,
		rep.ID, rep.Title, rep.Description, rep.ReportType)
	return err
}

func (r *repoPG) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medical_reports SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

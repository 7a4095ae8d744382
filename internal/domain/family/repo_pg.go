package family

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

const memberCols = `id, patient_id, name, date_of_birth, gender, relation, created_at, updated_at`

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.PatientID, &m.Name, &m.DateOfBirth, &m.Gender,
		&m.Relation, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Member) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO family_members (id, patient_id, name, date_of_birth, gender, relation)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.PatientID, m.Name, m.DateOfBirth, m.Gender, m.Relation)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id, patientID uuid.UUID) (*Member, error) {
	return scanMember(r.conn(ctx).QueryRow(ctx,
		`SELECT `+memberCols+` FROM family_members WHERE id = $1 AND patient_id = $2`,
		id, patientID))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Member, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+memberCols+` FROM family_members WHERE patient_id = $1 ORDER BY created_at`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, m *Member) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE family_members
		SET name = $3, date_of_birth = $4, gender = $5, relation = $6, updated_at = NOW()
		WHERE id = $1 AND patient_id = $2`,
		m.ID, m.PatientID, m.Name, m.DateOfBirth, m.Gender, m.Relation)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id, patientID uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM family_members WHERE id = $1 AND patient_id = $2`, id, patientID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

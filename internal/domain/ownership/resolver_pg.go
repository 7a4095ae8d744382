package ownership

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type resolverPG struct{ pool *pgxpool.Pool }

func NewResolverPG(pool *pgxpool.Pool) Resolver {
	return &resolverPG{pool: pool}
}

func (r *resolverPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *resolverPG) PatientIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id FROM patients WHERE user_id = $1`, userID).Scan(&id)
	if err != nil {
		return uuid.Nil, apperr.FromDB(err, "patient profile not found")
	}
	return id, nil
}

func (r *resolverPG) FamilyMemberName(ctx context.Context, familyMemberID, patientID uuid.UUID) (string, error) {
	var name string
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT name FROM family_members WHERE id = $1 AND patient_id = $2`,
		familyMemberID, patientID).Scan(&name)
	if err != nil {
		return "", apperr.FromDB(err, "family member not found")
	}
	return name, nil
}

func (r *resolverPG) PatientDisplayName(ctx context.Context, patientID uuid.UUID) (string, error) {
	var name string
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT u.name FROM users u
		JOIN patients p ON p.user_id = u.id
		WHERE p.id = $1`, patientID).Scan(&name)
	if err != nil {
		return "", apperr.FromDB(err, "patient not found")
	}
	return name, nil
}

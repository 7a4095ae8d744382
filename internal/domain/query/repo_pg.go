package query

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

const queryCols = `id, name, email, phone, message, role, created_at, updated_at`

func scanQuery(row pgx.Row) (*Query, error) {
	var q Query
	err := row.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.Message, &q.Role,
		&q.CreatedAt, &q.UpdatedAt)
	return &q, err
}

func (r *repoPG) Create(ctx context.Context, q *Query) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO queries (id, name, email, phone, message, role)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		q.ID, q.Name, q.Email, q.Phone, q.Message, q.Role)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Query, error) {
	return scanQuery(r.conn(ctx).QueryRow(ctx,
		`SELECT `+queryCols+` FROM queries WHERE id = $1`, id))
}

func (r *repoPG) list(ctx context.Context, sql string, args ...interface{}) ([]*Query, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queries := []*Query{}
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

func (r *repoPG) ListAll(ctx context.Context) ([]*Query, error) {
	return r.list(ctx, `SELECT `+queryCols+` FROM queries ORDER BY created_at DESC`)
}

func (r *repoPG) ListByRole(ctx context.Context, role string) ([]*Query, error) {
	return r.list(ctx,
		`SELECT `+queryCols+` FROM queries WHERE role = $1 ORDER BY created_at DESC`, role)
}

func (r *repoPG) UpdateMessage(ctx context.Context, id uuid.UUID, message string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE queries SET message = $2, updated_at = NOW() WHERE id = $1`,
		id, message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

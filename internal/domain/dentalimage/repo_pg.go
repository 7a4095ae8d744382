package dentalimage

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

const imageCols = `id, user_id, relative_id, image_urls, description, image_type,
	is_active, created_at, updated_at`

func scanImage(row pgx.Row) (*Image, error) {
	var img Image
	err := row.Scan(&img.ID, &img.UserID, &img.RelativeID, &img.ImageURLs,
		&img.Description, &img.ImageType, &img.IsActive, &img.CreatedAt, &img.UpdatedAt)
	return &img, err
}

func (r *repoPG) Create(ctx context.Context, img *Image) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO dental_images (id, user_id, relative_id, image_urls, description, image_type)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		img.ID, img.UserID, img.RelativeID, img.ImageURLs, img.Description, img.ImageType)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Image, error) {
	return scanImage(r.conn(ctx).QueryRow(ctx,
		`SELECT `+imageCols+` FROM dental_images WHERE id = $1`, id))
}

func listClauses(f ListFilter) (string, []interface{}) {
	where := `WHERE 1=1`
	args := []interface{}{}
	if f.ActiveOnly {
		where += ` AND is_active = TRUE`
	}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		where += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if f.ImageType != nil {
		args = append(args, *f.ImageType)
		where += fmt.Sprintf(` AND image_type = $%d`, len(args))
	}
	return where, args
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Image, int, error) {
	where, args := listClauses(f)

	var total int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM dental_images `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(`
		SELECT %s FROM dental_images %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, imageCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	images := []*Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, 0, err
		}
		images = append(images, img)
	}
	return images, total, rows.Err()
}

func (r *repoPG) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE dental_images SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, full_name, picture_url, password_hash, tier, subscription_expires_at, is_admin, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, picture_url, password_hash, tier, subscription_expires_at, is_admin, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	tier := user.Tier
	if tier == "" {
		tier = TierFree
	}
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.PictureURL,
		user.PasswordHash,
		string(tier),
		nullableTime(user.SubscriptionExpiresAt),
		user.IsAdmin,
	)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) UpsertByEmail(ctx context.Context, user User) (User, error) {
	query := `
INSERT INTO users (id, email, full_name, picture_url, tier, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'free', now(), now())
ON CONFLICT (email) DO UPDATE SET
  full_name = EXCLUDED.full_name,
  picture_url = EXCLUDED.picture_url,
  updated_at = now()
RETURNING ` + userColumns
	row := r.DB.QueryRowContext(ctx, query, user.ID, user.Email, user.FullName, user.PictureURL)
	return scanUser(row)
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY email`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PGRepo) SetSubscription(ctx context.Context, userID string, tier Tier, expiresAt *time.Time) error {
	const query = `UPDATE users SET tier = $2, subscription_expires_at = $3, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID, string(tier), nullableTime(expiresAt))
	return requireRow(res, err)
}

func (r *PGRepo) SetAdmin(ctx context.Context, userID string, admin bool) error {
	const query = `UPDATE users SET is_admin = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID, admin)
	return requireRow(res, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var tier string
	var expiresAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PictureURL,
		&user.PasswordHash,
		&tier,
		&expiresAt,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Tier = Tier(tier)
	if expiresAt.Valid {
		t := expiresAt.Time
		user.SubscriptionExpiresAt = &t
	}
	return user, nil
}

func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

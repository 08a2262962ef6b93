package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, password_hash, picture_url, provider, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.FullName),
		nullableString(user.PasswordHash),
		nullableString(user.PictureURL),
		providerOrLocal(user.Provider),
	)
	return mapWriteError(err)
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, password_hash, picture_url, provider, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  password_hash = COALESCE(EXCLUDED.password_hash, users.password_hash),
  picture_url = EXCLUDED.picture_url,
  provider = EXCLUDED.provider,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.FullName),
		nullableString(user.PasswordHash),
		nullableString(user.PictureURL),
		providerOrLocal(user.Provider),
	)
	return mapWriteError(err)
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, password_hash, picture_url, provider, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, email, full_name, password_hash, picture_url, provider, created_at, updated_at
FROM users
WHERE lower(email) = lower($1)
LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var fullName sql.NullString
	var passwordHash sql.NullString
	var pictureURL sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&fullName,
		&passwordHash,
		&pictureURL,
		&user.Provider,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.FullName = fullName.String
	user.PasswordHash = passwordHash.String
	user.PictureURL = pictureURL.String
	return user, nil
}

// mapWriteError turns a unique violation on the email index into ErrEmailTaken.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	return err
}

func providerOrLocal(provider string) string {
	if provider == "" {
		return ProviderLocal
	}
	return provider
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/netdash/apiserver/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, username, email, mobile_phone, password_hash, is_active, created_at`

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1`
	return r.getOne(ctx, query, username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (types.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE mobile_phone = $1`
	return r.getOne(ctx, query, phone)
}

func (r *UserRepository) getOne(ctx context.Context, query, identifier string) (types.User, error) {
	var user types.User
	err := r.db.QueryRowContext(ctx, query, identifier).Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.MobilePhone,
		&user.PasswordHash,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// TouchLastLogin records a successful login. Failures are not fatal to the
// login flow, so the caller may ignore the error.
func (r *UserRepository) TouchLastLogin(ctx context.Context, userID int) error {
	const query = `UPDATE users SET last_login = now() WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

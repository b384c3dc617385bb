package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lumonhq/persons/internal/domain"
	"github.com/lumonhq/persons/internal/store"
)

type accountsRepo struct {
	db *sql.DB
}

func (r *accountsRepo) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT username, password_hash, roles, enabled, created_at, updated_at
		FROM accounts
		WHERE username = ?`, username)

	var (
		a     domain.Account
		roles string
	)
	err := row.Scan(&a.Username, &a.PasswordHash, &roles, &a.Enabled, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.Roles = splitRoles(roles)
	return a, nil
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (username, password_hash, roles, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.Username, a.PasswordHash, joinRoles(a.Roles), a.Enabled, now, now)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, username, newHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET password_hash = ?, updated_at = ?
		WHERE username = ?`,
		newHash, time.Now().UTC(), username)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

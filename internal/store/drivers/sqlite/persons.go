package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lumonhq/persons/internal/domain"
	"github.com/lumonhq/persons/internal/store"
	"github.com/lumonhq/persons/pkg/idx"
)

type personsRepo struct {
	db *sql.DB
}

func scanPerson(row interface{ Scan(...any) error }) (domain.Person, error) {
	var (
		p  domain.Person
		id string
	)
	err := row.Scan(&id, &p.FirstName, &p.LastName, &p.Address, &p.Gender, &p.Enabled, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Person{}, err
	}
	p.ID = idx.ID(id)
	return p, nil
}

func (r *personsRepo) GetByID(ctx context.Context, id idx.ID) (domain.Person, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, address, gender, enabled, created_at, updated_at
		FROM persons
		WHERE id = ?`, string(id))

	p, err := scanPerson(row)
	if err != nil {
		return domain.Person{}, mapNotFound(err)
	}
	return p, nil
}

func (r *personsRepo) List(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, address, gender, enabled, created_at, updated_at
		FROM persons
		ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *personsRepo) Create(ctx context.Context, p domain.Person) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO persons (id, first_name, last_name, address, gender, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(p.ID), p.FirstName, p.LastName, p.Address, p.Gender, p.Enabled, now, now)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *personsRepo) Update(ctx context.Context, p domain.Person) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE persons
		SET first_name = ?, last_name = ?, address = ?, gender = ?, enabled = ?, updated_at = ?
		WHERE id = ?`,
		p.FirstName, p.LastName, p.Address, p.Gender, p.Enabled, time.Now().UTC(), string(p.ID))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *personsRepo) SetEnabled(ctx context.Context, id idx.ID, enabled bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE persons
		SET enabled = ?, updated_at = ?
		WHERE id = ?`,
		enabled, time.Now().UTC(), string(id))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *personsRepo) Delete(ctx context.Context, id idx.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

package store

import (
	"context"
	"errors"

	"github.com/lumonhq/persons/internal/domain"
	"github.com/lumonhq/persons/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it
// and expose sub-repositories to keep concerns tidy and testable.
type Store interface {
	Accounts() Accounts
	Persons() Persons

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

type Accounts interface {
	// GetByUsername is used during sign-in and refresh.
	GetByUsername(ctx context.Context, username string) (domain.Account, error)

	// Create inserts a new account.
	Create(ctx context.Context, a domain.Account) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, username, newHash string) error

	// IsEmpty returns true if there are no accounts. Used by seeding.
	IsEmpty(ctx context.Context) (bool, error)
}

type Persons interface {
	GetByID(ctx context.Context, id idx.ID) (domain.Person, error)

	// List returns all persons ordered by last name, then first name.
	List(ctx context.Context) ([]domain.Person, error)

	Create(ctx context.Context, p domain.Person) error

	// Update replaces the mutable fields of an existing person.
	Update(ctx context.Context, p domain.Person) error

	// SetEnabled flips the enabled flag and bumps updated_at.
	SetEnabled(ctx context.Context, id idx.ID, enabled bool) error

	Delete(ctx context.Context, id idx.ID) error
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumonhq/persons/internal/domain"
	"github.com/lumonhq/persons/internal/store"
	"github.com/lumonhq/persons/pkg/idx"
	"github.com/lumonhq/persons/pkg/slogx"
)

// PersonService implements the person CRUD operations on top of the store.
type PersonService struct {
	Store store.Store
}

// PersonInput carries the client-supplied fields for create and update.
type PersonInput struct {
	FirstName string
	LastName  string
	Address   string
	Gender    string
	Enabled   *bool
}

func (in PersonInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(in.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrRequiredValue, strings.Join(missing, ", "))
	}
	return nil
}

func (s *PersonService) Get(ctx context.Context, id idx.ID) (domain.Person, error) {
	if _, err := idx.Parse(string(id)); err != nil {
		return domain.Person{}, fmt.Errorf("%w: invalid person id", ErrRequiredValue)
	}
	return s.Store.Persons().GetByID(ctx, id)
}

func (s *PersonService) List(ctx context.Context) ([]domain.Person, error) {
	return s.Store.Persons().List(ctx)
}

func (s *PersonService) Create(ctx context.Context, in PersonInput) (domain.Person, error) {
	if err := in.validate(); err != nil {
		return domain.Person{}, err
	}

	p := domain.Person{
		ID:        idx.New(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Address:   strings.TrimSpace(in.Address),
		Gender:    strings.TrimSpace(in.Gender),
		Enabled:   true,
	}
	if in.Enabled != nil {
		p.Enabled = *in.Enabled
	}

	if err := s.Store.Persons().Create(ctx, p); err != nil {
		return domain.Person{}, err
	}

	slogx.FromContext(ctx).Info("person created", "person_id", p.ID)
	return s.Store.Persons().GetByID(ctx, p.ID)
}

func (s *PersonService) Update(ctx context.Context, id idx.ID, in PersonInput) (domain.Person, error) {
	if err := in.validate(); err != nil {
		return domain.Person{}, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Person{}, err
	}

	current.FirstName = strings.TrimSpace(in.FirstName)
	current.LastName = strings.TrimSpace(in.LastName)
	current.Address = strings.TrimSpace(in.Address)
	current.Gender = strings.TrimSpace(in.Gender)
	if in.Enabled != nil {
		current.Enabled = *in.Enabled
	}

	if err := s.Store.Persons().Update(ctx, current); err != nil {
		return domain.Person{}, err
	}
	return s.Store.Persons().GetByID(ctx, id)
}

// Disable soft-deletes a person by clearing the enabled flag. The record
// stays readable.
func (s *PersonService) Disable(ctx context.Context, id idx.ID) (domain.Person, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return domain.Person{}, err
	}
	if err := s.Store.Persons().SetEnabled(ctx, id, false); err != nil {
		return domain.Person{}, err
	}

	slogx.FromContext(ctx).Info("person disabled", "person_id", id)
	return s.Store.Persons().GetByID(ctx, id)
}

func (s *PersonService) Delete(ctx context.Context, id idx.ID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.Store.Persons().Delete(ctx, id); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("person deleted", "person_id", id)
	return nil
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumonhq/persons/internal/service"
	"github.com/lumonhq/persons/internal/store"
	"github.com/lumonhq/persons/pkg/idx"
)

func TestPersonServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := &service.PersonService{Store: newTestStore(t)}

	t.Run("create defaults to enabled", func(t *testing.T) {
		p, err := svc.Create(ctx, service.PersonInput{
			FirstName: "Ayrton",
			LastName:  "Senna",
			Address:   "Sao Paulo, Brazil",
			Gender:    "Male",
		})
		require.NoError(t, err)
		require.False(t, p.ID.IsZero())
		require.True(t, p.Enabled)
		require.False(t, p.CreatedAt.IsZero())
	})

	t.Run("missing names rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, service.PersonInput{FirstName: "Solo"})
		require.ErrorIs(t, err, service.ErrRequiredValue)
		require.ErrorContains(t, err, "lastName")

		_, err = svc.Create(ctx, service.PersonInput{LastName: "Solo"})
		require.ErrorIs(t, err, service.ErrRequiredValue)
		require.ErrorContains(t, err, "firstName")
	})

	t.Run("whitespace-only names rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, service.PersonInput{FirstName: "   ", LastName: "Senna"})
		require.ErrorIs(t, err, service.ErrRequiredValue)
	})
}

func TestPersonServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := &service.PersonService{Store: newTestStore(t)}

	created, err := svc.Create(ctx, service.PersonInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address:   "London",
		Gender:    "Female",
	})
	require.NoError(t, err)

	t.Run("get", func(t *testing.T) {
		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)
	})

	t.Run("get rejects malformed id before hitting the store", func(t *testing.T) {
		_, err := svc.Get(ctx, "not-a-ulid")
		require.ErrorIs(t, err, service.ErrRequiredValue)
	})

	t.Run("get unknown id", func(t *testing.T) {
		_, err := svc.Get(ctx, idx.New())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update replaces fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, service.PersonInput{
			FirstName: "Ada",
			LastName:  "King",
			Address:   "Ockham",
			Gender:    "Female",
		})
		require.NoError(t, err)
		require.Equal(t, "King", updated.LastName)
		require.Equal(t, "Ockham", updated.Address)
		require.True(t, updated.Enabled)
	})

	t.Run("update unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, idx.New(), service.PersonInput{FirstName: "A", LastName: "B"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("disable keeps the record readable", func(t *testing.T) {
		disabled, err := svc.Disable(ctx, created.ID)
		require.NoError(t, err)
		require.False(t, disabled.Enabled)

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.False(t, got.Enabled)
	})

	t.Run("disable unknown id", func(t *testing.T) {
		_, err := svc.Disable(ctx, idx.New())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, created.ID))
		_, err := svc.Get(ctx, created.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, svc.Delete(ctx, created.ID), store.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		_, err := svc.Create(ctx, service.PersonInput{FirstName: "Grace", LastName: "Hopper"})
		require.NoError(t, err)

		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})
}

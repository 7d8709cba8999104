package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JavierAQR/backend-luaspets/internal/models"
)

func TestPetCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pets := &PetService{DB: db}

	ana := createUser(t, db, "ana@example.com")
	luis := createUser(t, db, "luis@example.com")

	_, err := pets.Create(ctx, ana.ID, PetInput{Name: "Rocky"})
	require.ErrorIs(t, err, ErrValidation)

	pet, err := pets.Create(ctx, ana.ID, PetInput{Name: "Rocky", Species: "dog", Breed: "beagle"})
	require.NoError(t, err)
	require.Equal(t, ana.ID, pet.OwnerID)

	mine, err := pets.ListMine(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = pets.GetByID(ctx, luis.ID, models.RoleUser, pet.ID)
	require.ErrorIs(t, err, ErrForbidden)

	// Admins can read any pet.
	got, err := pets.GetByID(ctx, luis.ID, models.RoleAdmin, pet.ID)
	require.NoError(t, err)
	require.Equal(t, "Rocky", got.Name)

	updated, err := pets.Update(ctx, ana.ID, pet.ID, PetInput{Breed: "bulldog"})
	require.NoError(t, err)
	require.Equal(t, "Rocky", updated.Name)
	require.Equal(t, "bulldog", updated.Breed)

	_, err = pets.Update(ctx, luis.ID, pet.ID, PetInput{Name: "Stolen"})
	require.ErrorIs(t, err, ErrForbidden)

	err = pets.Delete(ctx, luis.ID, models.RoleUser, pet.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, pets.Delete(ctx, ana.ID, models.RoleUser, pet.ID))

	err = pets.Delete(ctx, ana.ID, models.RoleUser, pet.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

package fleet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFleetCRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	created, err := svc.Create(ctx, CreateInput{
		Brand:           "Lada",
		Model:           "Granta",
		Year:            2022,
		PlateNumber:     "А123ВС178",
		Transmission:    "manual",
		LicenseCategory: "B",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "active", created.Status, "status defaults to active")

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Granta", got.Model)

	status := "maintenance"
	updated, err := svc.Update(ctx, created.ID, &Update{Status: &status})
	require.NoError(t, err)
	require.Equal(t, "maintenance", updated.Status)
	require.Equal(t, "Lada", updated.Brand)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFleetCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	_, err := svc.Create(context.Background(), CreateInput{Brand: "Lada"})
	require.ErrorIs(t, err, ErrValidation)
}

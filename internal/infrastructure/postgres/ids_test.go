package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/repository"
)

// Los repos se construyen sin Querier: un id mal formado debe resolverse antes de ir a la BD.

func TestLedgerRepo_IDsMalFormados(t *testing.T) {
	repo := NewLedgerRepository(nil)
	ctx := context.Background()

	// Caso 1: phiếu con id no UUID = sin filas (no encontrado, no fallo de lectura)
	rows, err := repo.ListByReceipt(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Caso 2: historial de un producto con id no UUID
	_, err = repo.ListByProduct(ctx, "abc", true, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRepo_IDsMalFormados(t *testing.T) {
	repo := NewProductRepository(nil)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "p-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = repo.GetForUpdate(ctx, "p-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, repo.UpdateStock(ctx, "p-1", 3), domain.ErrInvalidInput)

	_, err = repo.List(ctx, repository.ProductFilter{CategoryID: "bebidas"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := repo.GetByIDs(ctx, []string{"x", "", "y"})
	require.NoError(t, err)
	assert.Empty(t, list, "ningún id válido: no se consulta")
}

func TestOnlyUUIDs(t *testing.T) {
	good := "6f1c2a4e-8b7d-4c3a-9e21-0d5b6a7c8e9f"
	assert.Equal(t, []string{good}, onlyUUIDs([]string{"abc", good, ""}))
	assert.True(t, isUUID(good))
	assert.False(t, isUUID("6f1c2a4e"))
}

package migration_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoizo-api/internal/application/migration"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/memory"
)

func TestBackfill_CompletaValoresPorDefecto(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceRepository()
	_, err := repo.Save(ctx, &entity.Invoice{ID: "legacy", OwnerID: "u"})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &entity.Invoice{
		ID: "actual", OwnerID: "u", Status: entity.StatusPaid,
		TransactionType: entity.InterState, GSTDetails: &entity.GSTDetails{IGSTTotal: 18, GSTTotal: 18},
	})
	require.NoError(t, err)

	res, err := migration.Backfill(ctx, repo, nil)
	require.NoError(t, err)
	assert.Equal(t, migration.Result{
		Total: 2, StatusMigrated: 1, TransactionTypeMigrated: 1, GSTDetailsMigrated: 1, Success: true,
	}, res)

	legacy, err := repo.FindByID(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, legacy.Status)
	assert.Equal(t, entity.IntraState, legacy.TransactionType)
	require.NotNil(t, legacy.GSTDetails)
	assert.Zero(t, legacy.GSTDetails.GSTTotal)

	current, err := repo.FindByID(ctx, "actual")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, current.Status)
	assert.Equal(t, 18.0, current.GSTDetails.IGSTTotal)
}

func TestBackfill_Idempotente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceRepository()
	_, err := repo.Save(ctx, &entity.Invoice{ID: "legacy", OwnerID: "u"})
	require.NoError(t, err)

	_, err = migration.Backfill(ctx, repo, nil)
	require.NoError(t, err)
	res, err := migration.Backfill(ctx, repo, nil)
	require.NoError(t, err)
	assert.Equal(t, migration.Result{Total: 1, Success: true}, res)
}

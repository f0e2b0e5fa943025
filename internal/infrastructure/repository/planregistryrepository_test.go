package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	"github.com/MV-Clouds/quickform-payments/internal/infrastructure/persistence/models"
	"github.com/MV-Clouds/quickform-payments/internal/shared/db"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
)

func setupTestRepo(t *testing.T) *PlanRegistryRepository {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.AutoMigrate(&models.PlanRegistryModel{})
	require.NoError(t, err)

	return NewPlanRegistryRepository(database, logger.NewLogger())
}

func testEntry(fieldID, merchantID string, syncedAt time.Time) *formpayment.RegistryEntry {
	return &formpayment.RegistryEntry{
		FieldID:         fieldID,
		MerchantID:      merchantID,
		RemotePlanID:    "P-" + fieldID,
		RemoteProductID: "PROD-" + fieldID,
		PlanStatus:      "ACTIVE",
		SyncedConfig:    []byte(`{"name":"Gold Plan","price":"19.99"}`),
		SyncedAt:        syncedAt,
	}
}

func TestPlanRegistryRepository_GetAbsent(t *testing.T) {
	repo := setupTestRepo(t)

	entry, err := repo.Get(context.Background(), "field_1", "merchant_a")

	require.NoError(t, err)
	assert.Nil(t, entry, "absent entries are (nil, nil), not an error")
}

func TestPlanRegistryRepository_SetAndGet(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	entry := testEntry("field_1", "merchant_a", time.Now().UTC())
	require.NoError(t, repo.Set(ctx, entry))
	assert.NotEmpty(t, entry.SID, "Set must backfill the generated SID")
	assert.Contains(t, entry.SID, "pl_")

	found, err := repo.Get(ctx, "field_1", "merchant_a")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, entry.SID, found.SID)
	assert.Equal(t, "P-field_1", found.RemotePlanID)
	assert.Equal(t, "PROD-field_1", found.RemoteProductID)
	assert.Equal(t, "ACTIVE", found.PlanStatus)
	assert.JSONEq(t, `{"name":"Gold Plan","price":"19.99"}`, string(found.SyncedConfig))
}

func TestPlanRegistryRepository_GetIsPairScoped(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, testEntry("field_1", "merchant_a", time.Now().UTC())))

	found, err := repo.Get(ctx, "field_1", "merchant_b")
	require.NoError(t, err)
	assert.Nil(t, found, "the same field under another merchant is a different link")
}

func TestPlanRegistryRepository_SetUpserts(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first := testEntry("field_1", "merchant_a", time.Now().UTC())
	require.NoError(t, repo.Set(ctx, first))

	second := testEntry("field_1", "merchant_a", time.Now().UTC().Add(time.Minute))
	second.RemotePlanID = "P-REPLACED"
	second.PlanStatus = "INACTIVE"
	second.SyncedConfig = []byte(`{"name":"Gold Plan v2","price":"29.99"}`)
	require.NoError(t, repo.Set(ctx, second))

	found, err := repo.Get(ctx, "field_1", "merchant_a")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.SID, found.SID, "an upsert must not mint a new identity")
	assert.Equal(t, "P-REPLACED", found.RemotePlanID)
	assert.Equal(t, "INACTIVE", found.PlanStatus)
	assert.JSONEq(t, `{"name":"Gold Plan v2","price":"29.99"}`, string(found.SyncedConfig))

	entries, err := repo.ListByMerchant(ctx, "merchant_a")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "upsert must not duplicate the row")
}

func TestPlanRegistryRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, testEntry("field_1", "merchant_a", time.Now().UTC())))

	removed, err := repo.Delete(ctx, "field_1", "merchant_a")
	require.NoError(t, err)
	assert.True(t, removed)

	found, err := repo.Get(ctx, "field_1", "merchant_a")
	require.NoError(t, err)
	assert.Nil(t, found)

	removed, err = repo.Delete(ctx, "field_1", "merchant_a")
	require.NoError(t, err)
	assert.False(t, removed, "deleting an absent entry reports false")
}

func TestPlanRegistryRepository_SetAfterDeleteRelinks(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, testEntry("field_1", "merchant_a", time.Now().UTC())))

	removed, err := repo.Delete(ctx, "field_1", "merchant_a")
	require.NoError(t, err)
	require.True(t, removed)

	relinked := testEntry("field_1", "merchant_a", time.Now().UTC())
	relinked.RemotePlanID = "P-RELINKED"
	require.NoError(t, repo.Set(ctx, relinked))

	found, err := repo.Get(ctx, "field_1", "merchant_a")
	require.NoError(t, err)
	require.NotNil(t, found, "a re-linked entry must be visible after delete then set")
	assert.Equal(t, "P-RELINKED", found.RemotePlanID)

	entries, err := repo.ListByMerchant(ctx, "merchant_a")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPlanRegistryRepository_JoinsContextTransaction(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	tx := repo.db.Begin()
	require.NoError(t, tx.Error)

	require.NoError(t, repo.Set(db.WithTx(ctx, tx), testEntry("field_1", "merchant_a", time.Now().UTC())))
	require.NoError(t, tx.Rollback().Error)

	found, err := repo.Get(ctx, "field_1", "merchant_a")
	require.NoError(t, err)
	assert.Nil(t, found, "a rolled-back transaction must leave no entry behind")
}

func TestPlanRegistryRepository_ListByMerchant(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, repo.Set(ctx, testEntry("field_old", "merchant_a", base.Add(-2*time.Hour))))
	require.NoError(t, repo.Set(ctx, testEntry("field_new", "merchant_a", base)))
	require.NoError(t, repo.Set(ctx, testEntry("field_mid", "merchant_a", base.Add(-time.Hour))))
	require.NoError(t, repo.Set(ctx, testEntry("field_other", "merchant_b", base)))

	entries, err := repo.ListByMerchant(ctx, "merchant_a")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "field_new", entries[0].FieldID, "newest sync first")
	assert.Equal(t, "field_mid", entries[1].FieldID)
	assert.Equal(t, "field_old", entries[2].FieldID)

	entries, err = repo.ListByMerchant(ctx, "merchant_unknown")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Package repository provides GORM-backed implementations of the domain
// persistence ports.
package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	"github.com/MV-Clouds/quickform-payments/internal/infrastructure/persistence/models"
	"github.com/MV-Clouds/quickform-payments/internal/shared/db"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
)

// PlanRegistryRepository implements formpayment.PlanRegistry on top of GORM.
type PlanRegistryRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPlanRegistryRepository creates a new PlanRegistryRepository
func NewPlanRegistryRepository(database *gorm.DB, logger logger.Interface) *PlanRegistryRepository {
	return &PlanRegistryRepository{db: database, logger: logger}
}

// Get looks up the registry entry for a (field, merchant) pair.
// Returns (nil, nil) when no entry exists.
func (r *PlanRegistryRepository) Get(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error) {
	var model models.PlanRegistryModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("field_id = ? AND merchant_id = ?", fieldID, merchantID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&model), nil
}

// Set upserts the registry entry keyed by (field, merchant). An existing
// row keeps its SID and primary key; only the remote plan linkage and sync
// metadata are replaced. A soft-deleted row for the pair is revived, not
// shadowed.
func (r *PlanRegistryRepository) Set(ctx context.Context, entry *formpayment.RegistryEntry) error {
	model := r.toModel(entry)
	assignments := clause.AssignmentColumns([]string{
		"remote_plan_id",
		"remote_product_id",
		"plan_status",
		"synced_config",
		"synced_at",
		"updated_at",
	})
	// The unique index still holds the soft-deleted row, so the conflict
	// update must clear deleted_at or the re-linked entry stays invisible.
	assignments = append(assignments, clause.Assignment{
		Column: clause.Column{Name: "deleted_at"},
		Value:  nil,
	})
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "field_id"}, {Name: "merchant_id"}},
			DoUpdates: assignments,
		}).
		Create(model).Error
	if err != nil {
		return err
	}
	entry.SID = model.SID
	return nil
}

// Delete removes the registry entry for a (field, merchant) pair. Returns
// whether a row was actually removed.
func (r *PlanRegistryRepository) Delete(ctx context.Context, fieldID, merchantID string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("field_id = ? AND merchant_id = ?", fieldID, merchantID).
		Delete(&models.PlanRegistryModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByMerchant returns every registry entry for a merchant, newest sync
// first.
func (r *PlanRegistryRepository) ListByMerchant(ctx context.Context, merchantID string) ([]*formpayment.RegistryEntry, error) {
	var rows []models.PlanRegistryModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("merchant_id = ?", merchantID).
		Order("synced_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*formpayment.RegistryEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, r.toDomain(&rows[i]))
	}
	return entries, nil
}

func (r *PlanRegistryRepository) toModel(entry *formpayment.RegistryEntry) *models.PlanRegistryModel {
	return &models.PlanRegistryModel{
		SID:             entry.SID,
		FieldID:         entry.FieldID,
		MerchantID:      entry.MerchantID,
		RemotePlanID:    entry.RemotePlanID,
		RemoteProductID: entry.RemoteProductID,
		PlanStatus:      entry.PlanStatus,
		SyncedConfig:    datatypes.JSON(entry.SyncedConfig),
		SyncedAt:        entry.SyncedAt,
	}
}

func (r *PlanRegistryRepository) toDomain(model *models.PlanRegistryModel) *formpayment.RegistryEntry {
	return &formpayment.RegistryEntry{
		SID:             model.SID,
		FieldID:         model.FieldID,
		MerchantID:      model.MerchantID,
		RemotePlanID:    model.RemotePlanID,
		RemoteProductID: model.RemoteProductID,
		PlanStatus:      model.PlanStatus,
		SyncedConfig:    []byte(model.SyncedConfig),
		SyncedAt:        model.SyncedAt,
	}
}

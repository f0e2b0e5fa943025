package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MV-Clouds/quickform-payments/internal/shared/constants"
	"github.com/MV-Clouds/quickform-payments/internal/shared/id"
)

// PlanRegistryModel is the persistence model for reconciled (field, merchant)
// to remote plan links. This is the anti-corruption layer between domain and
// database.
type PlanRegistryModel struct {
	ID              uint   `gorm:"primarykey"`
	SID             string `gorm:"uniqueIndex;not null;size:20"`
	FieldID         string `gorm:"not null;size:100;uniqueIndex:idx_field_merchant,priority:1"`
	MerchantID      string `gorm:"not null;size:100;uniqueIndex:idx_field_merchant,priority:2;index:idx_merchant"`
	RemotePlanID    string `gorm:"not null;size:100"`
	RemoteProductID string `gorm:"size:100"`
	PlanStatus      string `gorm:"size:20"`
	// SyncedConfig snapshots the last plan payload sent to the provider,
	// kept for support and drift inspection.
	SyncedConfig datatypes.JSON
	SyncedAt     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PlanRegistryModel) TableName() string {
	return constants.TablePlanRegistryEntries
}

// BeforeCreate hook for GORM
func (m *PlanRegistryModel) BeforeCreate(tx *gorm.DB) error {
	if m.SID == "" {
		m.SID = id.MustGenerateWithPrefix(id.PrefixPlanLink, id.DefaultLength)
	}
	return nil
}

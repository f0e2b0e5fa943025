package formpayment

import (
	"context"
	"time"
)

// RegistryEntry records that a (field, merchant) pair was reconciled into a
// remote provider plan. Entries are owned exclusively by the processor; no
// other component writes them.
type RegistryEntry struct {
	SID             string
	FieldID         string
	MerchantID      string
	RemotePlanID    string
	RemoteProductID string
	PlanStatus      string
	// SyncedConfig is the JSON plan payload last sent to the provider,
	// kept for support and drift inspection.
	SyncedConfig []byte
	SyncedAt     time.Time
}

// PlanRegistry maps (fieldID, merchantID) to previously created remote plan
// identifiers. Implementations must make single-key reads and writes atomic;
// no transaction ever spans multiple entries.
type PlanRegistry interface {
	// Get returns the entry for the pair, or (nil, nil) when absent.
	Get(ctx context.Context, fieldID, merchantID string) (*RegistryEntry, error)
	// Set inserts or overwrites the entry for entry's (fieldID, merchantID).
	Set(ctx context.Context, entry *RegistryEntry) error
	// Delete removes the entry and reports whether one existed.
	Delete(ctx context.Context, fieldID, merchantID string) (bool, error)
	// ListByMerchant returns all entries reconciled under the merchant.
	ListByMerchant(ctx context.Context, merchantID string) ([]*RegistryEntry, error)
}

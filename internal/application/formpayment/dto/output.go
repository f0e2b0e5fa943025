package dto

import (
	"time"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	"github.com/MV-Clouds/quickform-payments/internal/shared/mapper"
)

// SubscriptionLinkDTO is one reconciled (field, plan) pair.
type SubscriptionLinkDTO struct {
	SID             string    `json:"sid"`
	FieldID         string    `json:"field_id"`
	MerchantID      string    `json:"merchant_id"`
	RemotePlanID    string    `json:"remote_plan_id"`
	RemoteProductID string    `json:"remote_product_id,omitempty"`
	PlanStatus      string    `json:"plan_status,omitempty"`
	SyncedAt        time.Time `json:"synced_at"`
}

// SubscriptionLinkMapper converts registry entries to their API shape.
var SubscriptionLinkMapper = mapper.New(
	func(entry *formpayment.RegistryEntry) SubscriptionLinkDTO {
		if entry == nil {
			return SubscriptionLinkDTO{}
		}
		return SubscriptionLinkDTO{
			SID:             entry.SID,
			FieldID:         entry.FieldID,
			MerchantID:      entry.MerchantID,
			RemotePlanID:    entry.RemotePlanID,
			RemoteProductID: entry.RemoteProductID,
			PlanStatus:      entry.PlanStatus,
			SyncedAt:        entry.SyncedAt,
		}
	},
	func(dto SubscriptionLinkDTO) *formpayment.RegistryEntry {
		return &formpayment.RegistryEntry{
			SID:             dto.SID,
			FieldID:         dto.FieldID,
			MerchantID:      dto.MerchantID,
			RemotePlanID:    dto.RemotePlanID,
			RemoteProductID: dto.RemoteProductID,
			PlanStatus:      dto.PlanStatus,
			SyncedAt:        dto.SyncedAt,
		}
	},
)

// Package cache provides Redis-backed read caches layered over the
// persistence ports.
package cache

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
)

const (
	planLinkKeyPrefix = "planregistry:link:"
	basePlanLinkTTL   = 30 * time.Minute
	planLinkTTLJitter = 10 * time.Minute // TTL range: 30-40 min (anti-stampede)
	nullMarkerTTL     = 2 * time.Minute  // Short TTL for not-found markers (anti-penetration)

	fieldSID             = "sid"
	fieldRemotePlanID    = "remote_plan_id"
	fieldRemoteProductID = "remote_product_id"
	fieldPlanStatus      = "plan_status"
	fieldSyncedConfig    = "synced_config"
	fieldSyncedAt        = "synced_at"
	fieldNullMarker      = "_null"
)

// CachedPlanRegistry decorates a formpayment.PlanRegistry with a Redis
// read-through cache on Get. Cache failures degrade to the inner registry;
// a broken Redis never blocks reconciliation.
type CachedPlanRegistry struct {
	inner  formpayment.PlanRegistry
	client *redis.Client
	logger logger.Interface
}

// NewCachedPlanRegistry creates a new CachedPlanRegistry
func NewCachedPlanRegistry(inner formpayment.PlanRegistry, client *redis.Client, logger logger.Interface) *CachedPlanRegistry {
	return &CachedPlanRegistry{
		inner:  inner,
		client: client,
		logger: logger,
	}
}

func (c *CachedPlanRegistry) key(fieldID, merchantID string) string {
	return fmt.Sprintf("%s%s:%s", planLinkKeyPrefix, fieldID, merchantID)
}

// Get returns the entry for the pair, consulting the cache first. A cached
// null marker short-circuits repeated lookups of absent pairs.
func (c *CachedPlanRegistry) Get(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error) {
	key := c.key(fieldID, merchantID)

	cached, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		c.logger.Warnw("plan registry cache read failed, falling back to store",
			"field_id", fieldID,
			"error", err,
		)
	} else if len(cached) > 0 {
		if cached[fieldNullMarker] == "1" {
			return nil, nil
		}
		return c.fromHash(fieldID, merchantID, cached), nil
	}

	entry, err := c.inner.Get(ctx, fieldID, merchantID)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		c.setNullMarker(ctx, key)
		return nil, nil
	}

	c.store(ctx, key, entry)
	return entry, nil
}

// Set writes through to the inner registry and refreshes the cached entry.
func (c *CachedPlanRegistry) Set(ctx context.Context, entry *formpayment.RegistryEntry) error {
	if err := c.inner.Set(ctx, entry); err != nil {
		return err
	}
	c.store(ctx, c.key(entry.FieldID, entry.MerchantID), entry)
	return nil
}

// Delete removes the entry from the inner registry and drops the cache key.
func (c *CachedPlanRegistry) Delete(ctx context.Context, fieldID, merchantID string) (bool, error) {
	removed, err := c.inner.Delete(ctx, fieldID, merchantID)
	if err != nil {
		return false, err
	}
	if delErr := c.client.Del(ctx, c.key(fieldID, merchantID)).Err(); delErr != nil {
		c.logger.Warnw("plan registry cache invalidation failed",
			"field_id", fieldID,
			"error", delErr,
		)
	}
	return removed, nil
}

// ListByMerchant always hits the inner registry; merchant-wide listings are
// rare and not worth keeping coherent in cache.
func (c *CachedPlanRegistry) ListByMerchant(ctx context.Context, merchantID string) ([]*formpayment.RegistryEntry, error) {
	return c.inner.ListByMerchant(ctx, merchantID)
}

func (c *CachedPlanRegistry) store(ctx context.Context, key string, entry *formpayment.RegistryEntry) {
	fields := map[string]interface{}{
		fieldSID:             entry.SID,
		fieldRemotePlanID:    entry.RemotePlanID,
		fieldRemoteProductID: entry.RemoteProductID,
		fieldPlanStatus:      entry.PlanStatus,
		fieldSyncedConfig:    string(entry.SyncedConfig),
		fieldSyncedAt:        entry.SyncedAt.Unix(),
	}

	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, planLinkTTLWithJitter())

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnw("plan registry cache write failed",
			"field_id", entry.FieldID,
			"error", err,
		)
	}
}

func (c *CachedPlanRegistry) setNullMarker(ctx context.Context, key string) {
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fieldNullMarker, "1")
	pipe.Expire(ctx, key, nullMarkerTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnw("plan registry null marker write failed", "error", err)
	}
}

func (c *CachedPlanRegistry) fromHash(fieldID, merchantID string, hash map[string]string) *formpayment.RegistryEntry {
	entry := &formpayment.RegistryEntry{
		SID:             hash[fieldSID],
		FieldID:         fieldID,
		MerchantID:      merchantID,
		RemotePlanID:    hash[fieldRemotePlanID],
		RemoteProductID: hash[fieldRemoteProductID],
		PlanStatus:      hash[fieldPlanStatus],
	}
	if cfg := hash[fieldSyncedConfig]; cfg != "" {
		entry.SyncedConfig = []byte(cfg)
	}
	if syncedAtStr, ok := hash[fieldSyncedAt]; ok {
		syncedAtUnix, _ := strconv.ParseInt(syncedAtStr, 10, 64)
		entry.SyncedAt = time.Unix(syncedAtUnix, 0).UTC()
	}
	return entry
}

func planLinkTTLWithJitter() time.Duration {
	return basePlanLinkTTL + time.Duration(rand.Int63n(int64(planLinkTTLJitter)))
}

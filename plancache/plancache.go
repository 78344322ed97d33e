// Package plancache answers "does this user have paid entitlement?" while
// keeping backend round-trips to a minimum. It owns the cached plan record
// and is the only writer of it.
package plancache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"flipvault-web/apperrors"
	"flipvault-web/clients"
	"flipvault-web/metrics"
	"flipvault-web/models"
	"flipvault-web/storage"
)

// FreshnessWindow is the maximum age of a cached plan record before a
// backend reconciliation is required.
const FreshnessWindow = time.Hour

// PlanFetcher is the slice of the backend client the cache needs.
type PlanFetcher interface {
	GetUserPlan(ctx context.Context, username string) (string, error)
	UpdateUserPlan(ctx context.Context, userID, plan string) (*clients.PlanUpdate, error)
}

// Cache reconciles the locally persisted plan record against the backend.
// All storage read-modify-write goes through one mutex.
type Cache struct {
	store   storage.Store
	fetcher PlanFetcher
	log     *zap.Logger
	mu      *sync.Mutex
	now     func() time.Time
}

func New(store storage.Store, fetcher PlanFetcher, log *zap.Logger) *Cache {
	return &Cache{
		store:   store,
		fetcher: fetcher,
		log:     log,
		mu:      &sync.Mutex{},
		now:     time.Now,
	}
}

// GetEntitlement never returns an error: every failure path degrades to a
// boolean so a flaky backend cannot lock paying users out.
func (c *Cache) GetEntitlement(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, cached := c.readRecord(ctx)
	if cached && rec.Fresh(c.now(), FreshnessWindow) {
		if _, err := models.ParsePlan(rec.PlanName); err == nil {
			metrics.PlanCacheLookups.WithLabelValues("hit").Inc()
			return rec.Paid()
		}
	}

	username, err := c.store.Get(ctx, storage.KeyUsername)
	if err != nil || username == "" {
		metrics.PlanCacheLookups.WithLabelValues("anonymous").Inc()
		return false
	}

	planName, err := c.fetcher.GetUserPlan(ctx, username)
	if err != nil {
		c.log.Warn("plan lookup failed, using last known record",
			zap.String("username", username), zap.Error(err))
		metrics.PlanCacheLookups.WithLabelValues("fallback").Inc()
		if cached {
			return rec.Paid()
		}
		return false
	}

	plan, err := models.ParsePlan(planName)
	if err != nil {
		// An unrecognized plan name is treated like a malformed body.
		c.log.Warn("backend returned unknown plan", zap.String("plan", planName))
		metrics.PlanCacheLookups.WithLabelValues("fallback").Inc()
		if cached {
			return rec.Paid()
		}
		return false
	}

	fresh := models.NewPlanRecord(plan, c.now())
	if ctx.Err() == nil {
		if err := c.writeRecord(ctx, fresh); err != nil {
			c.log.Warn("failed to persist plan record", zap.Error(err))
		}
	}
	metrics.PlanCacheLookups.WithLabelValues("miss").Inc()
	return fresh.Paid()
}

// SetEntitlementFromAdmin pushes a plan change to the backend. Plan names
// outside the closed set are rejected before any network call. When the
// change targets the signed-in user, the local record is overwritten
// immediately so their cache is never stale after a self-edit.
func (c *Cache) SetEntitlementFromAdmin(ctx context.Context, targetUserID, newPlanName string) error {
	plan, err := models.ParsePlan(newPlanName)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeValidationFailure, "plan update rejected", err)
	}

	upd, err := c.fetcher.UpdateUserPlan(ctx, targetUserID, string(plan))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	shadow := models.PlanRecord{
		PlanName:  string(plan),
		Status:    plan.Status(),
		UpdatedAt: now,
		UserID:    targetUserID,
	}
	if payload, err := json.Marshal(shadow); err == nil {
		if err := c.store.Set(ctx, storage.ShadowPlanKey(targetUserID), string(payload)); err != nil {
			c.log.Warn("failed to write shadow plan record", zap.Error(err))
		}
	}

	// Shadow records for other users never touch the signed-in user's
	// cached entitlement.
	current, err := c.store.Get(ctx, storage.KeyUsername)
	if err == nil && current != "" && current == upd.Username {
		if err := c.writeRecord(ctx, models.NewPlanRecord(plan, now)); err != nil {
			c.log.Warn("failed to refresh own plan record", zap.Error(err))
		}
	}
	return nil
}

// Seed records the plan returned alongside a successful login so the first
// guarded page load needs no extra round-trip. Unknown plan names are
// dropped at the boundary.
func (c *Cache) Seed(ctx context.Context, planName string) {
	plan, err := models.ParsePlan(planName)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeRecord(ctx, models.NewPlanRecord(plan, c.now())); err != nil {
		c.log.Warn("failed to seed plan record", zap.Error(err))
	}
}

// ClearPlanData drops the cached record so the next check reconciles with
// the backend instead of trusting a stale negative.
func (c *Cache) ClearPlanData(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(ctx, storage.KeyPlanData)
}

// Record returns the cached plan record, if any. Read-only; used by the
// dashboard view.
func (c *Cache) Record(ctx context.Context) (models.PlanRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readRecord(ctx)
}

func (c *Cache) readRecord(ctx context.Context) (models.PlanRecord, bool) {
	raw, err := c.store.Get(ctx, storage.KeyPlanData)
	if err != nil {
		return models.PlanRecord{}, false
	}
	var rec models.PlanRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return models.PlanRecord{}, false
	}
	return rec, true
}

func (c *Cache) writeRecord(ctx context.Context, rec models.PlanRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, storage.KeyPlanData, string(payload))
}

// Package collector runs the background snapshot collector. On an interval it
// pulls the upstream metrics for every active tenant, derives posture scores
// and appends a dated snapshot, which the dashboard history chart and report
// seeding read from.
package collector

import (
	"context"
	"time"

	appservice "github.com/mspsec/riskboard/internal/application/service"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	domainservice "github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/logger"
)

const tenantPageSize = 100

// Collector appends one posture snapshot per active tenant per interval.
type Collector struct {
	tenantRepo   repository.TenantRepository
	snapshotRepo repository.SnapshotRepository
	metricSvc    appservice.MetricService
	interval     time.Duration
	logger       logger.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates the collector.
func New(
	tenantRepo repository.TenantRepository,
	snapshotRepo repository.SnapshotRepository,
	metricSvc appservice.MetricService,
	interval time.Duration,
	log logger.Logger,
) *Collector {
	return &Collector{
		tenantRepo:   tenantRepo,
		snapshotRepo: snapshotRepo,
		metricSvc:    metricSvc,
		interval:     interval,
		logger:       log.WithComponent("collector"),
	}
}

// Start launches the collection loop. The first sweep runs after one full
// interval so a restart does not double-collect.
func (c *Collector) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.logger.Info(ctx, "collector started",
			logger.Duration("interval", c.interval))

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (c *Collector) Stop(ctx context.Context) error {
	if c.cancel == nil {
		return nil
	}
	c.cancel()
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep collects one snapshot for every active tenant. A tenant failing does
// not stop the sweep.
func (c *Collector) Sweep(ctx context.Context) {
	start := time.Now()
	var collected, failed int

	for offset := 0; ; offset += tenantPageSize {
		tenants, _, err := c.tenantRepo.FindAll(ctx, tenantPageSize, offset)
		if err != nil {
			c.logger.Error(ctx, "collector failed to list tenants", err)
			return
		}
		if len(tenants) == 0 {
			break
		}
		for _, tenant := range tenants {
			if !tenant.IsActive() {
				continue
			}
			if err := c.CollectTenant(ctx, tenant.ID); err != nil {
				failed++
				c.logger.Warn(ctx, "snapshot collection failed",
					logger.String("tenant_id", tenant.ID),
					logger.Error(err))
				continue
			}
			collected++
		}
		if len(tenants) < tenantPageSize {
			break
		}
	}

	c.logger.Info(ctx, "collector sweep finished",
		logger.Int("collected", collected),
		logger.Int("failed", failed),
		logger.Duration("elapsed", time.Since(start)))
}

// CollectTenant fetches the tenant's metrics, derives scores and appends a
// snapshot. Individual metric fetches may fail; the affected categories score
// zero and the snapshot is still written.
func (c *Collector) CollectTenant(ctx context.Context, tenantID string) error {
	bundle := domainservice.MetricBundle{
		SecureScores:       fetch[models.SecureScoreEntry](ctx, c, tenantID, constants.MetricSecureScores),
		Devices:            fetch[models.ManagedDevice](ctx, c, tenantID, constants.MetricManagedDevices),
		SignInPolicies:     fetch[models.ConditionalAccessPolicy](ctx, c, tenantID, constants.MetricSignInPolicies),
		TrustedLocations:   fetch[models.ConditionalAccessPolicy](ctx, c, tenantID, constants.MetricTrustedLocations),
		Admins:             fetch[models.DirectoryRoleMember](ctx, c, tenantID, constants.MetricDirectoryRoles),
		MFAMethods:         fetch[models.MFAMethodReport](ctx, c, tenantID, constants.MetricMFAMethods),
		CompliancePolicies: fetch[models.CompliancePolicy](ctx, c, tenantID, constants.MetricCompliancePolicies),
	}

	scores := domainservice.DeriveScores(bundle)
	snapshot := models.NewSnapshot(tenantID, scores, bundle.LatestSecureScorePercent())
	return c.snapshotRepo.Append(ctx, snapshot)
}

func fetch[T any](ctx context.Context, c *Collector, tenantID string, metricType constants.MetricType) []T {
	out, err := appservice.FetchTyped[T](ctx, c.metricSvc, tenantID, metricType)
	if err != nil {
		c.logger.Warn(ctx, "metric fetch failed during collection",
			logger.String("tenant_id", tenantID),
			logger.String("metric_type", string(metricType)),
			logger.Error(err))
		return nil
	}
	return out
}

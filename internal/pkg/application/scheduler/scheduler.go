package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

const DefaultScanInterval = 30 * time.Second

type Config struct {
	ScanIntervalSeconds int `yaml:"scanIntervalSeconds"`
}

func (c *Config) Interval() time.Duration {
	if c == nil || c.ScanIntervalSeconds <= 0 {
		return DefaultScanInterval
	}
	return time.Duration(c.ScanIntervalSeconds) * time.Second
}

//go:generate moq -rm -out tenantregistry_mock.go . TenantRegistry
type TenantRegistry interface {
	GetTenants(ctx context.Context) (types.Collection[string], error)
}

// ScanFunc runs one scan cycle for a tenant.
type ScanFunc func(ctx context.Context, tenant string) (types.ScanResult, error)

type Scheduler interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type scheduler struct {
	registry TenantRegistry
	scan     ScanFunc
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(registry TenantRegistry, scan ScanFunc, cfg *Config) Scheduler {
	return &scheduler{
		registry: registry,
		scan:     scan,
		interval: cfg.Interval(),
	}
}

// Start spawns one scan loop per known tenant. Tenants added after start are
// picked up on the next service restart.
func (s *scheduler) Start(ctx context.Context) error {
	log := logging.GetFromContext(ctx)

	tenants, err := s.registry.GetTenants(ctx)
	if err != nil {
		return err
	}

	if tenants.Count == 0 {
		log.Warn("no tenants registered, scheduler is idle")
		return nil
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	for _, tenant := range tenants.Data {
		s.wg.Add(1)
		go s.runTenant(runCtx, tenant)
	}

	log.Info("scheduler started", slog.Uint64("tenants", tenants.Count), slog.String("interval", s.interval.String()))

	return nil
}

// Stop cancels all scan loops and waits for in flight scans to finish, bounded
// by the given context.
func (s *scheduler) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runTenant ticks at the configured interval and runs scans off the ticker
// goroutine. A tick that arrives while the previous scan is still running is
// skipped, so one slow tenant never piles up overlapping scans.
func (s *scheduler) runTenant(ctx context.Context, tenant string) {
	defer s.wg.Done()

	log := logging.GetFromContext(ctx).With(slog.String("tenant", tenant))

	var inflight atomic.Bool

	launch := func() {
		if !inflight.CompareAndSwap(false, true) {
			log.Warn("previous scan still running, skipping this cycle")
			metrics.ScansTotal.WithLabelValues(tenant, "skipped").Inc()
			return
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer inflight.Store(false)

			_, err := s.scan(ctx, tenant)
			if err != nil {
				log.Error("scan failed", "err", err.Error())
			}
		}()
	}

	launch()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			launch()
		}
	}
}

package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/matryer/is"
)

func TestStartScansEveryTenant(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	var mu sync.Mutex
	scanned := map[string]int{}

	s := newTestScheduler(t, []string{"default", "acme"}, func(ctx context.Context, tenant string) (types.ScanResult, error) {
		mu.Lock()
		scanned[tenant]++
		mu.Unlock()
		return types.ScanResult{Tenant: tenant}, nil
	})

	is.NoErr(s.Start(ctx))

	waitUntil(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return scanned["default"] >= 2 && scanned["acme"] >= 2
	})

	is.NoErr(s.Stop(ctx))
}

func TestOverlappingScansAreSkipped(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{}, 32)

	var mu sync.Mutex
	inflight, maxInflight := 0, 0

	s := newTestScheduler(t, []string{"default"}, func(ctx context.Context, tenant string) (types.ScanResult, error) {
		mu.Lock()
		inflight++
		if inflight > maxInflight {
			maxInflight = inflight
		}
		mu.Unlock()

		started <- struct{}{}
		<-release

		mu.Lock()
		inflight--
		mu.Unlock()

		return types.ScanResult{}, nil
	})

	is.NoErr(s.Start(ctx))

	<-started

	// let several ticks pass while the first scan is blocked
	time.Sleep(100 * time.Millisecond)
	close(release)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	is.NoErr(s.Stop(stopCtx))

	mu.Lock()
	defer mu.Unlock()
	is.Equal(1, maxInflight)
}

func TestTenantsAreScannedIndependently(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	release := make(chan struct{})

	var mu sync.Mutex
	scanned := map[string]int{}

	s := newTestScheduler(t, []string{"slow", "fast"}, func(ctx context.Context, tenant string) (types.ScanResult, error) {
		mu.Lock()
		scanned[tenant]++
		mu.Unlock()

		if tenant == "slow" {
			select {
			case <-release:
			case <-ctx.Done():
			}
		}

		return types.ScanResult{}, nil
	})

	is.NoErr(s.Start(ctx))

	// the blocked slow tenant must not hold up the fast one
	waitUntil(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return scanned["fast"] >= 3
	})

	mu.Lock()
	is.Equal(1, scanned["slow"])
	mu.Unlock()

	close(release)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	is.NoErr(s.Stop(stopCtx))
}

func TestScanErrorsDoNotStopTheLoop(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	var mu sync.Mutex
	count := 0

	s := newTestScheduler(t, []string{"default"}, func(ctx context.Context, tenant string) (types.ScanResult, error) {
		mu.Lock()
		count++
		mu.Unlock()
		return types.ScanResult{}, errors.New("datasource unreachable")
	})

	is.NoErr(s.Start(ctx))

	waitUntil(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count >= 3
	})

	is.NoErr(s.Stop(ctx))
}

func TestStartFailsWhenRegistryFails(t *testing.T) {
	is := is.New(t)

	registry := &TenantRegistryMock{
		GetTenantsFunc: func(ctx context.Context) (types.Collection[string], error) {
			return types.Collection[string]{}, errors.New("connection refused")
		},
	}

	s := New(registry, func(ctx context.Context, tenant string) (types.ScanResult, error) {
		return types.ScanResult{}, nil
	}, nil)

	err := s.Start(context.Background())
	is.True(err != nil)
}

func TestStopWithoutStartIsANoOp(t *testing.T) {
	is := is.New(t)

	s := newTestScheduler(t, []string{"default"}, nil)

	is.NoErr(s.Stop(context.Background()))
}

func TestStopWaitsForInFlightScan(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	started := make(chan struct{}, 8)
	finished := make(chan struct{}, 8)

	s := newTestScheduler(t, []string{"default"}, func(ctx context.Context, tenant string) (types.ScanResult, error) {
		started <- struct{}{}
		time.Sleep(20 * time.Millisecond)
		finished <- struct{}{}
		return types.ScanResult{}, nil
	})

	is.NoErr(s.Start(ctx))

	<-started

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	is.NoErr(s.Stop(stopCtx))

	select {
	case <-finished:
	default:
		t.Fatal("stop returned before the in flight scan finished")
	}
}

func TestDefaultInterval(t *testing.T) {
	is := is.New(t)

	var cfg *Config
	is.Equal(DefaultScanInterval, cfg.Interval())
	is.Equal(45*time.Second, (&Config{ScanIntervalSeconds: 45}).Interval())
}

func newTestScheduler(t *testing.T, tenants []string, scan ScanFunc) *scheduler {
	t.Helper()

	registry := &TenantRegistryMock{
		GetTenantsFunc: func(ctx context.Context) (types.Collection[string], error) {
			return types.Collection[string]{Data: tenants, Count: uint64(len(tenants)), TotalCount: uint64(len(tenants))}, nil
		},
	}

	s := New(registry, scan, nil).(*scheduler)
	s.interval = 10 * time.Millisecond

	return s
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("condition not met within deadline")
}

package monitoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/diwise/iot-sensor-monitor/internal/pkg/application/alerts"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/timeseries"
	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-sensor-monitor/monitoring")

var ErrNoDatasource = fmt.Errorf("tenant has no datasource configured")

const (
	outcomeCreated   = "created"
	outcomeEscalated = "escalated"
	outcomeChecked   = "checked"
	outcomeResolved  = "resolved"
	outcomeNormal    = "normal"
	outcomeNoData    = "no_data"
	outcomeError     = "error"
)

type Config struct {
	WindowMinutes int `yaml:"windowMinutes"`
	BucketMinutes int `yaml:"bucketMinutes"`
}

func (c *Config) Window() time.Duration {
	if c == nil || c.WindowMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.WindowMinutes) * time.Minute
}

func (c *Config) Bucket() time.Duration {
	if c == nil || c.BucketMinutes <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.BucketMinutes) * time.Minute
}

//go:generate moq -rm -out thresholdprovider_mock.go . ThresholdProvider
type ThresholdProvider interface {
	QueryThresholds(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.SensorThreshold], error)
	GetDatasources(ctx context.Context, tenant string) ([]types.Datasource, error)
}

//go:generate moq -rm -out monitor_mock.go . Monitor
type Monitor interface {
	RunScan(ctx context.Context, tenant string) (types.ScanResult, error)
}

type monitor struct {
	thresholds ThresholdProvider
	alerts     alerts.AlertService
	ts         timeseries.Client
	config     *Config
}

func New(thresholds ThresholdProvider, alertSvc alerts.AlertService, ts timeseries.Client, cfg *Config) Monitor {
	if cfg == nil {
		cfg = &Config{}
	}

	return &monitor{
		thresholds: thresholds,
		alerts:     alertSvc,
		ts:         ts,
		config:     cfg,
	}
}

// RunScan evaluates every monitored sensor for one tenant, in threshold id
// order, and never lets a single sensor's failure abort the cycle. The scan
// is aborted up front only when the tenant has no datasource at all.
func (m *monitor) RunScan(ctx context.Context, tenant string) (types.ScanResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "run-scan")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx).With(slog.String("tenant", tenant))
	ctx = logging.NewContextWithLogger(ctx, log)

	result := types.ScanResult{
		Tenant:    tenant,
		StartedAt: time.Now().UTC(),
	}

	datasources, err := m.thresholds.GetDatasources(ctx, tenant)
	if err != nil {
		metrics.ScansTotal.WithLabelValues(tenant, "failed").Inc()
		return result, err
	}

	if len(datasources) == 0 {
		err = ErrNoDatasource
		metrics.ScansTotal.WithLabelValues(tenant, "failed").Inc()
		return result, err
	}

	datasourceByID := make(map[string]types.Datasource, len(datasources))
	for _, ds := range datasources {
		datasourceByID[ds.ID] = ds
	}

	thresholds, err := m.thresholds.QueryThresholds(ctx, storage.WithTenant(tenant), storage.WithEnabled(true))
	if err != nil {
		metrics.ScansTotal.WithLabelValues(tenant, "failed").Inc()
		return result, err
	}

	for _, threshold := range thresholds.Data {
		outcome := m.checkSensor(ctx, threshold, datasourceByID)

		switch outcome {
		case outcomeCreated:
			result.Created++
		case outcomeEscalated:
			result.Escalated++
		case outcomeChecked:
			result.Checked++
		case outcomeResolved:
			result.Resolved++
		case outcomeNormal:
			result.Normal++
		case outcomeNoData:
			result.NoData++
		default:
			result.Errors++
		}

		metrics.ScanOutcomesTotal.WithLabelValues(tenant, outcome).Inc()
	}

	result.Duration = time.Since(result.StartedAt)

	metrics.ScansTotal.WithLabelValues(tenant, "completed").Inc()
	metrics.ScanDuration.WithLabelValues(tenant).Observe(result.Duration.Seconds())

	log.Info("scan completed",
		"sensors", thresholds.Count,
		"created", result.Created,
		"escalated", result.Escalated,
		"checked", result.Checked,
		"resolved", result.Resolved,
		"normal", result.Normal,
		"no_data", result.NoData,
		"errors", result.Errors,
		"duration", result.Duration.String(),
	)

	return result, nil
}

func (m *monitor) checkSensor(ctx context.Context, t types.SensorThreshold, datasources map[string]types.Datasource) (outcome string) {
	log := logging.GetFromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic while checking sensor", "threshold_id", t.ID, "recovered", fmt.Sprintf("%v", r))
			outcome = outcomeError
		}
	}()

	if !t.HasLimits() {
		log.Error("sensor threshold has no limits configured", "threshold_id", t.ID)
		return outcomeError
	}

	source, ok := datasources[t.DatasourceID]
	if !ok {
		log.Error("threshold references unknown datasource", "threshold_id", t.ID, "datasource_id", t.DatasourceID)
		return outcomeError
	}

	value, ok := m.ts.FetchCurrentValue(ctx, source, timeseries.SeriesQuery{
		Measurement:  t.Measurement,
		Field:        t.Field,
		DeviceColumn: t.DeviceColumn,
		DeviceID:     t.DeviceID,
		Window:       m.config.Window(),
		Bucket:       m.config.Bucket(),
	})
	if !ok {
		return outcomeNoData
	}

	active, err := m.alerts.GetActive(ctx, t.ID)
	hasActive := err == nil
	if err != nil && !errors.Is(err, alerts.ErrAlertNotFound) {
		log.Error("could not fetch active alert", "threshold_id", t.ID, "err", err.Error())
		return outcomeError
	}

	isBreach, breachType, limit := detectBreach(value, t)

	switch {
	case isBreach && !hasActive:
		return m.createAlert(ctx, t, breachType, value, limit)
	case isBreach && hasActive:
		return m.progressAlert(ctx, active, value)
	case hasActive:
		_, err = m.alerts.Resolve(ctx, active)
		if err != nil {
			log.Error("could not resolve alert", "alert_id", active.ID, "err", err.Error())
			return outcomeError
		}
		return outcomeResolved
	default:
		return outcomeNormal
	}
}

// createAlert creates a new alert for a fresh breach. A concurrent writer may
// have slipped in an active alert since our lookup, in which case the storage
// constraint rejects the insert and we fall back to the existing alert.
func (m *monitor) createAlert(ctx context.Context, t types.SensorThreshold, breachType string, value, limit float64) string {
	log := logging.GetFromContext(ctx)

	_, err := m.alerts.Create(ctx, t, breachType, value, limit)
	if err == nil {
		return outcomeCreated
	}

	if errors.Is(err, alerts.ErrAlreadyExists) {
		active, err := m.alerts.GetActive(ctx, t.ID)
		if err != nil {
			log.Error("duplicate alert rejected but active alert could not be fetched", "threshold_id", t.ID, "err", err.Error())
			return outcomeError
		}

		return m.progressAlert(ctx, active, value)
	}

	log.Error("could not create alert", "threshold_id", t.ID, "err", err.Error())

	return outcomeError
}

// progressAlert advances an active alert under a persisting breach: one
// escalation step if the time gate is open, otherwise a breach value update.
func (m *monitor) progressAlert(ctx context.Context, active types.Alert, value float64) string {
	log := logging.GetFromContext(ctx)

	if _, eligible := alerts.EligibleEscalation(active, time.Now().UTC(), m.alerts.Config()); eligible {
		_, err := m.alerts.Escalate(ctx, active)
		if err != nil {
			log.Error("could not escalate alert", "alert_id", active.ID, "err", err.Error())
			return outcomeError
		}
		return outcomeEscalated
	}

	_, err := m.alerts.UpdateBreachValue(ctx, active, value)
	if err != nil {
		log.Error("could not update breach value", "alert_id", active.ID, "err", err.Error())
		return outcomeError
	}

	return outcomeChecked
}

package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/iot-sensor-monitor/internal/pkg/application/alerts"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/timeseries"
	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func TestScanCreatesAlertOnFreshBreach(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.currentValue(105, true)

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.Created)
	is.Equal(0, result.Errors)

	is.Equal(1, len(fx.repo.AddAlertCalls()))
	added := fx.repo.AddAlertCalls()[0].Alert
	is.Equal(types.AlertStatusInitial, added.Status)
	is.Equal(types.BreachTypeUpper, added.BreachType)
	is.Equal(105.0, added.BreachValue)
	is.Equal(100.0, added.LimitValue)
}

func TestScanEscalatesPersistingBreachWhenGateIsOpen(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.currentValue(110, true)
	fx.activeAlert(types.AlertStatusInitial, 65*time.Minute)

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.Escalated)

	is.Equal(1, len(fx.repo.UpdateAlertCalls()))
	is.Equal(types.AlertStatusMedium, fx.repo.UpdateAlertCalls()[0].Alert.Status)
}

func TestScanEscalatesMediumToHighOnTotalAge(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.currentValue(110, true)
	fx.activeAlert(types.AlertStatusMedium, 95*time.Minute)

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.Escalated)
	is.Equal(types.AlertStatusHigh, fx.repo.UpdateAlertCalls()[0].Alert.Status)
}

func TestScanUpdatesBreachValueWhenGateIsClosed(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.currentValue(107, true)
	fx.activeAlert(types.AlertStatusInitial, 10*time.Minute)

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.Checked)

	is.Equal(1, len(fx.repo.UpdateAlertCalls()))
	updated := fx.repo.UpdateAlertCalls()[0].Alert
	is.Equal(types.AlertStatusInitial, updated.Status)
	is.Equal(107.0, updated.BreachValue)
}

func TestScanResolvesAlertWhenValueReturnsToNormal(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.currentValue(95, true)
	fx.activeAlert(types.AlertStatusHigh, 3*time.Hour)

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.Resolved)

	resolved := fx.repo.UpdateAlertCalls()[0].Alert
	is.Equal(types.AlertStatusResolved, resolved.Status)
	is.True(resolved.ResolvedAt != nil)
}

func TestScanLeavesAlertUntouchedWithoutData(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.currentValue(0, false)
	fx.activeAlert(types.AlertStatusMedium, 70*time.Minute)

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.NoData)

	is.Equal(0, len(fx.repo.UpdateAlertCalls()))
	is.Equal(0, len(fx.repo.AddAlertCalls()))
	is.Equal(0, len(fx.repo.GetActiveAlertCalls()))
}

func TestScanCountsNormalSensors(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.currentValue(42, true)

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.Normal)
	is.Equal(1, result.Total())
}

func TestScanFailsWithoutDatasource(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.thresholds.GetDatasourcesFunc = func(ctx context.Context, tenant string) ([]types.Datasource, error) {
		return []types.Datasource{}, nil
	}

	_, err := fx.monitor.RunScan(ctx, "default")

	is.True(errors.Is(err, ErrNoDatasource))
	is.Equal(0, len(fx.thresholds.QueryThresholdsCalls()))
}

func TestScanRecoversFromDuplicateAlertRace(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.currentValue(105, true)

	// the first lookup sees no active alert, the insert is rejected by the
	// uniqueness constraint, and the refetch finds the concurrent writer's
	// young alert
	fx.repo.GetActiveAlertFunc = func(ctx context.Context, thresholdID string) (types.Alert, error) {
		if len(fx.repo.GetActiveAlertCalls()) == 1 {
			return types.Alert{}, storage.ErrNoRows
		}
		return alertAged(types.AlertStatusInitial, 5*time.Minute), nil
	}
	fx.repo.AddAlertFunc = func(ctx context.Context, alert types.Alert) error {
		return storage.ErrAlreadyExists
	}

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.Checked)
	is.Equal(0, result.Created)
	is.Equal(0, result.Errors)
	is.Equal(2, len(fx.repo.GetActiveAlertCalls()))
	is.Equal(1, len(fx.repo.UpdateAlertCalls()))
}

func TestScanContinuesPastFailingSensor(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	broken := testThreshold("threshold-00")
	broken.UpperLimit = nil
	broken.LowerLimit = nil

	fx.thresholds.QueryThresholdsFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.SensorThreshold], error) {
		return types.Collection[types.SensorThreshold]{
			Data:       []types.SensorThreshold{broken, testThreshold("threshold-01")},
			Count:      2,
			TotalCount: 2,
		}, nil
	}
	fx.currentValue(42, true)

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.Errors)
	is.Equal(1, result.Normal)
}

func TestScanCountsUnknownDatasourceAsError(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	orphan := testThreshold("threshold-01")
	orphan.DatasourceID = "does-not-exist"

	fx.thresholds.QueryThresholdsFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.SensorThreshold], error) {
		return types.Collection[types.SensorThreshold]{Data: []types.SensorThreshold{orphan}, Count: 1, TotalCount: 1}, nil
	}

	result, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, result.Errors)
	is.Equal(0, len(fx.ts.FetchCurrentValueCalls()))
}

func TestScanPassesWindowAndBucketToTimeseriesQuery(t *testing.T) {
	is, ctx, fx := scanSetup(t)

	fx.currentValue(42, true)

	_, err := fx.monitor.RunScan(ctx, "default")

	is.NoErr(err)
	is.Equal(1, len(fx.ts.FetchCurrentValueCalls()))

	call := fx.ts.FetchCurrentValueCalls()[0]
	is.Equal("influx-default", call.Ds.ID)
	is.Equal("temperature", call.Q.Measurement)
	is.Equal("device-01", call.Q.DeviceID)
	is.Equal(time.Hour, call.Q.Window)
	is.Equal(2*time.Minute, call.Q.Bucket)
}

type scanFixture struct {
	thresholds *ThresholdProviderMock
	repo       *alerts.AlertRepositoryMock
	ts         *timeseries.ClientMock
	monitor    Monitor
}

func (fx *scanFixture) currentValue(value float64, ok bool) {
	fx.ts.FetchCurrentValueFunc = func(ctx context.Context, ds types.Datasource, q timeseries.SeriesQuery) (float64, bool) {
		return value, ok
	}
}

func (fx *scanFixture) activeAlert(status string, age time.Duration) {
	fx.repo.GetActiveAlertFunc = func(ctx context.Context, thresholdID string) (types.Alert, error) {
		return alertAged(status, age), nil
	}
}

func scanSetup(t *testing.T) (*is.I, context.Context, *scanFixture) {
	fx := &scanFixture{
		thresholds: &ThresholdProviderMock{
			GetDatasourcesFunc: func(ctx context.Context, tenant string) ([]types.Datasource, error) {
				return []types.Datasource{{ID: "influx-default", Tenant: tenant, URL: "http://localhost:8086", Database: "iot"}}, nil
			},
			QueryThresholdsFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.SensorThreshold], error) {
				return types.Collection[types.SensorThreshold]{
					Data:       []types.SensorThreshold{testThreshold("threshold-01")},
					Count:      1,
					TotalCount: 1,
				}, nil
			},
		},
		repo: &alerts.AlertRepositoryMock{
			AddAlertFunc: func(ctx context.Context, alert types.Alert) error {
				return nil
			},
			UpdateAlertFunc: func(ctx context.Context, alert types.Alert) error {
				return nil
			},
			GetActiveAlertFunc: func(ctx context.Context, thresholdID string) (types.Alert, error) {
				return types.Alert{}, storage.ErrNoRows
			},
		},
		ts: &timeseries.ClientMock{},
	}

	msgctx := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	alertSvc := alerts.New(fx.repo, msgctx, nil)
	fx.monitor = New(fx.thresholds, alertSvc, fx.ts, nil)

	return is.New(t), context.Background(), fx
}

func testThreshold(id string) types.SensorThreshold {
	upper := 100.0
	lower := 0.0

	return types.SensorThreshold{
		ID:           id,
		Tenant:       "default",
		DeviceID:     "device-01",
		Measurement:  "temperature",
		Field:        "value",
		DeviceColumn: "device",
		UpperLimit:   &upper,
		LowerLimit:   &lower,
		DatasourceID: "influx-default",
		Enabled:      true,
	}
}

func alertAged(status string, age time.Duration) types.Alert {
	return types.Alert{
		ID:          "alert-01",
		ThresholdID: "threshold-01",
		Tenant:      "default",
		Status:      status,
		BreachType:  types.BreachTypeUpper,
		BreachValue: 105,
		LimitValue:  100,
		CreatedAt:   time.Now().UTC().Add(-age),
	}
}

package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

func TestCreateFailsWithoutConfiguredLimits(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	threshold := testThreshold()
	threshold.UpperLimit = nil
	threshold.LowerLimit = nil

	_, err := svc.Create(ctx, threshold, types.BreachTypeUpper, 105, 100)

	is.True(errors.Is(err, ErrNoLimitsConfigured))
	is.Equal(0, len(repo.AddAlertCalls()))
}

func TestCreateStoresInitialAlertAndPublishesEvent(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	alert, err := svc.Create(ctx, testThreshold(), types.BreachTypeUpper, 105, 100)

	is.NoErr(err)
	is.Equal(types.AlertStatusInitial, alert.Status)
	is.Equal(types.BreachTypeUpper, alert.BreachType)
	is.Equal(105.0, alert.BreachValue)
	is.Equal(100.0, alert.LimitValue)
	is.True(alert.ID != "")

	is.Equal(1, len(repo.AddAlertCalls()))
	is.Equal(1, len(msgctx.PublishOnTopicCalls()))
	is.Equal("alerts.alertCreated", msgctx.PublishOnTopicCalls()[0].Message.TopicName())
}

func TestCreateMapsUniqueViolationToErrAlreadyExists(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	repo.AddAlertFunc = func(ctx context.Context, alert types.Alert) error {
		return storage.ErrAlreadyExists
	}

	svc := New(repo, msgctx, nil)

	_, err := svc.Create(ctx, testThreshold(), types.BreachTypeUpper, 105, 100)

	is.True(errors.Is(err, ErrAlreadyExists))
	is.Equal(0, len(msgctx.PublishOnTopicCalls()))
}

func TestEscalateBeforeGateOpensIsRejected(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	alert := activeAlert(types.AlertStatusInitial, 59*time.Minute)

	_, err := svc.Escalate(ctx, alert)

	is.True(errors.Is(err, ErrEscalationNotEligible))
	is.Equal(0, len(repo.UpdateAlertCalls()))
}

func TestEscalateToMediumAfterSixtyMinutes(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	alert := activeAlert(types.AlertStatusInitial, 65*time.Minute)

	escalated, err := svc.Escalate(ctx, alert)

	is.NoErr(err)
	is.Equal(types.AlertStatusMedium, escalated.Status)
	is.True(escalated.EscalatedToMediumAt != nil)
	is.True(escalated.EscalatedToHighAt == nil)
	is.Equal(1, len(msgctx.PublishOnTopicCalls()))
	is.Equal("alerts.alertEscalated", msgctx.PublishOnTopicCalls()[0].Message.TopicName())
}

func TestEscalateToHighGatesOnTotalEpisodeAge(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	mediumAt := time.Now().UTC().Add(-30 * time.Minute)
	alert := activeAlert(types.AlertStatusMedium, 95*time.Minute)
	alert.EscalatedToMediumAt = &mediumAt

	escalated, err := svc.Escalate(ctx, alert)

	is.NoErr(err)
	is.Equal(types.AlertStatusHigh, escalated.Status)
	is.True(escalated.EscalatedToHighAt != nil)
	is.Equal(mediumAt, *escalated.EscalatedToMediumAt)
}

func TestEscalateAppliesExactlyOneStep(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	alert := activeAlert(types.AlertStatusInitial, 95*time.Minute)

	escalated, err := svc.Escalate(ctx, alert)

	is.NoErr(err)
	is.Equal(types.AlertStatusMedium, escalated.Status)
}

func TestEscalateAtHighIsRejected(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	alert := activeAlert(types.AlertStatusHigh, 5*time.Hour)

	_, err := svc.Escalate(ctx, alert)

	is.True(errors.Is(err, ErrEscalationNotEligible))
}

func TestEligibleEscalationBoundaries(t *testing.T) {
	is := is.New(t)

	cfg := &Config{}
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	alert := types.Alert{Status: types.AlertStatusInitial, CreatedAt: createdAt}

	_, ok := EligibleEscalation(alert, createdAt.Add(60*time.Minute-time.Second), cfg)
	is.True(!ok)

	next, ok := EligibleEscalation(alert, createdAt.Add(60*time.Minute), cfg)
	is.True(ok)
	is.Equal(types.AlertStatusMedium, next)

	alert.Status = types.AlertStatusMedium

	_, ok = EligibleEscalation(alert, createdAt.Add(90*time.Minute-time.Second), cfg)
	is.True(!ok)

	next, ok = EligibleEscalation(alert, createdAt.Add(90*time.Minute), cfg)
	is.True(ok)
	is.Equal(types.AlertStatusHigh, next)

	alert.Status = types.AlertStatusResolved

	_, ok = EligibleEscalation(alert, createdAt.Add(5*time.Hour), cfg)
	is.True(!ok)
}

func TestUpdateBreachValueKeepsStatusAndTimestamps(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	mediumAt := time.Now().UTC().Add(-10 * time.Minute)
	alert := activeAlert(types.AlertStatusMedium, 70*time.Minute)
	alert.EscalatedToMediumAt = &mediumAt

	updated, err := svc.UpdateBreachValue(ctx, alert, 42.5)

	is.NoErr(err)
	is.Equal(42.5, updated.BreachValue)
	is.Equal(types.AlertStatusMedium, updated.Status)
	is.Equal(mediumAt, *updated.EscalatedToMediumAt)
	is.Equal(0, len(msgctx.PublishOnTopicCalls()))
}

func TestResolveSetsResolvedAtAndPublishesEvent(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	alert := activeAlert(types.AlertStatusHigh, 3*time.Hour)

	resolved, err := svc.Resolve(ctx, alert)

	is.NoErr(err)
	is.Equal(types.AlertStatusResolved, resolved.Status)
	is.True(resolved.ResolvedAt != nil)
	is.Equal(1, len(msgctx.PublishOnTopicCalls()))
	is.Equal("alerts.alertResolved", msgctx.PublishOnTopicCalls()[0].Message.TopicName())
}

func TestResolveIsRejectedWhenAlreadyResolved(t *testing.T) {
	is, ctx, repo, msgctx := testSetup(t)

	svc := New(repo, msgctx, nil)

	resolvedAt := time.Now().UTC()
	alert := activeAlert(types.AlertStatusResolved, 3*time.Hour)
	alert.ResolvedAt = &resolvedAt

	_, err := svc.Resolve(ctx, alert)

	is.True(errors.Is(err, ErrAlreadyResolved))
	is.Equal(0, len(repo.UpdateAlertCalls()))
}

func TestDurationDerivation(t *testing.T) {
	is := is.New(t)

	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(45 * time.Minute)

	alert := types.Alert{Status: types.AlertStatusInitial, CreatedAt: createdAt}
	is.Equal(45*time.Minute, alert.Duration(now))

	resolvedAt := createdAt.Add(30 * time.Minute)
	alert.Status = types.AlertStatusResolved
	alert.ResolvedAt = &resolvedAt
	is.Equal(30*time.Minute, alert.Duration(now))
}

func testSetup(t *testing.T) (*is.I, context.Context, *AlertRepositoryMock, *messaging.MsgContextMock) {
	repo := &AlertRepositoryMock{
		AddAlertFunc: func(ctx context.Context, alert types.Alert) error {
			return nil
		},
		UpdateAlertFunc: func(ctx context.Context, alert types.Alert) error {
			return nil
		},
	}

	msgctx := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	return is.New(t), context.Background(), repo, msgctx
}

func testThreshold() types.SensorThreshold {
	upper := 100.0

	return types.SensorThreshold{
		ID:           uuid.NewString(),
		Tenant:       "default",
		DeviceID:     "device-01",
		Measurement:  "temperature",
		Field:        "value",
		DeviceColumn: "device",
		UpperLimit:   &upper,
		DatasourceID: "influx-default",
		Enabled:      true,
	}
}

func activeAlert(status string, age time.Duration) types.Alert {
	return types.Alert{
		ID:          uuid.NewString(),
		ThresholdID: uuid.NewString(),
		Tenant:      "default",
		Status:      status,
		BreachType:  types.BreachTypeUpper,
		BreachValue: 105,
		LimitValue:  100,
		CreatedAt:   time.Now().UTC().Add(-age),
	}
}
